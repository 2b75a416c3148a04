// chmaquina is the command-line interface to the CH virtual machine: a verifier, loader,
// interpreter, and multiprogramming scheduler for the CH teaching language.
package main

import (
	"context"
	"os"

	"github.com/velasco/chmaquina/internal/cli"
	"github.com/velasco/chmaquina/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Verificador(),
	cmd.Ejecutor(),
}

func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
