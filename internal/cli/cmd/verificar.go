package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/velasco/chmaquina/internal/asm"
	"github.com/velasco/chmaquina/internal/cli"
	"github.com/velasco/chmaquina/internal/log"
)

// Verificador is the command that checks CH source for syntax errors without running it.
//
//	chmaquina verificar programa.ch
func Verificador() cli.Command {
	return new(verificador)
}

type verificador struct{}

func (verificador) Description() string {
	return "check CH source for syntax errors"
}

func (verificador) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `verificar file.ch

Check source for syntax errors and print its variables, labels, and estimated burst.`)

	return err
}

func (verificador) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("verificar", flag.ExitOnError)
}

func (verificador) Run(_ context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, "verificar: se requiere exactamente un archivo")
		return 1
	}

	fuente, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("no se pudo leer el archivo", "err", err)
		return 1
	}

	v := asm.NewVerificador(logger)

	resultado, err := v.Verificar(string(fuente))
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	fmt.Fprintf(stdout, "líneas: %d\n", len(resultado.Lineas))
	fmt.Fprintf(stdout, "ráfaga estimada: %d\n", resultado.Rafaga)

	fmt.Fprintln(stdout, "variables:")

	for _, variable := range resultado.Variables {
		fmt.Fprintf(stdout, "  %-16s %s = %q\n", variable.Nombre, variable.Tipo, variable.Valor)
	}

	fmt.Fprintln(stdout, "etiquetas:")

	for nombre, linea := range resultado.Etiquetas {
		fmt.Fprintf(stdout, "  %-16s línea %d\n", nombre, linea)
	}

	return 0
}
