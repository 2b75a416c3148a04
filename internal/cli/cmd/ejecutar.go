package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/velasco/chmaquina/internal/asm"
	"github.com/velasco/chmaquina/internal/cli"
	"github.com/velasco/chmaquina/internal/consola"
	"github.com/velasco/chmaquina/internal/dispositivos"
	"github.com/velasco/chmaquina/internal/interprete"
	"github.com/velasco/chmaquina/internal/log"
	"github.com/velasco/chmaquina/internal/maquina"
	"github.com/velasco/chmaquina/internal/observador"
	"github.com/velasco/chmaquina/internal/planificador"
)

// Ejecutor is the command that loads one or more CH programs and runs them to completion under a
// chosen scheduling policy.
//
//	chmaquina ejecutar -algoritmo RR -quantum 4 programa1.ch programa2.ch
func Ejecutor() cli.Command {
	return &ejecutor{
		memoria:   256,
		kernel:    8,
		quantum:   maquina.QuantumInfinito,
		algoritmo: string(maquina.FCFS),
	}
}

type ejecutor struct {
	memoria   int
	kernel    int
	quantum   int
	algoritmo string
	debug     bool
}

func (ejecutor) Description() string {
	return "load and run CH programs to completion"
}

func (ejecutor) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `ejecutar [-algoritmo FCFS|SJF|RR] [-quantum n] [-memoria n] [-kernel n] file.ch...

Load each named program, in order, and run the machine to completion.`)

	return err
}

func (ex *ejecutor) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("ejecutar", flag.ExitOnError)
	fs.IntVar(&ex.memoria, "memoria", ex.memoria, "total memory cells")
	fs.IntVar(&ex.kernel, "kernel", ex.kernel, "reserved kernel region size")
	fs.IntVar(&ex.quantum, "quantum", ex.quantum, "RR quantum, 0 for infinite")
	fs.StringVar(&ex.algoritmo, "algoritmo", ex.algoritmo, "scheduling policy: FCFS, SJF, or RR")
	fs.BoolVar(&ex.debug, "debug", false, "enable debug logging")

	return fs
}

func (ex *ejecutor) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if ex.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) == 0 {
		fmt.Fprintln(stdout, "ejecutar: se requiere al menos un archivo")
		return 1
	}

	cfg := maquina.Config{
		TamanoMemoria: ex.memoria,
		TamanoKernel:  ex.kernel,
		Quantum:       ex.quantum,
		Algoritmo:     maquina.Algoritmo(ex.algoritmo),
	}

	estado := maquina.Nuevo(cfg, logger)
	verificador := asm.NewVerificador(logger)

	for _, fn := range args {
		fuente, err := os.ReadFile(fn)
		if err != nil {
			logger.Error("no se pudo leer el archivo", "file", fn, "err", err)
			return 1
		}

		estado, err = maquina.CargarFuente(estado, verificador, string(fuente))
		if err != nil {
			var invalido *maquina.InvalidProgram
			if errors.As(err, &invalido) {
				fmt.Fprintln(stdout, err)
				return 1
			}

			logger.Error("no se pudo cargar el programa", "file", fn, "err", err)
			return 1
		}
	}

	teclado, cerrar := ex.teclado(logger)
	defer cerrar()

	in := interprete.Nuevo(teclado, nil, logger)

	for siguiente, err := range planificador.Iterar(ctx, in, estado, cfg) {
		if err != nil {
			logger.Error("error de ejecución", "err", err)
			return 1
		}

		for _, m := range observador.Nuevos(estado, siguiente) {
			switch m.Registro {
			case observador.Impresora:
				fmt.Fprintf(stdout, "%s: %s\n", m.Programa, m.Texto)
			case observador.Pantalla:
				fmt.Fprintf(stdout, "%s> %s\n", m.Programa, m.Texto)
			}
		}

		estado = siguiente
	}

	logger.Info("ejecución completa", "reloj", estado.Reloj, "terminados", len(estado.Terminados))

	return 0
}

// teclado picks an interactive terminal keyboard when standard input is a TTY, falling back to a
// plain line reader (a pipe, a redirected file, a test fixture) otherwise. The returned function
// restores terminal state and must be called before Run returns.
func (ex *ejecutor) teclado(logger *log.Logger) (dispositivos.Teclado, func()) {
	if cons, err := consola.NuevaConsola(os.Stdin); err == nil {
		return cons, func() { _ = cons.Restore() }
	}

	logger.Debug("entrada estándar no es una terminal, usando lector de líneas")

	return dispositivos.NuevoLectorLineas(os.Stdin), func() {}
}
