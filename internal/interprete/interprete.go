package interprete

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/velasco/chmaquina/internal/dispositivos"
	"github.com/velasco/chmaquina/internal/log"
	"github.com/velasco/chmaquina/internal/maquina"
)

// Interprete runs one instruction at a time. It holds the collaborators a step might need — a
// keyboard for "lea", a source of randomness for I/O-ish instruction timing — but no machine state
// of its own.
type Interprete struct {
	Teclado   dispositivos.Teclado
	Aleatorio *rand.Rand
	log       *log.Logger
}

// Nuevo creates an interpreter. A nil Teclado means "lea" always fails; pass
// dispositivos.NuevoLectorLineas wrapping some reader for programs that read input. A nil source of
// randomness gets a fixed seed, so callers that want determinism (tests, replay) can pass their own.
func Nuevo(teclado dispositivos.Teclado, aleatorio *rand.Rand, logger *log.Logger) *Interprete {
	if aleatorio == nil {
		aleatorio = rand.New(rand.NewSource(1)) //nolint:gosec // simulated timing, not security
	}

	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Interprete{Teclado: teclado, Aleatorio: aleatorio, log: logger}
}

// Step fetches and executes the instruction at the head of the ready queue, returning a new state.
// If the ready queue is empty, the clock still advances by one tick. Step never mutates estado.
func (in *Interprete) Step(ctx context.Context, estado *maquina.Estado) (*maquina.Estado, error) {
	id, codigo, ok, err := estado.SiguienteInstruccion()
	if err != nil {
		return nil, err
	}

	nuevo := estado.Copiar()

	if !ok {
		nuevo.AvanzarTiempo(1)
		return nuevo, nil
	}

	campos := strings.Fields(strings.TrimSpace(codigo))
	if len(campos) == 0 || strings.HasPrefix(campos[0], "//") {
		// Blank/comment lines occupy a code slot but cost no time; they fall through like nueva
		// and etiqueta.
		if err := nuevo.IncrementarContador(id); err != nil {
			return nil, err
		}

		return nuevo, nil
	}

	op, args := campos[0], campos[1:]

	if err := in.ejecutar(ctx, nuevo, id, op, args); err != nil {
		return nil, err
	}

	in.log.Debug("paso ejecutado", "programa", id, "instruccion", op, "reloj", nuevo.Reloj)

	return nuevo, nil
}

// ejecutar dispatches a single instruction against nuevo, which the caller already owns a private
// copy of. It is responsible for counter increment and clock advance — different instructions do
// each differently, so there's no single trailing step shared by every branch.
func (in *Interprete) ejecutar(ctx context.Context, nuevo *maquina.Estado, id, op string, args []string) error {
	switch op {
	case "nueva", "etiqueta":
		return nuevo.IncrementarContador(id)

	case "vaya":
		if err := nuevo.Vaya(id, args[0]); err != nil {
			return err
		}

		nuevo.AvanzarTiempo(1)

		return nil

	case "vayasi":
		if err := in.vayasi(nuevo, id, args); err != nil {
			return err
		}

		nuevo.AvanzarTiempo(1)

		return nil

	case "retorne":
		// Moves the program record to terminados and drops it from listos; no counter increment,
		// no clock advance (the program is gone — there's nothing left to tick for).
		return nuevo.Terminar(id)

	case "cargue":
		if err := cargue(nuevo, id, args[0]); err != nil {
			return err
		}

		return in.concluirIO(nuevo, id)

	case "almacene":
		if err := almacene(nuevo, id, args[0]); err != nil {
			return err
		}

		return in.concluirIO(nuevo, id)

	case "lea":
		if err := in.lea(ctx, nuevo, id, args[0]); err != nil {
			return err
		}

		return in.concluirIO(nuevo, id)

	case "sume", "reste", "multiplique", "divida", "potencia", "modulo":
		if err := aritmetica(nuevo, id, op, args[0]); err != nil {
			return err
		}

		return in.concluir(nuevo, id)

	case "concatene", "elimine", "extraiga":
		if err := cadena(nuevo, id, op, args[0]); err != nil {
			return err
		}

		return in.concluir(nuevo, id)

	case "Y", "O":
		if err := logica(nuevo, id, op, args); err != nil {
			return err
		}

		return in.concluir(nuevo, id)

	case "NO":
		if err := negacion(nuevo, id, args); err != nil {
			return err
		}

		return in.concluir(nuevo, id)

	case "imprima":
		if err := imprima(nuevo, id, args[0]); err != nil {
			return err
		}

		return in.concluirIO(nuevo, id)

	case "muestre":
		if err := muestre(nuevo, id, args[0]); err != nil {
			return err
		}

		return in.concluirIO(nuevo, id)

	default:
		return fmt.Errorf("%w: instrucción desconocida en ejecución: %s", maquina.ErrSegmentacion, op)
	}
}

// concluir increments the counter and advances the clock by one tick — the common case.
func (in *Interprete) concluir(nuevo *maquina.Estado, id string) error {
	if err := nuevo.IncrementarContador(id); err != nil {
		return err
	}

	nuevo.AvanzarTiempo(1)

	return nil
}

// concluirIO is like concluir but charges a uniform random [1,9] duration for I/O-ish instructions:
// lea, imprima, muestre, almacene, cargue.
func (in *Interprete) concluirIO(nuevo *maquina.Estado, id string) error {
	if err := nuevo.IncrementarContador(id); err != nil {
		return err
	}

	nuevo.AvanzarTiempo(in.Aleatorio.Intn(9) + 1)

	return nil
}
