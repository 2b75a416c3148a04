package maquina

import (
	"errors"
	"fmt"
)

var (
	// ErrSegmentacion is the sentinel every *SegmentationFault wraps.
	ErrSegmentacion = errors.New("fallo de segmentación")

	// ErrFueraDeMemoria is the sentinel every *OutOfMemory wraps.
	ErrFueraDeMemoria = errors.New("memoria agotada")

	// ErrProgramaInvalido is the sentinel every *InvalidProgram wraps.
	ErrProgramaInvalido = errors.New("programa inválido")

	// errNoExiste is returned, unwrapped, when a caller names a program, variable, or label that
	// isn't part of the current state. This is a programming error inside the core (the verifier
	// and loader guarantee these references exist), not a recoverable CH runtime condition.
	errNoExiste = errors.New("referencia inexistente")
)

// SegmentationFault is raised when a program's counter points outside its own code region, or at a
// cell tagged with another program's id.
type SegmentationFault struct {
	Programa string
	Posicion int
}

func (e *SegmentationFault) Error() string {
	return fmt.Sprintf("%s: programa %s en posición %d", ErrSegmentacion, e.Programa, e.Posicion)
}

func (e *SegmentationFault) Is(err error) bool {
	if err == ErrSegmentacion { //nolint:errorlint // intentional sentinel comparison
		return true
	}

	_, ok := err.(*SegmentationFault)

	return ok
}

// OutOfMemory is raised when the loader cannot fit a program in the remaining memory.
type OutOfMemory struct {
	Requerido  int
	Disponible int
}

func (e *OutOfMemory) Error() string {
	return fmt.Sprintf("%s: se requieren %d posiciones, hay %d disponibles",
		ErrFueraDeMemoria, e.Requerido, e.Disponible)
}

func (e *OutOfMemory) Is(err error) bool {
	if err == ErrFueraDeMemoria { //nolint:errorlint // intentional sentinel comparison
		return true
	}

	_, ok := err.(*OutOfMemory)

	return ok
}

// InvalidProgram wraps a syntax error discovered at load time.
type InvalidProgram struct {
	Err error
}

func (e *InvalidProgram) Error() string {
	return fmt.Sprintf("%s: %s", ErrProgramaInvalido, e.Err)
}

func (e *InvalidProgram) Unwrap() error {
	return e.Err
}

func (e *InvalidProgram) Is(err error) bool {
	return err == ErrProgramaInvalido //nolint:errorlint // intentional sentinel comparison
}
