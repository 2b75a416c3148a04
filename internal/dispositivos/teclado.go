// Package dispositivos declares the narrow interfaces the core depends on for external I/O. The
// graphical control panel, file dialogs, and any concrete keyboard/printer/screen hardware are
// explicitly out of the core's scope — collaborators satisfy these interfaces instead.
package dispositivos

import (
	"bufio"
	"context"
	"io"
)

// Teclado is the machine's sole input collaborator: a single blocking "read a line" operation. The
// "lea" instruction calls it synchronously; it may block arbitrarily long without the scheduler
// being able to preempt the call.
type Teclado interface {
	Leer(ctx context.Context) (string, error)
}

// LectorLineas is a Teclado backed by any io.Reader, reading one line per call. It's the
// non-interactive default: batch runs and tests feed it a bufio.Reader over a string or file
// instead of a terminal.
type LectorLineas struct {
	scanner *bufio.Scanner
}

// NuevoLectorLineas wraps a reader as a line-at-a-time keyboard.
func NuevoLectorLineas(r io.Reader) *LectorLineas {
	return &LectorLineas{scanner: bufio.NewScanner(r)}
}

// Leer returns the next line, or io.EOF once the underlying reader is exhausted.
func (l *LectorLineas) Leer(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if l.scanner.Scan() {
		return l.scanner.Text(), nil
	}

	if err := l.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}
