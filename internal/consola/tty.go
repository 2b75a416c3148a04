// Package consola adapts the machine's keyboard device to an interactive terminal, for running CH
// programs that call "lea" against a human instead of a file or test fixture.
package consola

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/velasco/chmaquina/internal/dispositivos"
)

// Console is a line-oriented terminal keyboard. It implements dispositivos.Teclado by reading one
// line at a time from a raw-mode terminal, with the OS's own line editing (backspace, etc.) restored
// on top of raw mode so a program's "lea" prompt behaves like an ordinary shell prompt.
type Console struct {
	out   *term.Terminal
	fd    int
	state *term.State
}

var _ dispositivos.Teclado = (*Console)(nil)

// ErrNoTTY is returned if standard input is not a terminal. Non-interactive runs should use
// dispositivos.NuevoLectorLineas instead.
var ErrNoTTY = errors.New("consola: entrada estándar no es una terminal")

// NuevaConsola creates a Console reading from sin. Callers must call Restore to return the terminal
// to its original state.
func NuevaConsola(sin *os.File) (*Console, error) {
	fd := int(sin.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	cons := &Console{
		fd:    fd,
		out:   term.NewTerminal(sin, "> "),
		state: saved,
	}

	if err := cons.habilitarEdicionDeLinea(); err != nil {
		_ = term.Restore(fd, saved)
		return nil, err
	}

	return cons, nil
}

// habilitarEdicionDeLinea restores canonical mode and echo on top of the raw mode term.MakeRaw set,
// so "lea" reads a whole, editable line rather than individual unbuffered keystrokes.
func (c *Console) habilitarEdicionDeLinea() error {
	termIO, err := unix.IoctlGetTermios(c.fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termIO.Lflag |= unix.ICANON | unix.ECHO

	return unix.IoctlSetTermios(c.fd, setTermiosIoctl, termIO)
}

// Leer reads one line from the terminal, blocking until it's available, the context is cancelled, or
// the terminal closes.
func (c *Console) Leer(ctx context.Context) (string, error) {
	type resultado struct {
		linea string
		err   error
	}

	listo := make(chan resultado, 1)

	go func() {
		linea, err := c.out.ReadLine()
		listo <- resultado{linea, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-listo:
		return r.linea, r.err
	}
}

// Restore returns the terminal to its initial state.
func (c *Console) Restore() error {
	return term.Restore(c.fd, c.state)
}
