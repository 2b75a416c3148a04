// Package consola_test tries to test terminals.
//
// The test is skipped when stdin is not a terminal (ErrNoTTY). Notably, this includes when run with
// "go test" because it redirects tests' standard input/output streams. You can exercise it by
// building a test binary and running it directly:
//
//	$ go test -c && ./consola.test
package consola_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/velasco/chmaquina/internal/consola"
)

const timeout = 100 * time.Millisecond

func TestConsole(t *testing.T) {
	cons, err := consola.NuevaConsola(os.Stdin)
	if errors.Is(err, consola.ErrNoTTY) {
		t.Skipf("error: %s", err)
	}

	if err != nil {
		t.Fatalf("NuevaConsola: %s", err)
	}

	defer func() { _ = cons.Restore() }()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := cons.Leer(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Leer: %s", err)
	}
}
