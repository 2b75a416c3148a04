package interprete

import "errors"

// ErrEjecucion is the sentinel wrapped by runtime arithmetic failures: division or modulo by zero,
// and raising zero to a negative power.
var ErrEjecucion = errors.New("error de ejecución")
