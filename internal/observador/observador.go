// Package observador reads a machine's output logs. The printer and screen are not devices on a
// bus — they're ordered message logs the core only ever appends to — so there is nothing here to
// drive, only to watch. Nuevos diffs two snapshots and reports what a running machine produced
// between them, letting a caller (a CLI command, a test) observe output incrementally as Iterar
// yields states instead of waiting for a full run and re-reading the final logs from scratch.
package observador

import "github.com/velasco/chmaquina/internal/maquina"

// Registro names which output log a Mensaje came from.
type Registro string

const (
	Impresora Registro = "impresora"
	Pantalla  Registro = "pantalla"
)

// Mensaje pairs an output log entry with the log it was appended to.
type Mensaje struct {
	Registro Registro
	maquina.Mensaje
}

// Nuevos returns the messages appended to impresora and pantalla between anterior and nuevo, in
// the order each log grew: every new impresora entry first, then every new pantalla entry. Passing
// the same state twice, or a nuevo whose logs haven't grown, returns nil.
func Nuevos(anterior, nuevo *maquina.Estado) []Mensaje {
	var mensajes []Mensaje

	for _, m := range crecioDesde(anterior.Impresora, nuevo.Impresora) {
		mensajes = append(mensajes, Mensaje{Registro: Impresora, Mensaje: m})
	}

	for _, m := range crecioDesde(anterior.Pantalla, nuevo.Pantalla) {
		mensajes = append(mensajes, Mensaje{Registro: Pantalla, Mensaje: m})
	}

	return mensajes
}

// crecioDesde returns the entries nuevo has beyond anterior's length. Logs only ever grow by
// appending (no entry is ever rewritten or removed), so anterior is always a prefix of nuevo.
func crecioDesde(anterior, nuevo []maquina.Mensaje) []maquina.Mensaje {
	if len(nuevo) <= len(anterior) {
		return nil
	}

	return nuevo[len(anterior):]
}
