package maquina

import "github.com/velasco/chmaquina/internal/asm"

// TipoCelda is the kind of value a memory cell holds.
type TipoCelda int

const (
	TipoCodigo   TipoCelda = iota // An instruction line, owned by exactly one program.
	TipoC                         // Character/string data.
	TipoI                         // Integer data.
	TipoR                         // Real data.
	TipoL                         // Logical (boolean) data.
	TipoMultiple                  // The reserved accumulator: reinterpreted per instruction.
)

func (t TipoCelda) String() string {
	switch t {
	case TipoCodigo:
		return "CODIGO"
	case TipoC:
		return "C"
	case TipoI:
		return "I"
	case TipoR:
		return "R"
	case TipoL:
		return "L"
	case TipoMultiple:
		return "MULTIPLE"
	default:
		return "TipoCelda(?)"
	}
}

// tipoCeldaDesde translates a declared variable type into the corresponding cell type.
func tipoCeldaDesde(t asm.Tipo) TipoCelda {
	switch t {
	case asm.TipoC:
		return TipoC
	case asm.TipoI:
		return TipoI
	case asm.TipoR:
		return TipoR
	case asm.TipoL:
		return TipoL
	default:
		return TipoC
	}
}

// Celda is one position in the machine's shared memory. A nil entry in Estado.Memoria represents an
// empty position: one that belongs to no program.
type Celda struct {
	Programa string    // Owning program id.
	Nombre   string    // Symbolic name: "L007", a declared variable, or "acumulador".
	Tipo     TipoCelda
	Valor    string
}

func (c *Celda) copia() *Celda {
	if c == nil {
		return nil
	}

	clon := *c

	return &clon
}
