package asm

// instrucciones.go declares the CH instruction set: arity and the syntax rule each instruction
// enforces. "nueva" and "etiqueta" are declarative and are handled separately in verificador.go
// since they populate the variable and label tables; every other instruction is checked against
// this table.

// regla validates an instruction's arguments against the state accumulated so far. It returns a
// reason string on failure, or "" if the line is well-formed.
type regla struct {
	minArgs, maxArgs int
	validar          func(ctx *contexto, args []string) string
}

// contexto is the verifier's running state, threaded through each instruction's validation rule.
type contexto struct {
	variables     map[string]bool
	etiquetas     map[string]int  // name -> zero-based code-line index, as defined by "etiqueta".
	referenciadas map[string]bool // names referenced by "vaya"/"vayasi", checked at the end.
}

func yaDefinida(ctx *contexto, nombre string) bool {
	return ctx.variables[nombre]
}

var tabla = map[string]regla{
	"vaya": {1, 1, func(ctx *contexto, args []string) string {
		ctx.referenciaEtiqueta(args[0])
		return ""
	}},
	"vayasi": {2, 2, func(ctx *contexto, args []string) string {
		ctx.referenciaEtiqueta(args[0])
		ctx.referenciaEtiqueta(args[1])
		return ""
	}},
	"cargue":      reglaVariableDefinida,
	"almacene":    reglaVariableDefinida,
	"lea":         reglaVariableDefinida,
	"sume":        reglaVariableDefinida,
	"reste":       reglaVariableDefinida,
	"multiplique": reglaVariableDefinida,
	"divida":      reglaVariableDefinida,
	"potencia":    reglaVariableDefinida,
	"modulo":      reglaVariableDefinida,
	"concatene": {1, 1, func(ctx *contexto, args []string) string {
		return ""
	}},
	"elimine": {1, 1, func(ctx *contexto, args []string) string {
		return ""
	}},
	"extraiga": {1, 1, func(ctx *contexto, args []string) string {
		if !esEntero(args[0]) {
			return "extraiga requiere un entero"
		}
		return ""
	}},
	"Y": {3, 3, func(ctx *contexto, args []string) string {
		for _, v := range args {
			if !yaDefinida(ctx, v) {
				return "variable no definida: " + v
			}
		}
		return ""
	}},
	"O": {3, 3, func(ctx *contexto, args []string) string {
		for _, v := range args {
			if !yaDefinida(ctx, v) {
				return "variable no definida: " + v
			}
		}
		return ""
	}},
	"NO": {2, 2, func(ctx *contexto, args []string) string {
		for _, v := range args {
			if !yaDefinida(ctx, v) {
				return "variable no definida: " + v
			}
		}
		return ""
	}},
	"muestre": reglaVariableOAcumulador,
	"imprima": reglaVariableOAcumulador,
	"retorne": {0, 1, func(ctx *contexto, args []string) string {
		if len(args) == 1 && !esEntero(args[0]) {
			return "retorne requiere un código entero"
		}
		return ""
	}},
}

var reglaVariableDefinida = regla{1, 1, func(ctx *contexto, args []string) string {
	if !yaDefinida(ctx, args[0]) {
		return "variable no definida: " + args[0]
	}
	return ""
}}

var reglaVariableOAcumulador = regla{1, 1, func(ctx *contexto, args []string) string {
	if args[0] == "acumulador" || yaDefinida(ctx, args[0]) {
		return ""
	}
	return "variable no definida: " + args[0]
}}

func (ctx *contexto) referenciaEtiqueta(nombre string) {
	if ctx.referenciadas == nil {
		ctx.referenciadas = map[string]bool{}
	}

	ctx.referenciadas[nombre] = true
}

// esEjecutable reports whether an instruction keyword counts toward the burst estimate: every
// instruction except the declarative "nueva" and "etiqueta".
func esEjecutable(op string) bool {
	return op != "nueva" && op != "etiqueta"
}
