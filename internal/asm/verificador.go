package asm

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/velasco/chmaquina/internal/log"
)

// Resultado is what a successful Verificar call produces: a cleaned, line-for-line copy of the
// source, the variables it declares (in declaration order), the labels it defines, and an estimate
// of how long the program runs for.
type Resultado struct {
	Lineas    []string
	Variables []Variable
	Etiquetas map[string]int
	Rafaga    int
}

// BuscarVariable returns the declared variable by name, if any.
func (r Resultado) BuscarVariable(nombre string) (Variable, bool) {
	for _, v := range r.Variables {
		if v.Nombre == nombre {
			return v, true
		}
	}

	return Variable{}, false
}

// Verificador checks CH source for syntax errors and produces a Resultado. It holds no state
// outside of a single Verificar call and may be reused.
type Verificador struct {
	log *log.Logger
}

// NewVerificador creates a verifier that logs to the given logger.
func NewVerificador(logger *log.Logger) *Verificador {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Verificador{log: logger}
}

// Verificar checks source text and returns its normalized lines, variable table, and label table,
// or the syntax errors it found. Per-line syntax errors are collected and reported jointly — a
// single *SyntaxError when there is one, otherwise an error whose Unwrap() []error lists them all —
// so a caller sees every problem, not just the first.
func (v *Verificador) Verificar(fuente string) (Resultado, error) {
	ctx := &contexto{variables: map[string]bool{}}

	var (
		lineasCrudas = strings.Split(fuente, "\n")
		lineas       = make([]string, 0, len(lineasCrudas))
		variables    = make([]Variable, 0)
		errs         []error
	)

	ctx.etiquetas = map[string]int{}

	for i, cruda := range lineasCrudas {
		pos := i + 1

		normalizada, op, args, noop, err := procesarLinea(cruda)
		if err != nil {
			errs = append(errs, &SyntaxError{Linea: pos, Texto: strings.TrimSpace(cruda), Razon: err.Error()})
			lineas = append(lineas, normalizada)

			continue
		}

		lineas = append(lineas, normalizada)

		if noop {
			continue
		}

		switch op {
		case "nueva":
			variable, razon := verificarNueva(ctx, args)
			if razon != "" {
				errs = append(errs, &SyntaxError{Linea: pos, Texto: strings.TrimSpace(cruda), Razon: razon})
				continue
			}

			ctx.variables[variable.Nombre] = true
			variables = append(variables, variable)

		case "etiqueta":
			k, razon := verificarEtiqueta(args)
			if razon != "" {
				errs = append(errs, &SyntaxError{Linea: pos, Texto: strings.TrimSpace(cruda), Razon: razon})
				continue
			}

			ctx.etiquetas[args[0]] = k - 1

		default:
			regla, ok := tabla[op]
			if !ok {
				errs = append(errs, &SyntaxError{Linea: pos, Texto: strings.TrimSpace(cruda), Razon: "instrucción desconocida: " + op})
				continue
			}

			if len(args) < regla.minArgs || len(args) > regla.maxArgs {
				errs = append(errs, &SyntaxError{Linea: pos, Texto: strings.TrimSpace(cruda), Razon: "número de argumentos inválido"})
				continue
			}

			if razon := regla.validar(ctx, args); razon != "" {
				errs = append(errs, &SyntaxError{Linea: pos, Texto: strings.TrimSpace(cruda), Razon: razon})
			}
		}
	}

	for nombre := range ctx.referenciadas {
		if _, ok := ctx.etiquetas[nombre]; !ok {
			errs = append(errs, &SyntaxError{Linea: 0, Texto: nombre, Razon: "etiqueta no definida: " + nombre})
		}
	}

	if len(errs) > 0 {
		return Resultado{}, joinSyntaxErrors(errs)
	}

	rafaga := 0

	for _, linea := range lineas {
		trimmed := strings.TrimLeft(linea, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		op := strings.Fields(trimmed)[0]
		if esEjecutable(op) {
			rafaga++
		}
	}

	v.log.Debug("programa verificado", "lineas", len(lineas), "variables", len(variables),
		"etiquetas", len(ctx.etiquetas), "rafaga", rafaga)

	return Resultado{
		Lineas:    lineas,
		Variables: variables,
		Etiquetas: ctx.etiquetas,
		Rafaga:    rafaga,
	}, nil
}

// procesarLinea normalizes a single source line and splits it into its instruction and arguments.
// Empty lines and comments are returned completely unchanged, as no-op placeholders.
func procesarLinea(cruda string) (normalizada, op string, args []string, noop bool, err error) {
	trimmed := strings.TrimLeft(cruda, " \t")

	if trimmed == "" || strings.HasPrefix(trimmed, "//") {
		return cruda, "", nil, true, nil
	}

	campos := strings.Fields(trimmed)
	op = campos[0]

	if op == "nueva" {
		partes := splitNueva(trimmed)
		if len(partes) < 3 {
			return trimmed, op, nil, false, errNueva
		}

		normalizada = strings.Join(partes, " ")
		args = partes[1:]

		return normalizada, "nueva", args, false, nil
	}

	normalizada = strings.Join(campos, " ")
	args = campos[1:]

	return normalizada, op, args, false, nil
}

var errNueva = errors.New("nueva requiere variable y tipo")

// splitNueva splits a "nueva" line into at most four whitespace-delimited pieces: the instruction,
// the variable name, the type, and — if present — the value, preserved verbatim (including any
// internal or trailing whitespace) since it may be a multi-word literal.
func splitNueva(linea string) []string {
	var partes []string

	resto := linea

	for i := 0; i < 3; i++ {
		resto = strings.TrimLeft(resto, " \t")
		if resto == "" {
			break
		}

		idx := strings.IndexAny(resto, " \t")
		if idx < 0 {
			partes = append(partes, resto)
			resto = ""

			break
		}

		partes = append(partes, resto[:idx])
		resto = resto[idx:]
	}

	resto = strings.TrimLeft(resto, " \t")
	if resto != "" {
		partes = append(partes, resto)
	}

	return partes
}

func verificarNueva(ctx *contexto, args []string) (Variable, string) {
	if len(args) < 2 || len(args) > 3 {
		return Variable{}, "nueva requiere 2 o 3 argumentos"
	}

	nombre := args[0]
	if nombre == "acumulador" {
		return Variable{}, "nombre reservado: acumulador"
	}

	tipo, ok := tipoDesde(args[1])
	if !ok {
		return Variable{}, "tipo desconocido: " + args[1]
	}

	var valor string
	if len(args) == 3 {
		valor = args[2]
		if !coincideTipo(tipo, valor) {
			return Variable{}, "valor no coincide con el tipo " + tipo.String()
		}
	} else {
		valor = valorPorDefecto(tipo)
	}

	return Variable{Nombre: nombre, Tipo: tipo, Valor: valor}, ""
}

func verificarEtiqueta(args []string) (int, string) {
	if len(args) != 2 {
		return 0, "etiqueta requiere nombre y número de línea"
	}

	k, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return 0, "etiqueta requiere un entero"
	}

	return k, ""
}

func esEntero(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

var (
	reEntero = regexp.MustCompile(`^-?\d+\s*$`)
	reReal   = regexp.MustCompile(`^-?\d+\.?\d*\s*$`)
)

// coincideTipo reports whether a literal value matches a declared type.
func coincideTipo(t Tipo, valor string) bool {
	switch t {
	case TipoC:
		return true
	case TipoI:
		return reEntero.MatchString(valor)
	case TipoR:
		return reReal.MatchString(valor)
	case TipoL:
		return valor == "0" || valor == "1"
	default:
		return false
	}
}

func joinSyntaxErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}

	joined := make([]error, len(errs))
	copy(joined, errs)

	return &multiSyntaxError{errs: joined}
}

type multiSyntaxError struct {
	errs []error
}

func (m *multiSyntaxError) Error() string {
	var b strings.Builder

	for i, err := range m.errs {
		if i > 0 {
			b.WriteString("; ")
		}

		b.WriteString(err.Error())
	}

	return b.String()
}

func (m *multiSyntaxError) Is(err error) bool {
	return err == ErrSintaxis //nolint:errorlint // intentional sentinel comparison
}

func (m *multiSyntaxError) Unwrap() []error {
	return m.errs
}
