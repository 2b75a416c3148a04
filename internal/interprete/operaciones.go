package interprete

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/velasco/chmaquina/internal/maquina"
)

// cargue copies a variable's value into the accumulator.
func cargue(estado *maquina.Estado, id, variable string) error {
	celda, err := estado.BuscarVariable(id, variable)
	if err != nil {
		return err
	}

	return estado.AsignarAcumulador(id, celda.Valor)
}

// almacene copies the accumulator into a variable.
func almacene(estado *maquina.Estado, id, variable string) error {
	acumulador, err := estado.Acumulador(id)
	if err != nil {
		return err
	}

	return estado.AsignarVariable(id, variable, acumulador.Valor)
}

// lea blocks on the interpreter's keyboard and stores the line it returns into a variable.
func (in *Interprete) lea(ctx context.Context, estado *maquina.Estado, id, variable string) error {
	if in.Teclado == nil {
		return fmt.Errorf("%w: no hay teclado configurado para lea", ErrEjecucion)
	}

	valor, err := in.Teclado.Leer(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEjecucion, err)
	}

	return estado.AsignarVariable(id, variable, valor)
}

// vayasi reads the accumulator as a number and jumps to the positive or negative label depending on
// its sign; a zero accumulator falls through to the next line, like vaya's absence.
func (in *Interprete) vayasi(estado *maquina.Estado, id string, args []string) error {
	valor, err := valorAcumuladorFloat(estado, id)
	if err != nil {
		return err
	}

	switch {
	case valor > 0:
		return estado.Vaya(id, args[0])
	case valor < 0:
		return estado.Vaya(id, args[1])
	default:
		return estado.IncrementarContador(id)
	}
}

// aritmetica applies one of the six numeric operators to the accumulator and a variable's value,
// storing the result back into the accumulator.
func aritmetica(estado *maquina.Estado, id, op, variable string) error {
	acumulador, err := valorAcumuladorFloat(estado, id)
	if err != nil {
		return err
	}

	celda, err := estado.BuscarVariable(id, variable)
	if err != nil {
		return err
	}

	operando, err := strconv.ParseFloat(strings.TrimSpace(celda.Valor), 64)
	if err != nil {
		return fmt.Errorf("%w: %s no es numérico: %w", ErrEjecucion, variable, err)
	}

	var resultado float64

	switch op {
	case "sume":
		resultado = acumulador + operando
	case "reste":
		resultado = acumulador - operando
	case "multiplique":
		resultado = acumulador * operando
	case "divida":
		if operando == 0 {
			return fmt.Errorf("%w: división por cero", ErrEjecucion)
		}

		resultado = acumulador / operando
	case "potencia":
		if acumulador == 0 && operando < 0 {
			return fmt.Errorf("%w: cero elevado a potencia negativa", ErrEjecucion)
		}

		resultado = math.Pow(acumulador, operando)
	case "modulo":
		if operando == 0 {
			return fmt.Errorf("%w: módulo por cero", ErrEjecucion)
		}

		resultado = math.Mod(acumulador, operando)
	default:
		return fmt.Errorf("%w: operador aritmético desconocido: %s", ErrEjecucion, op)
	}

	return estado.AsignarAcumulador(id, formatFloat(resultado))
}

// cadena applies the three string operators against the raw source token, not a variable lookup —
// S and N are literal arguments, never variable references. concatene appends the token to the
// accumulator; elimine removes every occurrence of the token from it; extraiga keeps the first N
// characters, where N is the token parsed as an integer.
func cadena(estado *maquina.Estado, id, op, token string) error {
	acumulador, err := estado.Acumulador(id)
	if err != nil {
		return err
	}

	valor := acumulador.Valor
	if valor == "" {
		valor = " "
	}

	switch op {
	case "concatene":
		valor += token
	case "elimine":
		valor = strings.ReplaceAll(valor, token, "")
	case "extraiga":
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return fmt.Errorf("%w: %s no es un entero: %w", ErrEjecucion, token, err)
		}

		if n < 0 {
			n = 0
		}

		if n > len(valor) {
			n = len(valor)
		}

		valor = valor[:n]
	default:
		return fmt.Errorf("%w: operador de cadena desconocido: %s", ErrEjecucion, op)
	}

	return estado.AsignarAcumulador(id, valor)
}

// logica applies Y (and) or O (or) across the two named logical operands, storing "1" or "0" into
// the third named variable. Unlike the arithmetic and string operators, Y/O/NO never touch the
// accumulator at all — their result goes straight into the caller-named output variable.
func logica(estado *maquina.Estado, id, op string, args []string) error {
	a, err := valorLogico(estado, id, args[0])
	if err != nil {
		return err
	}

	b, err := valorLogico(estado, id, args[1])
	if err != nil {
		return err
	}

	var resultado bool

	switch op {
	case "Y":
		resultado = a && b
	case "O":
		resultado = a || b
	default:
		return fmt.Errorf("%w: operador lógico desconocido: %s", ErrEjecucion, op)
	}

	return estado.AsignarVariable(id, args[2], boolToLogico(resultado))
}

// negacion inverts a single logical variable's value, storing the result into the second named
// variable.
func negacion(estado *maquina.Estado, id string, args []string) error {
	operando, err := valorLogico(estado, id, args[0])
	if err != nil {
		return err
	}

	return estado.AsignarVariable(id, args[1], boolToLogico(!operando))
}

func valorLogico(estado *maquina.Estado, id, nombre string) (bool, error) {
	celda, err := estado.BuscarVariable(id, nombre)
	if err != nil {
		return false, err
	}

	return strings.TrimSpace(celda.Valor) == "1", nil
}

// imprima sends a value to the printer log; muestre sends it to the screen log. Both accept either
// a declared variable's name or the literal word "acumulador".
func imprima(estado *maquina.Estado, id, nombre string) error {
	valor, err := resolverValor(estado, id, nombre)
	if err != nil {
		return err
	}

	estado.Impresora = append(estado.Impresora, maquina.Mensaje{Programa: id, Texto: valor})

	return nil
}

func muestre(estado *maquina.Estado, id, nombre string) error {
	valor, err := resolverValor(estado, id, nombre)
	if err != nil {
		return err
	}

	estado.Pantalla = append(estado.Pantalla, maquina.Mensaje{Programa: id, Texto: valor})

	return nil
}

func resolverValor(estado *maquina.Estado, id, nombre string) (string, error) {
	celda, err := estado.BuscarVariable(id, nombre)
	if err != nil {
		return "", err
	}

	return celda.Valor, nil
}

func valorAcumuladorFloat(estado *maquina.Estado, id string) (float64, error) {
	celda, err := estado.Acumulador(id)
	if err != nil {
		return 0, err
	}

	texto := strings.TrimSpace(celda.Valor)
	if texto == "" {
		texto = "0"
	}

	valor, err := strconv.ParseFloat(texto, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: acumulador no es numérico: %w", ErrEjecucion, err)
	}

	return valor, nil
}

// formatFloat renders a float the way the reference implementation's str() does: always with a
// decimal point, even for whole numbers, so 120.0 never prints as plain 120.
func formatFloat(f float64) string {
	texto := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(texto, ".") {
		texto += ".0"
	}

	return texto
}

func boolToLogico(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
