package asm_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/velasco/chmaquina/internal/asm"
	"github.com/velasco/chmaquina/internal/log"
)

// VerificadorHarness holds the test state and provides helpers.
type VerificadorHarness struct {
	*testing.T
}

func (h VerificadorHarness) Verificador() *Verificador {
	return NewVerificador(log.DefaultLogger())
}

func TestVerificarProgramasValidos(tt *testing.T) {
	h := VerificadorHarness{tt}

	cases := []struct {
		nombre    string
		fuente    string
		variables int
		rafaga    int
	}{
		{
			nombre:    "sin instrucciones",
			fuente:    "// comentario\n\n",
			variables: 0,
			rafaga:    0,
		},
		{
			nombre:    "no-op de una línea",
			fuente:    "retorne 0",
			variables: 0,
			rafaga:    1,
		},
		{
			nombre:    "carga y acumula",
			fuente:    "nueva variable C hola\ncargue variable\nretorne 0",
			variables: 1,
			rafaga:    2,
		},
		{
			nombre:    "declarativas no cuentan para la ráfaga",
			fuente:    "nueva variable I 3\netiqueta inicio 1",
			variables: 1,
			rafaga:    0,
		},
	}

	for _, c := range cases {
		tt.Run(c.nombre, func(tt *testing.T) {
			resultado, err := h.Verificador().Verificar(c.fuente)
			if err != nil {
				tt.Fatalf("Verificar: %s", err)
			}

			if len(resultado.Variables) != c.variables {
				tt.Errorf("variables = %d, want %d", len(resultado.Variables), c.variables)
			}

			if resultado.Rafaga != c.rafaga {
				tt.Errorf("ráfaga = %d, want %d", resultado.Rafaga, c.rafaga)
			}
		})
	}
}

func TestVerificarFactorial(tt *testing.T) {
	h := VerificadorHarness{tt}

	fuente := strings.Join([]string{
		"nueva               unidad           I         1",
		"nueva m I 5",
		"nueva respuesta I 1",
		"nueva intermedia I 0",
		"cargue m",
		"almacene respuesta",
		"reste unidad",
		"almacene intermedia",
		"cargue respuesta",
		"multiplique intermedia",
		"almacene respuesta",
		"cargue intermedia",
		"reste unidad",
		"vayasi itere fin",
		"etiqueta itere 8",
		"etiqueta fin 19",
		"muestre respuesta",
		"imprima respuesta",
		"retorne 0",
	}, "\n")

	resultado, err := h.Verificador().Verificar(fuente)
	if err != nil {
		tt.Fatalf("Verificar: %s", err)
	}

	if len(resultado.Variables) != 4 {
		tt.Errorf("variables = %d, want 4", len(resultado.Variables))
	}

	if _, ok := resultado.Etiquetas["itere"]; !ok {
		tt.Error("etiqueta itere no registrada")
	}

	if _, ok := resultado.Etiquetas["fin"]; !ok {
		tt.Error("etiqueta fin no registrada")
	}
}

func TestVerificarFixedPoint(tt *testing.T) {
	h := VerificadorHarness{tt}
	v := h.Verificador()

	fuente := "nueva               unidad           I         1\ncargue unidad\nretorne 0"

	primero, err := v.Verificar(fuente)
	if err != nil {
		tt.Fatalf("Verificar: %s", err)
	}

	segundo, err := v.Verificar(strings.Join(primero.Lineas, "\n"))
	if err != nil {
		tt.Fatalf("Verificar (normalizado): %s", err)
	}

	if len(primero.Lineas) != len(segundo.Lineas) {
		tt.Fatalf("líneas = %d, want %d", len(segundo.Lineas), len(primero.Lineas))
	}

	for i := range primero.Lineas {
		if primero.Lineas[i] != segundo.Lineas[i] {
			tt.Errorf("línea %d: %q != %q", i, segundo.Lineas[i], primero.Lineas[i])
		}
	}
}

func TestVerificarErrores(tt *testing.T) {
	h := VerificadorHarness{tt}

	cases := []struct {
		nombre string
		fuente string
	}{
		{"variable no definida", "cargue fantasma"},
		{"nueva sin tipo", "nueva variable"},
		{"tipo desconocido", "nueva variable Z"},
		{"nombre reservado", "nueva acumulador I 1"},
		{"etiqueta no definida", "vayasi nunca tampoco"},
		{"instrucción desconocida", "salte loop"},
		{"valor no coincide con el tipo", "nueva variable I hola"},
	}

	for _, c := range cases {
		tt.Run(c.nombre, func(tt *testing.T) {
			_, err := h.Verificador().Verificar(c.fuente)
			if err == nil {
				tt.Fatal("Verificar: se esperaba un error")
			}

			if !errors.Is(err, ErrSintaxis) {
				tt.Errorf("errors.Is(err, ErrSintaxis) = false, err = %s", err)
			}
		})
	}
}

func TestVerificarErroresMultiples(tt *testing.T) {
	h := VerificadorHarness{tt}

	_, err := h.Verificador().Verificar("cargue fantasma\nalmacene otrofantasma")
	if err == nil {
		tt.Fatal("Verificar: se esperaba un error")
	}

	var unwrapper interface{ Unwrap() []error }
	if !errors.As(err, &unwrapper) {
		tt.Fatalf("err no implementa Unwrap() []error: %T", err)
	}

	if len(unwrapper.Unwrap()) != 2 {
		tt.Errorf("errores = %d, want 2", len(unwrapper.Unwrap()))
	}
}
