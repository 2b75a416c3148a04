package maquina_test

import (
	"errors"
	"testing"

	"github.com/velasco/chmaquina/internal/asm"
	. "github.com/velasco/chmaquina/internal/maquina"
)

func verificar(tt *testing.T, fuente string) asm.Resultado {
	tt.Helper()

	resultado, err := asm.NewVerificador(nil).Verificar(fuente)
	if err != nil {
		tt.Fatalf("Verificar: %s", err)
	}

	return resultado
}

func TestCargarUnPrograma(tt *testing.T) {
	estado := Nuevo(config(), nil)
	resultado := verificar(tt, "nueva variable C hola\ncargue variable\nretorne 0")

	nuevo, err := Cargar(estado, resultado)
	if err != nil {
		tt.Fatalf("Cargar: %s", err)
	}

	prog, ok := nuevo.Programas["000"]
	if !ok {
		tt.Fatal("programa 000 no registrado")
	}

	if prog.Inicio != 3 {
		tt.Errorf("Inicio = %d, want 3", prog.Inicio)
	}

	if len(nuevo.Listos) != 1 || nuevo.Listos[0] != "000" {
		tt.Errorf("Listos = %v, want [000]", nuevo.Listos)
	}

	if _, err := nuevo.BuscarVariable("000", "acumulador"); err != nil {
		tt.Errorf("acumulador no asignado: %s", err)
	}
}

func TestCargarNoMutaElOriginal(tt *testing.T) {
	estado := Nuevo(config(), nil)
	resultado := verificar(tt, "retorne 0")

	if _, err := Cargar(estado, resultado); err != nil {
		tt.Fatalf("Cargar: %s", err)
	}

	if len(estado.Programas) != 0 {
		tt.Errorf("el estado original tiene %d programas, want 0", len(estado.Programas))
	}

	if estado.Pivote != 3 {
		tt.Errorf("el pivote original cambió a %d", estado.Pivote)
	}
}

func TestCargarFueraDeMemoria(tt *testing.T) {
	estado := Nuevo(Config{TamanoMemoria: 10, TamanoKernel: 9}, nil)

	fuente := `nueva               unidad           I         1
nueva m I 5
nueva respuesta I 1
nueva intermedia I 0
cargue m
almacene respuesta
reste unidad
almacene intermedia
cargue respuesta
multiplique intermedia
almacene respuesta
cargue intermedia
reste unidad
vayasi itere fin
etiqueta itere 8
etiqueta fin 19
muestre respuesta
imprima respuesta
retorne 0`

	resultado := verificar(tt, fuente)

	_, err := Cargar(estado, resultado)
	if err == nil {
		tt.Fatal("se esperaba OutOfMemory")
	}

	if !errors.Is(err, ErrFueraDeMemoria) {
		tt.Errorf("err = %s, want ErrFueraDeMemoria", err)
	}
}

func TestCargarAvanzaCursorDeLlegada(tt *testing.T) {
	estado := Nuevo(Config{TamanoMemoria: 256, TamanoKernel: 2}, nil)

	cuatroLineas := "etiqueta a 1\netiqueta b 2\netiqueta c 3\nretorne 0"

	for i := 0; i < 5; i++ {
		resultado := verificar(tt, cuatroLineas)

		nuevo, err := Cargar(estado, resultado)
		if err != nil {
			tt.Fatalf("Cargar #%d: %s", i, err)
		}

		estado = nuevo
	}

	for i := 0; i < 5; i++ {
		id := idDePrograma(i)

		prog, ok := estado.Programas[id]
		if !ok {
			tt.Fatalf("programa %s no registrado", id)
		}

		if prog.TiempoLlegada != i {
			tt.Errorf("programa %s: TiempoLlegada = %d, want %d", id, prog.TiempoLlegada, i)
		}
	}
}

func TestCargarFuenteEnvuelveErrorDeSintaxis(tt *testing.T) {
	estado := Nuevo(config(), nil)

	_, err := CargarFuente(estado, asm.NewVerificador(nil), "instruccion-desconocida x")
	if err == nil {
		tt.Fatal("se esperaba InvalidProgram")
	}

	var invalido *InvalidProgram
	if !errors.As(err, &invalido) {
		tt.Fatalf("err = %T(%s), want *InvalidProgram", err, err)
	}

	if !errors.Is(err, ErrProgramaInvalido) {
		tt.Errorf("err = %s, want ErrProgramaInvalido", err)
	}
}

func TestCargarFuenteCargaProgramaValido(tt *testing.T) {
	estado := Nuevo(config(), nil)

	nuevo, err := CargarFuente(estado, asm.NewVerificador(nil), "retorne 0")
	if err != nil {
		tt.Fatalf("CargarFuente: %s", err)
	}

	if _, ok := nuevo.Programas["000"]; !ok {
		tt.Fatal("programa 000 no registrado")
	}
}

func idDePrograma(i int) string {
	return []string{"000", "001", "002", "003", "004"}[i]
}
