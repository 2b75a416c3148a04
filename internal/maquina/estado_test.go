package maquina_test

import (
	"errors"
	"testing"

	. "github.com/velasco/chmaquina/internal/maquina"
)

func config() Config {
	return Config{TamanoMemoria: 32, TamanoKernel: 2, Quantum: QuantumInfinito, Algoritmo: FCFS}
}

func TestNuevoPivote(tt *testing.T) {
	estado := Nuevo(config(), nil)

	if estado.Pivote != 3 {
		tt.Errorf("Pivote = %d, want 3", estado.Pivote)
	}

	if len(estado.Memoria) != 32 {
		tt.Errorf("len(Memoria) = %d, want 32", len(estado.Memoria))
	}
}

func TestCopiarEsIndependiente(tt *testing.T) {
	original := Nuevo(config(), nil)

	celda := &Celda{Programa: "000", Nombre: "L001", Tipo: TipoCodigo, Valor: "retorne 0"}
	if _, err := original.AgregarAMemoria(celda); err != nil {
		tt.Fatalf("AgregarAMemoria: %s", err)
	}

	original.Programas["000"] = &Programa{ID: "000", Inicio: 3}
	original.Listos = append(original.Listos, "000")

	copia := original.Copiar()

	copia.Programas["000"].Contador = 5
	copia.Memoria[3].Valor = "mutado"
	copia.Listos[0] = "999"

	if original.Programas["000"].Contador != 0 {
		tt.Errorf("el contador del original cambió: %d", original.Programas["000"].Contador)
	}

	if original.Memoria[3].Valor != "retorne 0" {
		tt.Errorf("la memoria del original cambió: %q", original.Memoria[3].Valor)
	}

	if original.Listos[0] != "000" {
		tt.Errorf("la cola del original cambió: %q", original.Listos[0])
	}
}

func TestSiguienteInstruccionSegmentacion(tt *testing.T) {
	estado := Nuevo(config(), nil)

	celda := &Celda{Programa: "000", Nombre: "L001", Tipo: TipoCodigo, Valor: "retorne 0"}
	if _, err := estado.AgregarAMemoria(celda); err != nil {
		tt.Fatalf("AgregarAMemoria: %s", err)
	}

	estado.Programas["001"] = &Programa{ID: "001", Inicio: 3}
	estado.Listos = append(estado.Listos, "001")

	_, _, _, err := estado.SiguienteInstruccion()

	var fallo *SegmentationFault
	if err == nil {
		tt.Fatal("se esperaba un fallo de segmentación")
	} else if !errors.As(err, &fallo) {
		tt.Fatalf("err = %T, want *SegmentationFault", err)
	}
}

func TestAgregarAMemoriaFueraDeMemoria(tt *testing.T) {
	estado := Nuevo(Config{TamanoMemoria: 4, TamanoKernel: 2}, nil)

	if _, err := estado.AgregarAMemoria(&Celda{}); err != nil {
		tt.Fatalf("primera escritura: %s", err)
	}

	if _, err := estado.AgregarAMemoria(&Celda{}); err == nil {
		tt.Fatal("se esperaba OutOfMemory")
	}
}

func TestAvanzarTiempoLevantaCursorDeLlegada(tt *testing.T) {
	estado := Nuevo(config(), nil)
	estado.TiempoLlegada = 0

	estado.AvanzarTiempo(5)

	if estado.Reloj != 5 {
		tt.Errorf("Reloj = %d, want 5", estado.Reloj)
	}

	if estado.TiempoLlegada != 5 {
		tt.Errorf("TiempoLlegada = %d, want 5", estado.TiempoLlegada)
	}
}

func TestTerminarMuevePrograma(tt *testing.T) {
	estado := Nuevo(config(), nil)
	estado.Programas["000"] = &Programa{ID: "000"}
	estado.Listos = []string{"000"}

	if err := estado.Terminar("000"); err != nil {
		tt.Fatalf("Terminar: %s", err)
	}

	if _, ok := estado.Programas["000"]; ok {
		tt.Error("el programa sigue en Programas")
	}

	if _, ok := estado.Terminados["000"]; !ok {
		tt.Error("el programa no está en Terminados")
	}

	if len(estado.Listos) != 0 {
		tt.Errorf("Listos = %v, want vacío", estado.Listos)
	}
}
