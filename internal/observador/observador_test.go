package observador_test

import (
	"testing"

	"github.com/velasco/chmaquina/internal/maquina"
	. "github.com/velasco/chmaquina/internal/observador"
)

func estadoConLogs(impresora, pantalla []maquina.Mensaje) *maquina.Estado {
	cfg := maquina.Config{TamanoMemoria: 16, TamanoKernel: 1}
	e := maquina.Nuevo(cfg, nil)
	e.Impresora = impresora
	e.Pantalla = pantalla

	return e
}

func TestNuevosDetectaCrecimiento(tt *testing.T) {
	anterior := estadoConLogs(
		[]maquina.Mensaje{{Programa: "000", Texto: "a"}},
		nil,
	)

	nuevo := estadoConLogs(
		[]maquina.Mensaje{{Programa: "000", Texto: "a"}, {Programa: "000", Texto: "b"}},
		[]maquina.Mensaje{{Programa: "001", Texto: "c"}},
	)

	mensajes := Nuevos(anterior, nuevo)

	if len(mensajes) != 2 {
		tt.Fatalf("Nuevos = %v, want 2 entries", mensajes)
	}

	if mensajes[0].Registro != Impresora || mensajes[0].Texto != "b" {
		tt.Errorf("mensajes[0] = %+v, want impresora/b", mensajes[0])
	}

	if mensajes[1].Registro != Pantalla || mensajes[1].Texto != "c" {
		tt.Errorf("mensajes[1] = %+v, want pantalla/c", mensajes[1])
	}
}

func TestNuevosSinCambios(tt *testing.T) {
	mismo := estadoConLogs(
		[]maquina.Mensaje{{Programa: "000", Texto: "a"}},
		[]maquina.Mensaje{{Programa: "000", Texto: "b"}},
	)

	if mensajes := Nuevos(mismo, mismo); mensajes != nil {
		tt.Errorf("Nuevos = %v, want nil", mensajes)
	}
}
