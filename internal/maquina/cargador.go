package maquina

// cargador.go loads a verified program into a machine state.

import (
	"fmt"

	"github.com/velasco/chmaquina/internal/asm"
)

// CargarFuente verifies source text and loads it into the state in one call, the way a caller at
// the program-loading boundary actually wants it: a syntax error never reaches the caller as a bare
// *asm.SyntaxError, it's wrapped as *InvalidProgram.
func CargarFuente(estado *Estado, verificador *asm.Verificador, fuente string) (*Estado, error) {
	resultado, err := verificador.Verificar(fuente)
	if err != nil {
		return nil, &InvalidProgram{Err: err}
	}

	return Cargar(estado, resultado)
}

// Cargar loads a verified program into the state, returning a new state. It never mutates its
// input: on any error, the caller's state is untouched.
func Cargar(estado *Estado, resultado asm.Resultado) (*Estado, error) {
	nuevo := estado.Copiar()

	id := fmt.Sprintf("%03d", len(nuevo.Programas)+len(nuevo.Terminados))

	necesario := len(resultado.Lineas) + len(resultado.Variables)
	disponible := len(nuevo.Memoria) - nuevo.Pivote

	if disponible < necesario {
		return nil, &OutOfMemory{Requerido: necesario, Disponible: disponible}
	}

	inicio := nuevo.Pivote
	variables := make(map[string]int, len(resultado.Variables)+1)
	etiquetas := make(map[string]int, len(resultado.Etiquetas))

	for i, linea := range resultado.Lineas {
		celda := &Celda{
			Programa: id,
			Nombre:   fmt.Sprintf("L%03d", i+1),
			Tipo:     TipoCodigo,
			Valor:    linea,
		}

		if _, err := nuevo.AgregarAMemoria(celda); err != nil {
			return nil, err
		}
	}

	for _, v := range resultado.Variables {
		celda := &Celda{
			Programa: id,
			Nombre:   v.Nombre,
			Tipo:     tipoCeldaDesde(v.Tipo),
			Valor:    v.Valor,
		}

		pos, err := nuevo.AgregarAMemoria(celda)
		if err != nil {
			return nil, err
		}

		variables[v.Nombre] = pos
	}

	acumulador := &Celda{Programa: id, Nombre: "acumulador", Tipo: TipoMultiple, Valor: ""}

	posAcumulador, err := nuevo.AgregarAMemoria(acumulador)
	if err != nil {
		return nil, err
	}

	variables["acumulador"] = posAcumulador

	for nombre, idx := range resultado.Etiquetas {
		etiquetas[nombre] = idx
	}

	datos := inicio + len(resultado.Lineas)
	final := datos + len(resultado.Variables) + 1

	prog := &Programa{
		ID:            id,
		Inicio:        inicio,
		Contador:      0,
		Datos:         datos,
		Final:         final,
		TiempoLlegada: nuevo.TiempoLlegada,
		TiempoRafaga:  resultado.Rafaga,
	}

	nuevo.Programas[id] = prog
	nuevo.Variables[id] = variables
	nuevo.Etiquetas[id] = etiquetas

	avance := (len(resultado.Lineas) + 3) / 4 // ceil(len(code)/4)
	nuevo.TiempoLlegada += avance

	if prog.TiempoLlegada <= nuevo.Reloj {
		nuevo.Listos = append(nuevo.Listos, id)
	}

	nuevo.Log().Debug("programa cargado",
		"id", id, "inicio", inicio, "final", final,
		"tiempo_llegada", prog.TiempoLlegada, "rafaga", prog.TiempoRafaga)

	return nuevo, nil
}
