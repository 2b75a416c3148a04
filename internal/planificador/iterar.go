package planificador

import (
	"context"
	"iter"

	"github.com/velasco/chmaquina/internal/interprete"
	"github.com/velasco/chmaquina/internal/maquina"
)

// Iterar drives a machine to completion, one instruction at a time, yielding the state after every
// step. It stops when the ready queue is empty and nothing remains to arrive, when the context is
// cancelled, or when a step returns an error — the error is yielded alongside a nil state and no
// further steps run.
//
// Admission of newly-arrived programs happens every step, not just at re-plan points, so a program
// whose arrival time lands mid-burst is waiting in line the moment the running program yields the
// processor. RR additionally tracks how long the current head has held the processor and rotates it
// to the back of the queue once its quantum is spent; FCFS and SJF never preempt a running program.
func Iterar(ctx context.Context, in *interprete.Interprete, inicial *maquina.Estado, cfg maquina.Config) iter.Seq2[*maquina.Estado, error] {
	return func(yield func(*maquina.Estado, error) bool) {
		estado := Planear(inicial, cfg.Algoritmo)
		consumido := 0

		for !estado.NadaPorHacer() || len(estado.Programas) > 0 {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			// With an empty queue but programs still to arrive, the step only advances the clock
			// and cabeza stays "", so the re-plan below admits whatever has arrived by then.
			cabeza := ""
			if !estado.NadaPorHacer() {
				cabeza = estado.Listos[0]
			}
			relojAntes := estado.Reloj

			nuevo, err := in.Step(ctx, estado)
			if err != nil {
				yield(nil, err)
				return
			}

			estado = nuevo
			consumido += estado.Reloj - relojAntes

			if !yield(estado, nil) {
				return
			}

			if _, sigueActivo := estado.Programas[cabeza]; !sigueActivo {
				// cabeza terminated (retorne), or the queue was idle: replan the whole queue fresh.
				estado = Planear(estado, cfg.Algoritmo)
				consumido = 0

				continue
			}

			estado = admitirEnCola(estado, cfg.Algoritmo)

			if cfg.Algoritmo == maquina.RR && !cfg.Infinito() && consumido >= cfg.Quantum {
				estado = RotarListos(estado)
				consumido = 0
			}
		}
	}
}

// admitirEnCola is like admitir but leaves the current head alone: it only affects programs still
// waiting, so a program that's mid-burst is never reshuffled out from under itself.
func admitirEnCola(estado *maquina.Estado, algoritmo maquina.Algoritmo) *maquina.Estado {
	if len(estado.Listos) == 0 {
		return Planear(estado, algoritmo)
	}

	nuevo := estado.Copiar()
	cabeza, resto := nuevo.Listos[0], nuevo.Listos[1:]

	presentes := make(map[string]bool, len(nuevo.Listos))
	presentes[cabeza] = true

	for _, id := range resto {
		presentes[id] = true
	}

	for _, id := range nuevo.ProgramasDisponibles() {
		if !presentes[id] {
			resto = append(resto, id)
		}
	}

	if algoritmo == maquina.SJF {
		ordenarSlice(resto, nuevo)
	}

	nuevo.Listos = append([]string{cabeza}, resto...)

	return nuevo
}
