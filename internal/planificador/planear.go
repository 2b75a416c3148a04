package planificador

import (
	"sort"

	"github.com/velasco/chmaquina/internal/maquina"
)

// Planear admits any newly-arrived programs into the ready queue and reorders it per the given
// policy, returning a new state. FCFS and RR both keep arrival order here — RR's rotation only
// happens on quantum expiry, in RotarListos, not at admission time. SJF sorts by estimated burst,
// breaking ties by arrival order so two equally-short programs keep the order they were admitted in.
func Planear(estado *maquina.Estado, algoritmo maquina.Algoritmo) *maquina.Estado {
	nuevo := estado.Copiar()

	admitir(nuevo)

	if algoritmo == maquina.SJF {
		ordenarPorRafaga(nuevo)
	}

	return nuevo
}

// admitir appends programs whose arrival time has passed to the ready queue, skipping anyone
// already on it. ProgramasDisponibles already returns arrival-ordered ids.
func admitir(estado *maquina.Estado) {
	presentes := make(map[string]bool, len(estado.Listos))
	for _, id := range estado.Listos {
		presentes[id] = true
	}

	for _, id := range estado.ProgramasDisponibles() {
		if !presentes[id] {
			estado.Listos = append(estado.Listos, id)
		}
	}
}

func ordenarPorRafaga(estado *maquina.Estado) {
	ordenarSlice(estado.Listos, estado)
}

// ordenarSlice sorts a slice of program ids by estimated burst, ascending, breaking ties by the
// order they already appear in — so equally-short programs keep arrival order.
func ordenarSlice(ids []string, estado *maquina.Estado) {
	orden := make(map[string]int, len(ids))
	for i, id := range ids {
		orden[id] = i
	}

	sort.SliceStable(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		ra, rb := estado.Programas[a].TiempoRafaga, estado.Programas[b].TiempoRafaga

		if ra != rb {
			return ra < rb
		}

		return orden[a] < orden[b]
	})
}

// RotarListos moves the head of the ready queue to the tail — the preemption step RR applies when a
// program's quantum elapses without it terminating.
func RotarListos(estado *maquina.Estado) *maquina.Estado {
	nuevo := estado.Copiar()

	if len(nuevo.Listos) < 2 {
		return nuevo
	}

	cabeza := nuevo.Listos[0]
	nuevo.Listos = append(nuevo.Listos[1:], cabeza)

	return nuevo
}
