package maquina

// estado.go holds the machine snapshot: memory, per-program metadata, variable/label indexes,
// output logs, the ready queue, and the clock. Every mutating method here is called on a state that
// the caller already owns a private copy of — see Copiar. The interpreter and scheduler never
// mutate a state they didn't just copy.

import (
	"fmt"

	"github.com/velasco/chmaquina/internal/log"
)

// Estado is a complete snapshot of the machine: every loaded program's memory, its place in the
// ready queue, and everything it has printed or displayed so far.
type Estado struct {
	Memoria      []*Celda
	Pivote       int
	TamanoKernel int

	// Variables maps a program id to that program's name -> memory position table. Every program's
	// table has a "acumulador" entry.
	Variables map[string]map[string]int

	// Etiquetas maps a program id to that program's label -> zero-based code-line index table.
	Etiquetas map[string]map[string]int

	Programas  map[string]*Programa
	Listos     []string
	Terminados map[string]*Programa

	Impresora []Mensaje
	Pantalla  []Mensaje

	Reloj         int // Monotonically non-decreasing simulated clock.
	TiempoLlegada int // Arrival-time cursor; advances as programs are loaded.

	log *log.Logger
}

// Nuevo builds a fresh state sized to the given configuration. The allocator starts just past the
// reserved kernel region.
func Nuevo(cfg Config, logger *log.Logger) *Estado {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Estado{
		Memoria:      make([]*Celda, cfg.TamanoMemoria),
		Pivote:       cfg.TamanoKernel + 1,
		TamanoKernel: cfg.TamanoKernel,
		Variables:    map[string]map[string]int{},
		Etiquetas:    map[string]map[string]int{},
		Programas:    map[string]*Programa{},
		Terminados:   map[string]*Programa{},
		log:          logger,
	}
}

// Copiar returns a deep copy. The interpreter and scheduler never mutate an input state; they
// always work from the result of Copiar.
func (e *Estado) Copiar() *Estado {
	n := &Estado{
		Memoria:       make([]*Celda, len(e.Memoria)),
		Pivote:        e.Pivote,
		TamanoKernel:  e.TamanoKernel,
		Variables:     make(map[string]map[string]int, len(e.Variables)),
		Etiquetas:     make(map[string]map[string]int, len(e.Etiquetas)),
		Programas:     make(map[string]*Programa, len(e.Programas)),
		Listos:        append([]string(nil), e.Listos...),
		Terminados:    make(map[string]*Programa, len(e.Terminados)),
		Impresora:     append([]Mensaje(nil), e.Impresora...),
		Pantalla:      append([]Mensaje(nil), e.Pantalla...),
		Reloj:         e.Reloj,
		TiempoLlegada: e.TiempoLlegada,
		log:           e.log,
	}

	for i, c := range e.Memoria {
		n.Memoria[i] = c.copia()
	}

	for p, vars := range e.Variables {
		clon := make(map[string]int, len(vars))
		for k, v := range vars {
			clon[k] = v
		}

		n.Variables[p] = clon
	}

	for p, labels := range e.Etiquetas {
		clon := make(map[string]int, len(labels))
		for k, v := range labels {
			clon[k] = v
		}

		n.Etiquetas[p] = clon
	}

	for id, prog := range e.Programas {
		n.Programas[id] = prog.copia()
	}

	for id, prog := range e.Terminados {
		n.Terminados[id] = prog.copia()
	}

	return n
}

// SiguienteInstruccion returns the program id and code string at the head of the ready queue, or
// ok=false if the queue is empty. The segmentation rule is enforced here: the fetched cell must be
// a CODIGO cell owned by the program fetching it.
func (e *Estado) SiguienteInstruccion() (programa string, codigo string, ok bool, err error) {
	if len(e.Listos) == 0 {
		return "", "", false, nil
	}

	id := e.Listos[0]

	prog, existe := e.Programas[id]
	if !existe {
		return "", "", false, fmt.Errorf("%w: programa %s", errNoExiste, id)
	}

	pos := prog.Inicio + prog.Contador
	if pos < 0 || pos >= len(e.Memoria) {
		return "", "", false, &SegmentationFault{Programa: id, Posicion: pos}
	}

	celda := e.Memoria[pos]
	if celda == nil || celda.Tipo != TipoCodigo || celda.Programa != id {
		return "", "", false, &SegmentationFault{Programa: id, Posicion: pos}
	}

	return id, celda.Valor, true, nil
}

// NadaPorHacer is true when the ready queue is empty.
func (e *Estado) NadaPorHacer() bool {
	return len(e.Listos) == 0
}

// BuscarVariable returns the cell a program's variable points to.
func (e *Estado) BuscarVariable(programa, nombre string) (*Celda, error) {
	pos, err := e.posicionVariable(programa, nombre)
	if err != nil {
		return nil, err
	}

	return e.Memoria[pos], nil
}

// AsignarVariable updates a program's variable. If data is a string, only the cell's Valor field
// changes, preserving its type and name. If data is a *Celda, the cell is replaced outright.
func (e *Estado) AsignarVariable(programa, nombre string, data any) error {
	pos, err := e.posicionVariable(programa, nombre)
	if err != nil {
		return err
	}

	switch v := data.(type) {
	case string:
		e.Memoria[pos].Valor = v
	case *Celda:
		e.Memoria[pos] = v
	default:
		return fmt.Errorf("%w: tipo de dato inesperado %T", errNoExiste, data)
	}

	return nil
}

func (e *Estado) posicionVariable(programa, nombre string) (int, error) {
	tabla, ok := e.Variables[programa]
	if !ok {
		return 0, fmt.Errorf("%w: programa %s", errNoExiste, programa)
	}

	pos, ok := tabla[nombre]
	if !ok {
		return 0, fmt.Errorf("%w: variable %s.%s", errNoExiste, programa, nombre)
	}

	return pos, nil
}

// Acumulador returns a program's reserved accumulator cell.
func (e *Estado) Acumulador(programa string) (*Celda, error) {
	return e.BuscarVariable(programa, "acumulador")
}

// AsignarAcumulador sets a program's accumulator value.
func (e *Estado) AsignarAcumulador(programa, valor string) error {
	return e.AsignarVariable(programa, "acumulador", valor)
}

// Vaya sets a program's counter to the code-line index a label points to.
func (e *Estado) Vaya(programa, etiqueta string) error {
	tabla, ok := e.Etiquetas[programa]
	if !ok {
		return fmt.Errorf("%w: programa %s", errNoExiste, programa)
	}

	idx, ok := tabla[etiqueta]
	if !ok {
		return fmt.Errorf("%w: etiqueta %s.%s", errNoExiste, programa, etiqueta)
	}

	prog, ok := e.Programas[programa]
	if !ok {
		return fmt.Errorf("%w: programa %s", errNoExiste, programa)
	}

	prog.Contador = idx

	return nil
}

// AgregarAMemoria writes a cell at the allocator's current position and advances it, returning the
// position written.
func (e *Estado) AgregarAMemoria(c *Celda) (int, error) {
	if e.Pivote < 0 || e.Pivote >= len(e.Memoria) {
		return 0, &OutOfMemory{Requerido: 1, Disponible: 0}
	}

	pos := e.Pivote
	e.Memoria[pos] = c
	e.Pivote++

	return pos, nil
}

// IncrementarContador advances a program's counter by one line.
func (e *Estado) IncrementarContador(programa string) error {
	prog, ok := e.Programas[programa]
	if !ok {
		return fmt.Errorf("%w: programa %s", errNoExiste, programa)
	}

	prog.Contador++

	return nil
}

// AvanzarTiempo advances the clock and raises the arrival-time cursor to at least the new clock
// value.
func (e *Estado) AvanzarTiempo(n int) {
	e.Reloj += n
	if e.TiempoLlegada < e.Reloj {
		e.TiempoLlegada = e.Reloj
	}
}

// Terminar moves a program's record from Programas to Terminados and drops it from the ready queue.
func (e *Estado) Terminar(programa string) error {
	prog, ok := e.Programas[programa]
	if !ok {
		return fmt.Errorf("%w: programa %s", errNoExiste, programa)
	}

	delete(e.Programas, programa)

	e.Terminados[programa] = prog

	listos := e.Listos[:0]

	for _, id := range e.Listos {
		if id != programa {
			listos = append(listos, id)
		}
	}

	e.Listos = listos

	return nil
}

// ProgramasDisponibles returns the ids of every loaded, not yet terminated program whose arrival
// time has passed, in arrival order. Programs already on the ready queue are included; callers
// that admit programs skip those themselves.
func (e *Estado) ProgramasDisponibles() []string {
	var disponibles []string

	for id, prog := range e.Programas {
		if prog.TiempoLlegada <= e.Reloj {
			disponibles = append(disponibles, id)
		}
	}

	ordenarPorLlegada(disponibles, e.Programas)

	return disponibles
}

func ordenarPorLlegada(ids []string, programas map[string]*Programa) {
	// Insertion sort: the candidate lists here are small (one per load), and a stable, allocation-free
	// sort keeps ties in id order without pulling in sort.Slice's closure overhead.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0; j-- {
			a, b := programas[ids[j-1]], programas[ids[j]]
			if a.TiempoLlegada < b.TiempoLlegada || (a.TiempoLlegada == b.TiempoLlegada && ids[j-1] < ids[j]) {
				break
			}

			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// Log returns the state's logger, for use by collaborating packages (the loader, the interpreter).
func (e *Estado) Log() *log.Logger {
	if e.log == nil {
		return log.DefaultLogger()
	}

	return e.log
}
