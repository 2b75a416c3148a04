// Package maquina implements the machine's memory manager: a single shared memory array holding
// every loaded program's code, data, and accumulator, plus the bookkeeping (variable and label
// tables, ready queue, output logs, clock) needed to run them.
//
// Estado is a value type in spirit: every mutating method is meant to be called on the result of
// Copiar, never on a state someone else still holds a reference to. Cargar follows the same rule —
// it takes a state and a verified program and returns a new state, leaving its input alone.
package maquina
