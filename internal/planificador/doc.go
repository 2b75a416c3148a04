// Package planificador decides, and drives, the order in which loaded programs run. Planear takes a
// state and a policy and returns a new state with the ready queue reordered; Iterar repeatedly steps
// an interpreter and re-plans whenever a quantum elapses or a program terminates.
package planificador
