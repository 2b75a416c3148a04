// Package interprete implements the instruction cycle: Step fetches one instruction from the
// program at the head of the ready queue, executes it, and returns a new machine state. Step is
// pure — copy-on-write, like the rest of the core — so a failed step never corrupts its input.
package interprete
