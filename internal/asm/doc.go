// Package asm implements the verifier for CH, the small Spanish-keyword assembler-like language
// the machine executes.
//
// Verificar takes source text and either returns a Resultado holding cleaned code lines, a variable
// table, a label table, and a burst estimate, or fails with an error matching ErrSintaxis (one
// *SyntaxError, or several joined). The verifier is pure: it holds no state outside of a
// single call, so a *Verificador can be reused across many programs.
//
//	v := asm.NewVerificador(logger)
//	resultado, err := v.Verificar(fuente)
//	if errors.Is(err, asm.ErrSintaxis) {
//		// malformed program
//	}
//
// # Bugs
//
// Label targets are trusted at face value from the source (etiqueta N K registers K-1, not the
// etiqueta line's own position); a label pointing past the end of a program is only discovered when
// the machine tries to jump there.
package asm
