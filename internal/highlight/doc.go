// Package highlight renders source code blocks into HTML.
// It uses the Chroma library to do this work.
//
// A [Resolution] pairs a display language with a Chroma lexer,
// looked up from a file extension.
// Unknown extensions resolve to plain text rather than failing:
// an unhighlightable file is a cosmetic problem, not an error.
package highlight
