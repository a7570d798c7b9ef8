// Package docx edits WordprocessingML packages in place.
//
// A Document keeps every part of the package untouched except the main
// document part, which is held as an etree tree. Callers replace inline
// text across runs, swap a placeholder paragraph for blocks taken from
// another document, or build small documents (formatted paragraphs and
// grid tables) to be inserted elsewhere.
package docx
