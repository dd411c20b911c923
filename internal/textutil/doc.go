// Package textutil provides text normalization, tokenization, and filename
// sanitization used by matching and rewriting.
//
// Normalization folds case and diacritics and collapses whitespace so that
// "Tiësto  – Adagio" and "tiesto - adagio" compare equal before any
// similarity scoring runs. Sanitization maps filesystem-unsafe characters to
// safe alternatives when expanding filename templates.
package textutil
