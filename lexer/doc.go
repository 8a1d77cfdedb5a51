// Package lexer classifies the raw text handed over by a document provider.
//
// Two lexical forms of footnote reference exist in the band plan:
//
//   - domestic references, the literal prefix AUS followed by digits and
//     optional upper-case letters (AUS12, AUS87A)
//   - international references, 1 to 3 digits followed by 0 to 2
//     upper-case letters (5, 149, 12AB)
//
// Both are matched on whole-word boundaries. The domestic form is always
// tried first so AUS12 is never split into a stray number.
//
// # Cells
//
// [ExtractRefs] pulls every reference token out of a table cell and returns
// the residual text:
//
//	refs, rest, ok := lexer.ExtractRefs("FIXED AUS27 5A")
//	// refs == []string{"AUS27", "5A"}, rest == "FIXED", ok == true
//
// # Lines
//
// [ClassifyLine] tags a glossary line as one of [Blank], [PageNumber],
// [Reference] or [Continuation] for a given taxonomy. [ClassifyRow] tags a
// table row as [Spacer] or [Data].
//
// # Normalisation
//
// [Normalize] applies Unicode NFKC folding and line ending cleanup. It is
// meant for providers reading rich text (HTML, OCR output) so that
// non-breaking and thin spaces look like ordinary spaces to the parsers.
package lexer
