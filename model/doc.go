// Package model provides the intermediate representation shared by the
// document providers, the parsers and the persistence sinks.
//
// # Input
//
// A [Document] is an ordered list of [Page] values. Each page carries the
// text lines extracted from it, in reading order, and zero or more raw
// tables:
//
//	page := model.NewPage(31)
//	page.Lines = []string{"MHz", "Australian Table of Frequency Allocations"}
//	page.AddTable(table)
//
// A [Table] is an ordered list of rows of [Cell] values. Cells may be empty
// or contain embedded line breaks. No column semantics are assumed.
//
// # Output
//
// Parsing produces two record types:
//
//   - [AllocationRecord] - one row of the frequency allocation table
//   - [FootnoteRecord] - one entry of a footnote glossary
//
// Footnote references belong to one of two [Taxonomy] values, domestic
// (AUS prefixed) or international.
//
// # Units
//
// [Unit] is the measurement unit announced at the top of an allocation
// page. Every row parsed from that page inherits it.
package model
