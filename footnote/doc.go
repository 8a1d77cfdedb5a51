// Package footnote rebuilds footnote glossary entries from a flat stream of
// text lines.
//
// A glossary entry starts on a line beginning with its reference and may
// continue over any number of following lines, including lines on the next
// page. The [Reconstructor] is a two state machine:
//
//	Idle          --reference-->    Accumulating
//	Accumulating  --reference-->    Accumulating (previous entry emitted)
//	Accumulating  --continuation--> Accumulating (text appended)
//	Accumulating  --flush-->        Idle         (entry emitted)
//
// Blank lines, page numbers and text seen while Idle are dropped.
//
// One Reconstructor serves one taxonomy. Lines must be fed in document
// order and lines of different glossaries must never share an instance.
package footnote
