// Package allocation turns raw rows of the frequency allocation table into
// [model.AllocationRecord] values.
//
// The table carries no reliable column semantics. The last cell of a row
// repeats the row's content split into lines:
//
//	8.3 – 9                 frequency range (line 0)
//	METEOROLOGICAL AIDS     description (line 1)
//	FIXED                   Region 1 (line 2)
//	FIXED                   Region 2 (line 3)
//	MOBILE                  Region 3 (line 4)
//
// [DetectUnit] finds the unit announced at the top of a page, [ParseRow]
// classifies one row and [ResolveRegions] pads region values to exactly
// three. A [Classifier] runs the whole thing over a raw table, skipping its
// header rows.
package allocation
