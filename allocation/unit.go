package allocation

import "github.com/ciphernaut/acma-bandplan-db/model"

// UnitScanLines is how many leading page lines may hold the unit header.
const UnitScanLines = 5

// DetectUnit returns the unit whose name is the whole (trimmed,
// case-insensitive) content of one of the first UnitScanLines lines.
// ok is false when none is found; such a page cannot be classified.
func DetectUnit(lines []string) (unit model.Unit, ok bool) {
	n := len(lines)
	if n > UnitScanLines {
		n = UnitScanLines
	}
	for _, line := range lines[:n] {
		if u, found := model.ParseUnit(line); found {
			return u, true
		}
	}
	return model.UnitNone, false
}
