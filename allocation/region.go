package allocation

import (
	"sort"

	"github.com/ciphernaut/acma-bandplan-db/lexer"
	"github.com/ciphernaut/acma-bandplan-db/model"
)

// regionCount is the number of ITU regions.
const regionCount = 3

// ResolveRegions maps region residual texts onto exactly three regions.
// Empty values become model.Common and missing regions are padded with it.
// Values past the third are ignored.
func ResolveRegions(values []string) [3]string {
	var out [3]string
	for i := 0; i < regionCount; i++ {
		if i < len(values) && values[i] != "" {
			out[i] = values[i]
		} else {
			out[i] = model.Common
		}
	}
	return out
}

// extractRegions strips footnote references from each raw region value.
// It returns the residual texts (empty when nothing else was left) and
// every reference found.
func extractRegions(raw []string) (residuals []string, refs []string) {
	residuals = make([]string, len(raw))
	for i, v := range raw {
		r, rest, ok := lexer.ExtractRefs(v)
		refs = append(refs, r...)
		if ok {
			residuals[i] = rest
		}
	}
	return residuals, refs
}

// mergeRegions detects a merged cell: a text shared by two or more regions.
// Every region holding the shared text becomes model.Common.
func mergeRegions(regions [3]string) (out [3]string, shared string, merged bool) {
	out = regions
	counts := make(map[string]int, regionCount)
	for _, r := range regions {
		if r == "" || r == model.Common {
			continue
		}
		counts[r]++
		if counts[r] >= 2 {
			shared = r
			merged = true
		}
	}
	if !merged {
		return out, "", false
	}
	// Only regions holding the shared text collapse. A region with other
	// text keeps it: FIXED, FIXED, MOBILE gives COMMON, COMMON, MOBILE.
	for i, r := range out {
		if r == shared {
			out[i] = model.Common
		}
	}
	return out, shared, true
}

// uniqueSorted deduplicates and sorts refs. It returns nil for no refs.
func uniqueSorted(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Strings(out)
	return out
}
