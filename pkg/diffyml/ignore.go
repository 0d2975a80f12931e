// ignore.go - PathMatch-based difference pruning (§4.7).
//
// Generalizes filter.go's substring path matching onto the typed
// PathMatch grammar: a Difference is dropped when any configured pattern
// matches its path (for a Moved difference, either its OriginalPath or its
// NewPath), or when it is a Moved difference and the ignore-moved flag is
// set.
package diffyml

// IgnoreConfig configures difference pruning after a comparison.
type IgnoreConfig struct {
	Patterns []PathMatch
	// IgnoreMoved drops every Moved difference outright, regardless of
	// Patterns (§4.7).
	IgnoreMoved bool
}

// FilterDifferences removes every Difference matching cfg's patterns (for
// Moved differences, matching on either OriginalPath or NewPath) from
// diffs, plus every Moved difference when cfg.IgnoreMoved is set.
func FilterDifferences(diffs []Difference, cfg IgnoreConfig) []Difference {
	if len(cfg.Patterns) == 0 && !cfg.IgnoreMoved {
		return diffs
	}

	out := make([]Difference, 0, len(diffs))
	for _, d := range diffs {
		if d.Kind == DiffMoved {
			if cfg.IgnoreMoved || matchesAny(cfg.Patterns, d.OriginalPath) || matchesAny(cfg.Patterns, d.NewPath) {
				continue
			}
			out = append(out, d)
			continue
		}
		if matchesAny(cfg.Patterns, d.Path) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matchesAny(patterns []PathMatch, path Path) bool {
	for _, pm := range patterns {
		if pm.Matches(path) {
			return true
		}
	}
	return false
}
