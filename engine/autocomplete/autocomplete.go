// Package autocomplete computes prefix-completion candidates over the set
// of registered command names.
package autocomplete

// Result describes the completion available for a prefix. It is transient:
// recomputed on every relevant keystroke and never persisted.
type Result struct {
	// FirstCandidate is the first matching name in registration order, the
	// default completion target. Empty when there are no candidates.
	FirstCandidate string

	// CommonLen is the number of characters that can be completed safely:
	// the length of the shortest candidate, narrowed to the point where a
	// candidate first diverges from FirstCandidate.
	CommonLen int

	// Count is the total number of candidates.
	Count int
}

// Compute scans names for exact-prefix matches. marks, when non-nil, must
// be at least len(names) long; it is fully rewritten on every call so that
// marks[i] reports whether names[i] is a candidate for this prefix and
// stale marks from a previous prefix never survive.
func Compute(names []string, prefix string, marks []bool) Result {
	var r Result

	for i, name := range names {
		if marks != nil {
			marks[i] = false
		}

		if len(name) < len(prefix) || name[:len(prefix)] != prefix {
			continue
		}
		if len(prefix) == 0 {
			// An empty prefix matches everything and completes nothing.
			continue
		}

		if marks != nil {
			marks[i] = true
		}

		if r.Count == 0 || len(name) < r.CommonLen {
			r.CommonLen = len(name)
		}
		r.Count++

		if r.Count == 1 {
			r.FirstCandidate = name
			continue
		}

		// Narrow the common length to where this candidate diverges from
		// the first one.
		for j := len(prefix); j < r.CommonLen; j++ {
			if r.FirstCandidate[j] != name[j] {
				r.CommonLen = j
				break
			}
		}
	}

	return r
}
