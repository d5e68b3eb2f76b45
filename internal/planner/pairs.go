package planner

// pairSet tracks unordered player pairs. It backs both the partner-uniqueness
// rule (no two players team up twice in one run) and opponent-repeat avoidance
// in singles. Internal to the planner; callers only ever see its two verbs.
type pairSet struct {
	used map[[2]string]bool
}

func newPairSet() *pairSet {
	return &pairSet{used: make(map[[2]string]bool)}
}

func (s *pairSet) key(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// has reports whether the pair was already recorded.
func (s *pairSet) has(a, b string) bool {
	return s.used[s.key(a, b)]
}

// record marks the pair as used.
func (s *pairSet) record(a, b string) {
	s.used[s.key(a, b)] = true
}
