package ema

// singleTools keeps a duplicate-free-by-recency buffer of tool names.
// The buffer is over-provisioned well past the exposed count so that
// re-appends do not prematurely truncate older names.
type singleTools struct {
	cap   int
	names []string
}

func newSingleTools(exposed int) *singleTools {
	return &singleTools{cap: exposed * 10}
}

// add moves name to the most-recent end, removing any prior occurrence.
func (s *singleTools) add(name string) {
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	s.names = append(s.names, name)
	if s.cap > 0 && len(s.names) > s.cap {
		s.names = s.names[1:]
	}
}

// mostRecent returns up to n names, most recent first.
func (s *singleTools) mostRecent(n int) []string {
	start := len(s.names) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(s.names)-start)
	for i := len(s.names) - 1; i >= start; i-- {
		out = append(out, s.names[i])
	}
	return out
}
