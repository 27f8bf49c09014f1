package ema

// window is a fixed-capacity FIFO. Pushing beyond capacity drops the
// oldest entry.
type window[T any] struct {
	cap   int
	items []T
}

func newWindow[T any](capacity int) *window[T] {
	return &window[T]{cap: capacity}
}

func (w *window[T]) push(v T) {
	w.items = append(w.items, v)
	if w.cap > 0 && len(w.items) > w.cap {
		w.items = w.items[1:]
	}
}

func (w *window[T]) len() int {
	return len(w.items)
}

// aggregateRecent sums occurrence counts of each distinct subsequence
// across every block list currently in the window. A subsequence listed
// twice in one block counts twice.
func aggregateRecent(w *window[[]Seq]) map[string]*recentCount {
	counts := make(map[string]*recentCount)
	for _, subs := range w.items {
		for _, sub := range subs {
			k := sub.key()
			if c, ok := counts[k]; ok {
				c.frequency++
			} else {
				counts[k] = &recentCount{seq: sub, frequency: 1}
			}
		}
	}
	return counts
}

type recentCount struct {
	seq       Seq
	frequency int
}
