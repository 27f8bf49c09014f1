package ema

import "sort"

// freqEntry records how often a subsequence has appeared across all
// history and the arrival index of the last block containing it.
type freqEntry struct {
	seq       Seq
	frequency int
	lastUsage int
}

// estimationScore ranks eviction candidates: frequency discounted by
// age in blocks. Higher is better to keep. Frequent-but-stale entries
// can still lose to rare-but-fresh ones once the age penalty dominates.
func estimationScore(frequency, lastUsage, currentIndex int) float64 {
	age := currentIndex - lastUsage
	return float64(frequency) / (1.0 + float64(age))
}

// rebuildFrequencyTable replays the whole block history and accumulates
// frequency and last-usage for every subsequence of every block. The
// table covers all history, recent-window blocks included; it is not
// limited to patterns outside the window.
func (e *Engine) rebuildFrequencyTable() {
	table := make(map[string]*freqEntry)
	for i, block := range e.allBlocks {
		seq := e.blockToSequence(block)
		for _, sub := range Subsequences(seq, 1) {
			k := sub.key()
			entry, ok := table[k]
			if !ok {
				entry = &freqEntry{seq: sub, lastUsage: i}
				table[k] = entry
			}
			entry.frequency++
			if i > entry.lastUsage {
				entry.lastUsage = i
			}
		}
	}
	e.freq = table
}

// evictFrequencyTable drops the lowest-estimation entries until the
// table is back at the cap. Ties break on ascending tuple order.
func (e *Engine) evictFrequencyTable() {
	if len(e.freq) <= e.params.T {
		return
	}

	entries := make([]*freqEntry, 0, len(e.freq))
	for _, entry := range e.freq {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		si := estimationScore(entries[i].frequency, entries[i].lastUsage, e.blockIndex)
		sj := estimationScore(entries[j].frequency, entries[j].lastUsage, e.blockIndex)
		if si != sj {
			return si < sj
		}
		return entries[i].seq.less(entries[j].seq)
	})

	for _, entry := range entries[:len(entries)-e.params.T] {
		delete(e.freq, entry.seq.key())
	}
}
