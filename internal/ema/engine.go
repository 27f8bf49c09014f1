// Package ema implements a bounded-memory tracker and recommender over
// observed tool-usage blocks. It maps tool names to integer symbols,
// keeps a recency window of the last k blocks, maintains a size-capped
// full-history frequency table of subsequences, and produces ranked
// recommendations from each.
//
// The engine is single-threaded: callers embedding it in a concurrent
// host must serialize access themselves.
package ema

import (
	"sort"
	"strings"

	"github.com/toolrec/toolrec/internal/model"
)

// Params are the tuning parameters.
type Params struct {
	K  int `json:"k"`  // recent blocks tracked
	T  int `json:"t"`  // frequency table cap
	NR int `json:"nr"` // picks from the recency window
	NF int `json:"nf"` // picks from the frequency table
	NS int `json:"ns"` // single tools exposed
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{K: 10, T: 50, NR: 2, NF: 5, NS: 5}
}

// Engine owns all tracker state. Create one per logical session with
// New, feed it blocks with AddBlock, and read recommendations with the
// pick methods or Selections.
type Engine struct {
	params Params

	symbols      *SymbolTable
	recentBlocks *window[Seq]   // last k block sequences
	recentSubs   *window[[]Seq] // last k blocks' subsequence lists
	freq         map[string]*freqEntry
	allBlocks    []string // raw blocks, index = arrival order
	blockIndex   int
	tools        *singleTools
}

// New returns an empty engine with the given tuning.
func New(p Params) *Engine {
	return &Engine{
		params:       p,
		symbols:      NewSymbolTable(),
		recentBlocks: newWindow[Seq](p.K),
		recentSubs:   newWindow[[]Seq](p.K),
		freq:         make(map[string]*freqEntry),
		tools:        newSingleTools(p.NS),
	}
}

// Params returns the engine's tuning.
func (e *Engine) Params() Params {
	return e.params
}

// SplitBlock splits a comma-separated block into trimmed, non-blank
// tool names.
func SplitBlock(block string) []string {
	var names []string
	for _, part := range strings.Split(block, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// blockToSequence resolves a raw block into its symbol sequence,
// assigning ids for any names not seen before.
func (e *Engine) blockToSequence(block string) Seq {
	names := SplitBlock(block)
	seq := make(Seq, 0, len(names))
	for _, name := range names {
		seq = append(seq, e.symbols.Resolve(name))
	}
	return seq
}

// AddBlock ingests one usage episode: a comma-separated list of tool
// names. A block with no non-blank names is a no-op. The full history
// is replayed into the frequency table on every call, then evicted
// back to the cap.
func (e *Engine) AddBlock(block string) {
	seq := e.blockToSequence(block)
	if len(seq) == 0 {
		return
	}

	e.allBlocks = append(e.allBlocks, block)
	e.blockIndex = len(e.allBlocks) - 1

	e.recentBlocks.push(seq)

	for _, name := range SplitBlock(block) {
		e.tools.add(name)
	}

	e.recentSubs.push(Subsequences(seq, 1))

	e.rebuildFrequencyTable()
	e.evictFrequencyTable()
}

// PickFromRecent ranks the subsequences aggregated across the recency
// window by frequency x length, descending, ties broken by ascending
// tuple order, and returns the top n. n <= 0 uses the NR parameter.
func (e *Engine) PickFromRecent(n int) []model.Recommendation {
	if n <= 0 {
		n = e.params.NR
	}

	counts := aggregateRecent(e.recentSubs)
	if len(counts) == 0 {
		return []model.Recommendation{}
	}

	ranked := make([]*recentCount, 0, len(counts))
	for _, c := range counts {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		si := ranked[i].frequency * len(ranked[i].seq)
		sj := ranked[j].frequency * len(ranked[j].seq)
		if si != sj {
			return si > sj
		}
		return ranked[i].seq.less(ranked[j].seq)
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]model.Recommendation, 0, n)
	for _, c := range ranked[:n] {
		out = append(out, model.Recommendation{
			Sequence:  c.seq,
			Names:     e.symbols.Names(c.seq),
			Frequency: c.frequency,
			Length:    len(c.seq),
			Score:     c.frequency * len(c.seq),
		})
	}
	return out
}

// PickFromFrequency refreshes the frequency table (rebuild plus evict,
// idempotent with no new blocks), then ranks every remaining entry by
// frequency x length, descending, with the same tuple tie-break, and
// returns the top n. n <= 0 uses the NF parameter.
func (e *Engine) PickFromFrequency(n int) []model.StableRecommendation {
	if n <= 0 {
		n = e.params.NF
	}

	e.rebuildFrequencyTable()
	e.evictFrequencyTable()

	if len(e.freq) == 0 {
		return []model.StableRecommendation{}
	}

	ranked := make([]*freqEntry, 0, len(e.freq))
	for _, entry := range e.freq {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		si := ranked[i].frequency * len(ranked[i].seq)
		sj := ranked[j].frequency * len(ranked[j].seq)
		if si != sj {
			return si > sj
		}
		return ranked[i].seq.less(ranked[j].seq)
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]model.StableRecommendation, 0, n)
	for _, entry := range ranked[:n] {
		out = append(out, model.StableRecommendation{
			Recommendation: model.Recommendation{
				Sequence:  entry.seq,
				Names:     e.symbols.Names(entry.seq),
				Frequency: entry.frequency,
				Length:    len(entry.seq),
				Score:     entry.frequency * len(entry.seq),
			},
			LastUsage: entry.lastUsage,
		})
	}
	return out
}

// SingleTools returns up to n individual tool names, most recently used
// first. n <= 0 uses the NS parameter.
func (e *Engine) SingleTools(n int) []string {
	if n <= 0 {
		n = e.params.NS
	}
	return e.tools.mostRecent(n)
}

// Selections refreshes the frequency table and returns all three
// recommendation lists at their configured sizes.
func (e *Engine) Selections() model.Selections {
	e.rebuildFrequencyTable()
	e.evictFrequencyTable()

	return model.Selections{
		FromRecent:    e.PickFromRecent(0),
		FromFrequency: e.PickFromFrequency(0),
		SingleTools:   e.SingleTools(0),
	}
}

// Stats describes the engine's container sizes.
type Stats struct {
	Blocks           int `json:"blocks"`
	RecentBlocks     int `json:"recent_blocks"`
	FrequencyEntries int `json:"frequency_entries"`
	FrequencyCap     int `json:"frequency_cap"`
	Symbols          int `json:"symbols"`
	SingleTools      int `json:"single_tools"`
}

// Stats reports current container sizes.
func (e *Engine) Stats() Stats {
	return Stats{
		Blocks:           len(e.allBlocks),
		RecentBlocks:     e.recentBlocks.len(),
		FrequencyEntries: len(e.freq),
		FrequencyCap:     e.params.T,
		Symbols:          e.symbols.Len(),
		SingleTools:      len(e.tools.names),
	}
}
