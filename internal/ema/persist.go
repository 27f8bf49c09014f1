package ema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// One JSON artifact per container. Save is all-or-nothing per file but
// not transactional across files; Load tolerates any subset being
// absent or malformed and leaves those containers at their defaults.
const (
	fileNameToID     = "name_to_id.json"
	fileIDToName     = "id_to_name.json"
	fileNextID       = "next_id.json"
	fileRecentBlocks = "recent_blocks.json"
	fileFreqTable    = "frequency_table.json"
	fileAllBlocks    = "all_blocks.json"
	fileBlockIndex   = "block_index.json"
	fileRecentSubs   = "recent_subsequences.json"
	fileSingleTools  = "single_tools.json"
	fileParams       = "params.json"
)

type persistedEntry struct {
	Frequency int `json:"frequency"`
	LastUsage int `json:"last_usage"`
}

// Save checkpoints every container to dir, creating it if needed.
func (e *Engine) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	blocks := make([][]int, 0, e.recentBlocks.len())
	for _, seq := range e.recentBlocks.items {
		blocks = append(blocks, seq)
	}

	subs := make([][][]int, 0, e.recentSubs.len())
	for _, list := range e.recentSubs.items {
		entry := make([][]int, 0, len(list))
		for _, sub := range list {
			entry = append(entry, sub)
		}
		subs = append(subs, entry)
	}

	freq := make(map[string]persistedEntry, len(e.freq))
	for k, entry := range e.freq {
		freq[k] = persistedEntry{Frequency: entry.frequency, LastUsage: entry.lastUsage}
	}

	files := []struct {
		name string
		v    any
	}{
		{fileNameToID, e.symbols.byName},
		{fileIDToName, e.symbols.byID},
		{fileNextID, e.symbols.next},
		{fileRecentBlocks, blocks},
		{fileFreqTable, freq},
		{fileAllBlocks, e.allBlocks},
		{fileBlockIndex, e.blockIndex},
		{fileRecentSubs, subs},
		{fileSingleTools, e.tools.names},
		{fileParams, e.params},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.v); err != nil {
			return fmt.Errorf("save %s: %w", f.name, err)
		}
	}
	return nil
}

// Load hydrates the engine from a checkpoint directory. A missing
// directory is a fresh start and returns nil. Missing files leave the
// corresponding container at its default; malformed files are skipped
// and reported in the aggregate error, with all other containers still
// loaded.
func (e *Engine) Load(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat state dir: %w", err)
	}

	var errs []error
	skip := func(name string, err error) {
		if err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	// Params first: window capacities depend on them.
	var params Params
	if err := readJSON(filepath.Join(dir, fileParams), &params); err == nil {
		e.params = params
	} else {
		skip(fileParams, err)
	}
	e.recentBlocks = newWindow[Seq](e.params.K)
	e.recentSubs = newWindow[[]Seq](e.params.K)
	e.tools = newSingleTools(e.params.NS)

	byName := make(map[string]int)
	if err := readJSON(filepath.Join(dir, fileNameToID), &byName); err == nil {
		e.symbols.byName = byName
	} else {
		skip(fileNameToID, err)
	}

	byID := make(map[int]string)
	if err := readJSON(filepath.Join(dir, fileIDToName), &byID); err == nil {
		e.symbols.byID = byID
	} else {
		skip(fileIDToName, err)
	}

	var next int
	if err := readJSON(filepath.Join(dir, fileNextID), &next); err == nil {
		e.symbols.next = next
	} else {
		skip(fileNextID, err)
	}

	var blocks [][]int
	if err := readJSON(filepath.Join(dir, fileRecentBlocks), &blocks); err == nil {
		for _, b := range blocks {
			e.recentBlocks.push(Seq(b))
		}
	} else {
		skip(fileRecentBlocks, err)
	}

	freq := make(map[string]persistedEntry)
	if err := readJSON(filepath.Join(dir, fileFreqTable), &freq); err == nil {
		e.freq = make(map[string]*freqEntry, len(freq))
		for k, v := range freq {
			seq := parseSeqKey(k)
			e.freq[seq.key()] = &freqEntry{seq: seq, frequency: v.Frequency, lastUsage: v.LastUsage}
		}
	} else {
		skip(fileFreqTable, err)
	}

	var all []string
	if err := readJSON(filepath.Join(dir, fileAllBlocks), &all); err == nil {
		e.allBlocks = all
	} else {
		skip(fileAllBlocks, err)
	}

	var index int
	if err := readJSON(filepath.Join(dir, fileBlockIndex), &index); err == nil {
		e.blockIndex = index
	} else {
		skip(fileBlockIndex, err)
	}

	var subs [][][]int
	if err := readJSON(filepath.Join(dir, fileRecentSubs), &subs); err == nil {
		for _, list := range subs {
			entry := make([]Seq, 0, len(list))
			for _, sub := range list {
				entry = append(entry, Seq(sub))
			}
			e.recentSubs.push(entry)
		}
	} else {
		skip(fileRecentSubs, err)
	}

	var tools []string
	if err := readJSON(filepath.Join(dir, fileSingleTools), &tools); err == nil {
		for _, name := range tools {
			e.tools.add(name)
		}
	} else {
		skip(fileSingleTools, err)
	}

	return errors.Join(errs...)
}

// parseSeqKey decodes a persisted frequency-table key. The native form
// is dash-joined integers ("1-2-3"); the bracketed list form from older
// checkpoints ("[1, 2, 3]") is stripped and split on commas. Anything
// unparseable decodes to the empty sequence rather than failing the load.
func parseSeqKey(s string) Seq {
	s = strings.TrimSpace(s)
	sep := "-"
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
		sep = ","
	}
	if s == "" {
		return Seq{}
	}
	var seq Seq
	for _, part := range strings.Split(s, sep) {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Seq{}
		}
		seq = append(seq, n)
	}
	return seq
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
