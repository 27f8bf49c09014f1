package ema

import (
	"strconv"
	"strings"
)

// Seq is an ordered tuple of symbols.
type Seq []int

// SymbolTable maintains a bijection between tool names and integer
// symbols. Ids start at 1, are assigned in first-seen order, and are
// never reused or renumbered.
type SymbolTable struct {
	byName map[string]int
	byID   map[int]string
	next   int
}

// NewSymbolTable returns an empty table with the next id at 1.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName: make(map[string]int),
		byID:   make(map[int]string),
		next:   1,
	}
}

// Resolve returns the symbol for name, assigning the next id on first sight.
func (t *SymbolTable) Resolve(name string) int {
	if id, ok := t.byName[name]; ok {
		return id
	}
	id := t.next
	t.next++
	t.byName[name] = id
	t.byID[id] = name
	return id
}

// Name returns the tool name for a symbol, or "" if unknown.
func (t *SymbolTable) Name(id int) string {
	return t.byID[id]
}

// Names renders a sequence as its comma-separated tool names.
func (t *SymbolTable) Names(seq Seq) string {
	parts := make([]string, len(seq))
	for i, id := range seq {
		parts[i] = t.byID[id]
	}
	return strings.Join(parts, ", ")
}

// Len reports how many distinct names have been seen.
func (t *SymbolTable) Len() int {
	return len(t.byName)
}

// key encodes a sequence as a dash-joined map key ("1-2-3").
func (s Seq) key() string {
	var b strings.Builder
	for i, id := range s {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// less is standard tuple ordering: element-wise, with a shorter prefix
// sorting before any sequence it prefixes.
func (s Seq) less(o Seq) bool {
	n := len(s)
	if len(o) < n {
		n = len(o)
	}
	for i := 0; i < n; i++ {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return len(s) < len(o)
}
