package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Replacement is one parsed (old text -> new text) pair
type Replacement struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// ReplacementMap maps old text to new text, iterating in first-insertion order.
// Setting an existing key overwrites its value but keeps its position.
type ReplacementMap struct {
	keys   []string
	values map[string]string
}

// NewReplacementMap creates an empty replacement map
func NewReplacementMap() *ReplacementMap {
	return &ReplacementMap{values: make(map[string]string)}
}

// Set adds or overwrites a pair
func (m *ReplacementMap) Set(old, replacement string) {
	if _, ok := m.values[old]; !ok {
		m.keys = append(m.keys, old)
	}
	m.values[old] = replacement
}

// Get returns the replacement for old
func (m *ReplacementMap) Get(old string) (string, bool) {
	v, ok := m.values[old]
	return v, ok
}

// Len returns the number of pairs
func (m *ReplacementMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Pairs returns the pairs in iteration order
func (m *ReplacementMap) Pairs() []Replacement {
	if m == nil {
		return nil
	}
	pairs := make([]Replacement, 0, len(m.keys))
	for _, k := range m.keys {
		pairs = append(pairs, Replacement{Old: k, New: m.values[k]})
	}
	return pairs
}

// FirstContained returns the first key, in iteration order, that occurs in text
func (m *ReplacementMap) FirstContained(text string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, k := range m.keys {
		if strings.Contains(text, k) {
			return k, true
		}
	}
	return "", false
}

// String renders the map as {'old': 'new', ...}
func (m *ReplacementMap) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range m.Pairs() {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeQuoted(&sb, p.Old)
		sb.WriteString(": ")
		writeQuoted(&sb, p.New)
	}
	sb.WriteByte('}')
	return sb.String()
}

// writeQuoted quotes s the way Python's repr does: single quotes unless s
// contains a single quote and no double quote.
func writeQuoted(sb *strings.Builder, s string) {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	sb.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(sb, `\x%02x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(quote)
}

// MarshalJSON encodes the map as an ordered list of pairs
func (m *ReplacementMap) MarshalJSON() ([]byte, error) {
	pairs := m.Pairs()
	if pairs == nil {
		pairs = []Replacement{}
	}
	return json.Marshal(pairs)
}
