// Package module implements scanning of Python source trees and resolution
// of import declarations into a dependency graph.
//
// A scan produces a [Table] of immutable [Record] values, one per discovered
// module, keyed by canonical slash-separated path relative to the scan root.
// The table preserves discovery order (lexical walk order), which downstream
// ordering uses as its deterministic tie-break and cycle fallback.
//
// Extraction is textual, not syntactic: imports and declarations are
// recognized by line patterns, so declarations embedded in string literals or
// comments can misfire. The [Extractor] interface allows swapping in a
// tokenizer-backed implementation without changing the graph contracts.
package module

import "slices"

// Record describes a scanned module. It is immutable once created: the
// scanner builds it, the graph builder and transformer only read it.
type Record struct {
	// Path is the canonical identity: slash-separated, relative to the scan
	// root (e.g. "pkg/util.py").
	Path string

	// Content is the module's raw text.
	Content string

	// Imports holds the import strings as written, including leading dots
	// for relative forms. Sorted, deduplicated.
	Imports []string

	// Classes holds the declared type names. Sorted, deduplicated.
	Classes []string

	// Functions holds the declared callable names. Sorted, deduplicated.
	Functions []string
}

// Table is the ordered set of records produced by one scan. Records are
// keyed by path; discovery order is preserved for deterministic downstream
// ordering.
type Table struct {
	records map[string]*Record
	order   []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{records: make(map[string]*Record)}
}

// Add inserts a record. A record with a duplicate path replaces the previous
// one without changing its discovery position.
func (t *Table) Add(r *Record) {
	if _, exists := t.records[r.Path]; !exists {
		t.order = append(t.order, r.Path)
	}
	t.records[r.Path] = r
}

// Get returns the record for path and true, or nil and false if not present.
func (t *Table) Get(path string) (*Record, bool) {
	r, ok := t.records[path]
	return r, ok
}

// Paths returns all record paths in discovery order.
// The returned slice is a copy and can be modified freely.
func (t *Table) Paths() []string { return slices.Clone(t.order) }

// Len returns the number of records in the table.
func (t *Table) Len() int { return len(t.order) }

// sortedSet deduplicates and sorts a string slice in place, returning it.
func sortedSet(s []string) []string {
	slices.Sort(s)
	return slices.Compact(s)
}
