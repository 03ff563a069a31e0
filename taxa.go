// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

// TaxonId is the dense integer handle a TaxonTable assigns to a taxon
// name, in insertion order starting at 0.
type TaxonId int

// TaxonTable is an insertion-ordered set of taxon names. IDs are
// contiguous from 0, names are unique under case-sensitive comparison,
// and an ID once issued never changes or is reused. A table is shared
// across every tree parsed from the same Nexus file.
type TaxonTable struct {
	names []string
	index map[string]TaxonId
}

// NewTaxonTable returns a new, empty taxon table.
func NewTaxonTable() *TaxonTable {
	return &TaxonTable{
		index: make(map[string]TaxonId),
	}
}

// Intern returns the TaxonId for name, assigning a new one if name has
// not been seen before. Idempotent: interning the same name twice
// returns the same ID both times.
func (t *TaxonTable) Intern(name string) TaxonId {
	if id, ok := t.index[name]; ok {
		return id
	}
	id := TaxonId(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = id
	return id
}

// Get returns the TaxonId for name, if name has already been interned.
func (t *TaxonTable) Get(name string) (TaxonId, bool) {
	id, ok := t.index[name]
	return id, ok
}

// NameOf returns the name assigned to id. It panics if id is out of
// range, mirroring a programmer error rather than a data error.
func (t *TaxonTable) NameOf(id TaxonId) string {
	return t.names[id]
}

// Len returns the number of interned taxa.
func (t *TaxonTable) Len() int {
	return len(t.names)
}
