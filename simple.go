// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

// simpleVertex is one heap-allocated node of a SimpleTree, owning its
// children directly.
type simpleVertex struct {
	id       VertexId
	parent   *simpleVertex
	children []*simpleVertex

	label    string
	taxon    TaxonId
	hasTaxon bool
	brLen    float64
	hasBrLen bool
}

// SimpleTree is a pointer-style tree representation: one vertex object
// per node, intended for small trees and interactive inspection
// rather than for holding large posterior samples.
type SimpleTree struct {
	taxa      *TaxonTable
	vertices  []*simpleVertex
	root      *simpleVertex
	numLeaves int
}

func (t *SimpleTree) NumVertices() int { return len(t.vertices) }
func (t *SimpleTree) NumLeaves() int   { return t.numLeaves }
func (t *SimpleTree) Root() VertexId   { return t.root.id }

func (t *SimpleTree) Parent(v VertexId) (VertexId, bool) {
	p := t.vertices[v].parent
	if p == nil {
		return 0, false
	}
	return p.id, true
}

func (t *SimpleTree) Children(v VertexId) []VertexId {
	kids := t.vertices[v].children
	if len(kids) == 0 {
		return nil
	}
	out := make([]VertexId, len(kids))
	for i, c := range kids {
		out[i] = c.id
	}
	return out
}

func (t *SimpleTree) BranchLength(v VertexId) (float64, bool) {
	n := t.vertices[v]
	if !n.hasBrLen {
		return 0, false
	}
	return n.brLen, true
}

func (t *SimpleTree) Taxon(v VertexId) (TaxonId, bool) {
	n := t.vertices[v]
	if !n.hasTaxon {
		return 0, false
	}
	return n.taxon, true
}

func (t *SimpleTree) Taxa() *TaxonTable { return t.taxa }

// Label returns the internal-node label attached to v, if any. Unlike
// CompactTree, SimpleTree retains these since it carries no
// memory-density constraint.
func (t *SimpleTree) Label(v VertexId) (string, bool) {
	n := t.vertices[v]
	if n.label == "" {
		return "", false
	}
	return n.label, true
}

// SimpleTreeBuilder implements Builder, constructing a linked vertex
// graph as the parser drives it.
type SimpleTreeBuilder struct {
	taxa     *TaxonTable
	vertices []*simpleVertex

	stack        []*simpleVertex // open internal vertices; top is the current focus
	lastAttached *simpleVertex
	lastClosed   *simpleVertex
	numLeaves    int
}

// NewSimpleTreeBuilder returns a builder that constructs a SimpleTree,
// interning leaf taxa into taxa. If taxa is nil, a fresh table is
// created.
func NewSimpleTreeBuilder(taxa *TaxonTable) *SimpleTreeBuilder {
	if taxa == nil {
		taxa = NewTaxonTable()
	}
	return &SimpleTreeBuilder{taxa: taxa}
}

func (b *SimpleTreeBuilder) Taxa() *TaxonTable { return b.taxa }

func (b *SimpleTreeBuilder) newVertex() *simpleVertex {
	v := &simpleVertex{id: VertexId(len(b.vertices))}
	b.vertices = append(b.vertices, v)
	return v
}

func (b *SimpleTreeBuilder) attach(v *simpleVertex) {
	if len(b.stack) == 0 {
		b.lastAttached = v
		return
	}
	focus := b.stack[len(b.stack)-1]
	v.parent = focus
	focus.children = append(focus.children, v)
	b.lastAttached = v
}

func (b *SimpleTreeBuilder) BeginInternal() {
	v := b.newVertex()
	b.stack = append(b.stack, v)
}

func (b *SimpleTreeBuilder) EndInternal() {
	if len(b.stack) == 0 {
		// Unbalanced; caught by Finish.
		return
	}
	v := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.lastClosed = v
	b.attach(v)
}

func (b *SimpleTreeBuilder) AddLeaf(taxon TaxonId) {
	v := b.newVertex()
	v.taxon = taxon
	v.hasTaxon = true
	b.numLeaves++
	b.attach(v)
}

func (b *SimpleTreeBuilder) SetLabelOfJustClosed(label string) {
	if b.lastClosed == nil {
		return
	}
	b.lastClosed.label = label
}

func (b *SimpleTreeBuilder) SetBranchLengthOfJustAttached(length float64) {
	if b.lastAttached == nil {
		return
	}
	b.lastAttached.brLen = length
	b.lastAttached.hasBrLen = true
}

func (b *SimpleTreeBuilder) Finish() (Tree, error) {
	if len(b.stack) != 0 {
		return nil, &BuildError{Kind: BuildUnbalanced}
	}
	if b.lastAttached == nil {
		return nil, &BuildError{Kind: BuildNoRoot}
	}
	return &SimpleTree{
		taxa:      b.taxa,
		vertices:  b.vertices,
		root:      b.lastAttached,
		numLeaves: b.numLeaves,
	}, nil
}
