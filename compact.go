// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

// CompactTree is a structure-of-arrays encoding of a tree: one array
// of parent indices, one of branch lengths (with a parallel presence
// flag), one of leaf taxon IDs, one of child lists, and a cached leaf
// count. Vertices are packed in the order the builder closed them,
// which is a post-order traversal. Each internal vertex's child list is
// a slice of its own, so the encoding is not free of per-vertex
// allocation: a tree costs roughly vertex count times (one int32 + one
// float64 + one bool + one int32 + one slice header), plus the child
// lists, while the TaxonTable is held once for a whole collection.
type CompactTree struct {
	taxa *TaxonTable

	parent   []int32
	brLen    []float64
	hasBrLen []bool
	taxon    []int32 // -1 for internal vertices
	children [][]int32

	numLeaves int
	root      int32
}

func (t *CompactTree) NumVertices() int { return len(t.parent) }
func (t *CompactTree) NumLeaves() int   { return t.numLeaves }
func (t *CompactTree) Root() VertexId   { return VertexId(t.root) }

func (t *CompactTree) Parent(v VertexId) (VertexId, bool) {
	p := t.parent[v]
	if p < 0 {
		return 0, false
	}
	return VertexId(p), true
}

func (t *CompactTree) Children(v VertexId) []VertexId {
	ids := t.children[v]
	if len(ids) == 0 {
		return nil
	}
	out := make([]VertexId, len(ids))
	for i, c := range ids {
		out[i] = VertexId(c)
	}
	return out
}

func (t *CompactTree) BranchLength(v VertexId) (float64, bool) {
	if !t.hasBrLen[v] {
		return 0, false
	}
	return t.brLen[v], true
}

func (t *CompactTree) Taxon(v VertexId) (TaxonId, bool) {
	tx := t.taxon[v]
	if tx < 0 {
		return 0, false
	}
	return TaxonId(tx), true
}

func (t *CompactTree) Taxa() *TaxonTable { return t.taxa }

// compactFrame tracks the children collected so far for one open
// internal vertex.
type compactFrame struct {
	children []int32
}

// CompactTreeBuilder implements Builder, packing vertices into
// CompactTree's parallel arrays as they are closed.
type CompactTreeBuilder struct {
	taxa *TaxonTable

	parent   []int32
	brLen    []float64
	hasBrLen []bool
	taxon    []int32
	children [][]int32

	stack        []compactFrame
	lastAttached int32 // index of the vertex last attached to a focus (or root)
	numLeaves    int
	finished     bool
}

// NewCompactTreeBuilder returns a builder that packs into a
// CompactTree, interning leaf taxa into taxa. If taxa is nil, a fresh
// table is created.
func NewCompactTreeBuilder(taxa *TaxonTable) *CompactTreeBuilder {
	if taxa == nil {
		taxa = NewTaxonTable()
	}
	return &CompactTreeBuilder{taxa: taxa, lastAttached: -1}
}

func (b *CompactTreeBuilder) Taxa() *TaxonTable { return b.taxa }

func (b *CompactTreeBuilder) appendVertex(taxon int32) int32 {
	idx := int32(len(b.parent))
	b.parent = append(b.parent, -1)
	b.brLen = append(b.brLen, 0)
	b.hasBrLen = append(b.hasBrLen, false)
	b.taxon = append(b.taxon, taxon)
	b.children = append(b.children, nil)
	return idx
}

func (b *CompactTreeBuilder) attach(idx int32) {
	if len(b.stack) == 0 {
		b.lastAttached = idx
		return
	}
	frame := &b.stack[len(b.stack)-1]
	frame.children = append(frame.children, idx)
	b.lastAttached = idx
}

func (b *CompactTreeBuilder) BeginInternal() {
	b.stack = append(b.stack, compactFrame{})
}

func (b *CompactTreeBuilder) EndInternal() {
	if len(b.stack) == 0 {
		// Unbalanced; caught by Finish.
		return
	}
	frame := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	idx := b.appendVertex(-1)
	for _, c := range frame.children {
		b.parent[c] = idx
	}
	b.children[idx] = frame.children
	b.attach(idx)
}

func (b *CompactTreeBuilder) AddLeaf(taxon TaxonId) {
	idx := b.appendVertex(int32(taxon))
	b.numLeaves++
	b.attach(idx)
}

// SetLabelOfJustClosed is a no-op: the compact encoding stores no
// internal-vertex labels by design, to keep per-vertex cost at exactly
// one parent index, one branch length, and one taxon slot.
func (b *CompactTreeBuilder) SetLabelOfJustClosed(label string) {}

func (b *CompactTreeBuilder) SetBranchLengthOfJustAttached(length float64) {
	if b.lastAttached < 0 {
		return
	}
	b.brLen[b.lastAttached] = length
	b.hasBrLen[b.lastAttached] = true
}

func (b *CompactTreeBuilder) Finish() (Tree, error) {
	if len(b.stack) != 0 {
		return nil, &BuildError{Kind: BuildUnbalanced}
	}
	if b.lastAttached < 0 {
		return nil, &BuildError{Kind: BuildNoRoot}
	}
	t := &CompactTree{
		taxa:      b.taxa,
		parent:    b.parent,
		brLen:     b.brLen,
		hasBrLen:  b.hasBrLen,
		taxon:     b.taxon,
		children:  b.children,
		numLeaves: b.numLeaves,
		root:      b.lastAttached,
	}
	b.finished = true
	return t, nil
}
