// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

// VertexId identifies a vertex within a single Tree. IDs are only
// meaningful relative to the Tree that produced them.
type VertexId int

// Tree is the read-only surface shared by CompactTree and SimpleTree.
// Both representations are immutable once built and safe to share
// across goroutines.
type Tree interface {
	// NumVertices returns the total number of vertices, internal and
	// leaf.
	NumVertices() int
	// NumLeaves returns the number of vertices with no children.
	NumLeaves() int
	// Root returns the id of the root vertex.
	Root() VertexId
	// Parent returns the parent of v, or false if v is the root.
	Parent(v VertexId) (VertexId, bool)
	// Children returns the children of v in parse order. A leaf
	// returns an empty slice.
	Children(v VertexId) []VertexId
	// BranchLength returns the length of the incoming branch of v, if
	// one was present in the source.
	BranchLength(v VertexId) (float64, bool)
	// Taxon returns the taxon bound to v, if v is a leaf.
	Taxon(v VertexId) (TaxonId, bool)
	// Taxa returns the taxon table this tree's leaves are resolved
	// against.
	Taxa() *TaxonTable
}
