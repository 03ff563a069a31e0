// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

// Builder is the capability the Newick parser drives to assemble a
// tree, without knowing which concrete representation it is building.
// CompactTreeBuilder and SimpleTreeBuilder both implement it.
//
// Calls always come in one of these shapes, mirroring the grammar in
// newick.go: BeginInternal opens a focus, any mixture of AddLeaf and
// nested BeginInternal/EndInternal populate it in parse order, and
// EndInternal closes it, attaching it as a child of whatever focus (if
// any) is now on top. SetLabelOfJustClosed and
// SetBranchLengthOfJustAttached always refer to the vertex most
// recently closed or attached, respectively.
type Builder interface {
	// Taxa returns the taxon table leaf events are resolved against.
	Taxa() *TaxonTable

	// BeginInternal opens a new internal vertex as the current focus.
	BeginInternal()

	// EndInternal closes the current internal vertex and attaches it
	// to its parent focus (or marks it as the tree root, if no focus
	// is open).
	EndInternal()

	// AddLeaf appends a leaf child bound to taxon to the current
	// focus (or marks it as the tree root, if no focus is open).
	AddLeaf(taxon TaxonId)

	// SetLabelOfJustClosed attaches an internal-node label to the
	// vertex most recently closed by EndInternal.
	SetLabelOfJustClosed(label string)

	// SetBranchLengthOfJustAttached attaches a branch length to the
	// vertex most recently added as a child of the current focus
	// (leaf or internal).
	SetBranchLengthOfJustAttached(length float64)

	// Finish yields the completed tree. It fails with BuildError if
	// begin/end calls were unbalanced or no vertex was ever produced.
	Finish() (Tree, error)
}
