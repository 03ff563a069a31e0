// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

import "testing"

func TestSimpleTreeBuilderLabelsAndLengths(t *testing.T) {
	taxa := NewTaxonTable()
	b := NewSimpleTreeBuilder(taxa)

	b.BeginInternal()
	b.AddLeaf(taxa.Intern("A"))
	b.SetBranchLengthOfJustAttached(1)
	b.AddLeaf(taxa.Intern("B"))
	b.SetBranchLengthOfJustAttached(2)
	b.EndInternal()
	b.SetLabelOfJustClosed("clade1")

	tr, err := b.Finish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, ok := tr.(*SimpleTree)
	if !ok {
		t.Fatalf("Finish: got %T, want *SimpleTree", tr)
	}
	label, ok := st.Label(st.Root())
	if !ok || label != "clade1" {
		t.Fatalf("Label: got %q %v, want clade1 true", label, ok)
	}
}

func TestSimpleTreeBuilderNoRoot(t *testing.T) {
	b := NewSimpleTreeBuilder(nil)
	if _, err := b.Finish(); err == nil {
		t.Fatalf("expected BuildError on an empty builder")
	}
}
