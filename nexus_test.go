// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/joklawitter/nexwick"
)

func TestParseNexusReaderTranslate(t *testing.T) {
	const doc = `#NEXUS
Begin taxa;
	Dimensions ntax=3;
	Taxlabels
		X
		Y
		Z
	;
End;

Begin trees;
	Translate
		1 X,
		2 Y,
		3 Z
		;
	tree t1 = (1,(2,3));
End;
`
	res, err := nexwick.ParseNexusReader(strings.NewReader(doc), nexwick.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Trees) != 1 {
		t.Fatalf("got %d trees, want 1", len(res.Trees))
	}
	tr := res.Trees[0]
	if tr.NumLeaves() != 3 {
		t.Fatalf("NumLeaves: got %d, want 3", tr.NumLeaves())
	}
	root := tr.Root()
	kids := tr.Children(root)
	if len(kids) != 2 {
		t.Fatalf("root children: got %d, want 2", len(kids))
	}

	var leafName, internal nexwick.VertexId
	for _, c := range kids {
		if _, ok := tr.Taxon(c); ok {
			leafName = c
		} else {
			internal = c
		}
	}
	id, ok := tr.Taxon(leafName)
	if !ok || res.Taxa.NameOf(id) != "X" {
		t.Fatalf("root's leaf child: got %v, want X", id)
	}
	inner := tr.Children(internal)
	if len(inner) != 2 {
		t.Fatalf("inner children: got %d, want 2", len(inner))
	}
}

func TestParseNexusReaderMissingHeader(t *testing.T) {
	_, err := nexwick.ParseNexusReader(strings.NewReader("Begin taxa; End;"), nexwick.DefaultConfig())
	var ne *nexwick.NexusError
	if !errors.As(err, &ne) || ne.Kind != nexwick.NexusMissingHeader {
		t.Fatalf("got %v, want NexusMissingHeader", err)
	}
}

func TestParseNexusReaderDuplicateTaxon(t *testing.T) {
	const doc = `#NEXUS
Begin taxa;
	Taxlabels A B A;
End;
Begin trees;
	tree t1 = (A,B);
End;
`
	_, err := nexwick.ParseNexusReader(strings.NewReader(doc), nexwick.DefaultConfig())
	var ne *nexwick.NexusError
	if !errors.As(err, &ne) || ne.Kind != nexwick.NexusDuplicateTaxon {
		t.Fatalf("got %v, want NexusDuplicateTaxon", err)
	}
}

func TestParseNexusReaderTranslateMismatchWarns(t *testing.T) {
	const doc = `#NEXUS
Begin taxa;
	Taxlabels A B;
End;
Begin trees;
	Translate
		1 A,
		2 Unlisted
		;
	tree t1 = (1,2);
End;
`
	res, err := nexwick.ParseNexusReader(strings.NewReader(doc), nexwick.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(res.Warnings), res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "Unlisted") {
		t.Fatalf("warning %q does not mention the mismatched taxon", res.Warnings[0])
	}
}

func TestParseNexusReaderTranslateMismatchStrict(t *testing.T) {
	const doc = `#NEXUS
Begin taxa;
	Taxlabels A B;
End;
Begin trees;
	Translate
		1 A,
		2 Unlisted
		;
	tree t1 = (1,2);
End;
`
	cfg := nexwick.DefaultConfig()
	cfg.StrictTranslate = true
	_, err := nexwick.ParseNexusReader(strings.NewReader(doc), cfg)
	var te *nexwick.TranslateError
	if !errors.As(err, &te) || te.Kind != nexwick.TranslateNotInTaxa {
		t.Fatalf("got %v, want TranslateNotInTaxa", err)
	}
}

func TestParseNexusReaderUnknownCommandStrict(t *testing.T) {
	const doc = `#NEXUS
Begin trees;
	LINK TAXA = Taxa;
	tree t1 = (A,B);
End;
`
	cfg := nexwick.DefaultConfig()
	cfg.StrictTranslate = true
	_, err := nexwick.ParseNexusReader(strings.NewReader(doc), cfg)
	var ne *nexwick.NexusError
	if !errors.As(err, &ne) || ne.Kind != nexwick.NexusUnknownCommand {
		t.Fatalf("got %v, want NexusUnknownCommand", err)
	}
}

func TestParseNexusReaderUnknownCommandNonStrictSkipped(t *testing.T) {
	const doc = `#NEXUS
Begin trees;
	LINK TAXA = Taxa;
	tree t1 = (A,B);
End;
`
	res, err := nexwick.ParseNexusReader(strings.NewReader(doc), nexwick.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Trees) != 1 {
		t.Fatalf("got %d trees, want 1", len(res.Trees))
	}
}

func TestParseNexusReaderSkipsUnknownBlocks(t *testing.T) {
	const doc = `#NEXUS
Begin characters;
	Dimensions nchar=4;
	Matrix
		A ACGT
		B ACGA
	;
End;
Begin trees;
	tree t1 = (A,B);
End;
`
	res, err := nexwick.ParseNexusReader(strings.NewReader(doc), nexwick.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Trees) != 1 {
		t.Fatalf("got %d trees, want 1", len(res.Trees))
	}
}

func TestParseNexusReaderBurninAndSampling(t *testing.T) {
	var b strings.Builder
	b.WriteString("#NEXUS\nBegin trees;\n")
	const total = 1000
	for i := 0; i < total; i++ {
		fmt.Fprintf(&b, "tree t%d = (A,B);\n", i)
	}
	b.WriteString("End;\n")

	cfg := nexwick.DefaultConfig()
	cfg.BurninFraction = 0.25
	cfg.SampleEvery = 10

	res, err := nexwick.ParseNexusReader(strings.NewReader(b.String()), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Trees) != 75 {
		t.Fatalf("got %d trees, want 75", len(res.Trees))
	}
}

func TestParseNexusReaderBurninRequiresTotal(t *testing.T) {
	cfg := nexwick.DefaultConfig()
	cfg.BurninFraction = 0.5

	_, err := nexwick.ParseNexusReader(onlyReader{strings.NewReader("#NEXUS\nBegin trees;\ntree t1=(A,B);\nEnd;\n")}, cfg)
	var ce *nexwick.ConfigError
	if !errors.As(err, &ce) || ce.Kind != nexwick.ConfigUnknownTotal {
		t.Fatalf("got %v, want ConfigUnknownTotal", err)
	}
}

func TestParseNexusReaderBurninWithHintOnNonSeekable(t *testing.T) {
	cfg := nexwick.DefaultConfig()
	cfg.BurninFraction = 0.5
	cfg.SampleEvery = 1
	cfg.TotalTreesHint = 4

	const doc = "#NEXUS\nBegin trees;\ntree a=(A,B);\ntree b=(A,B);\ntree c=(A,B);\ntree d=(A,B);\nEnd;\n"
	res, err := nexwick.ParseNexusReader(onlyReader{strings.NewReader(doc)}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Trees) != 2 {
		t.Fatalf("got %d trees, want 2", len(res.Trees))
	}
}

func TestParseNexusReaderLazyMode(t *testing.T) {
	const doc = "#NEXUS\nBegin trees;\ntree a=(A,B);\ntree b=(C,D);\nEnd;\n"
	cfg := nexwick.DefaultConfig()
	cfg.Mode = nexwick.ModeLazy

	res, err := nexwick.ParseNexusReader(strings.NewReader(doc), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Iter == nil {
		t.Fatalf("lazy mode should populate Iter")
	}
	count := 0
	for res.Iter.Next() {
		count++
	}
	if err := res.Iter.Err(); err != nil {
		t.Fatalf("unexpected iteration error: %v", err)
	}
	if count != 2 {
		t.Fatalf("got %d trees, want 2", count)
	}
}

// onlyReader hides any io.Seeker the underlying reader might implement,
// so tests can exercise the non-seekable burn-in path.
type onlyReader struct {
	r *strings.Reader
}

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }
