// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package synth generates random trees under the Kingman coalescent,
// for use as test fixtures at scales too large to write out by hand.
// It builds a Newick string and hands it to nexwick's own parser, so
// the only way a *synth* tree reaches a Tree value is the same code
// path any caller's tree does.
package synth

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/joklawitter/nexwick"
)

// lineage is one still-uncoalesced branch of the growing tree: its
// Newick text so far, and the age at which it was created (0 for an
// original leaf).
type lineage struct {
	newick string
	age    float64
}

// Coalescent builds a random binary tree of terms leaves under the
// Kingman coalescent with (effective) population size n, parses it
// with cfg, and returns the result. Coalescent panics if terms < 2,
// mirroring a programmer error rather than a data error.
func Coalescent(n float64, terms int, cfg nexwick.Config) (nexwick.Tree, error) {
	if terms < 2 {
		panic("synth: expecting at least two terminals")
	}

	active := make([]*lineage, terms)
	for i := range active {
		active[i] = &lineage{newick: fmt.Sprintf("term%d", i)}
	}

	age := 0.0
	for k := terms; k > 1; k-- {
		// Two lineages coalesce at rate k choose 2 over n; see
		// Felsenstein, "Inferring Phylogenies" (2004), p.456.
		rate := float64(k*(k-1)) / (2 * n)
		wait := distuv.Exponential{Rate: rate}.Rand()
		age += wait

		i := rand.IntN(len(active))
		j := rand.IntN(len(active) - 1)
		if j >= i {
			j++
		}
		if i > j {
			i, j = j, i
		}
		a, b := active[i], active[j]

		merged := &lineage{
			newick: fmt.Sprintf("(%s:%g,%s:%g)", a.newick, age-a.age, b.newick, age-b.age),
			age:    age,
		}
		active = append(active[:j], active[j+1:]...)
		active[i] = merged
	}

	return nexwick.ParseNewickString(active[0].newick+";", cfg)
}
