// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

// Representation selects the concrete tree representation a parse
// call builds.
type Representation int

const (
	// RepresentationCompact builds a CompactTree: a structure-of-arrays
	// encoding optimized for holding large posterior samples.
	RepresentationCompact Representation = iota
	// RepresentationSimple builds a SimpleTree: one heap-allocated
	// vertex per node, convenient for interactive inspection.
	RepresentationSimple
)

// Mode selects whether a Nexus parse materializes every retained tree
// up front or hands back an iterator that parses on demand.
type Mode int

const (
	// ModeEager parses every retained tree before returning.
	ModeEager Mode = iota
	// ModeLazy returns a TreeIterator that parses one tree at a time.
	ModeLazy
)

// Config controls representation choice and the tree-filtering
// pipeline applied to a Nexus parse. The zero value is not meaningful
// on its own; use DefaultConfig.
type Config struct {
	Representation Representation
	Mode           Mode

	// SkipFirst drops the first N tree declarations unconditionally.
	SkipFirst int

	// BurninFraction, in [0,1), drops the first floor(f*total) tree
	// declarations. Applied after SkipFirst.
	BurninFraction float64

	// SampleEvery keeps every k-th surviving tree declaration. Must be
	// positive; 1 keeps all of them.
	SampleEvery int

	// MaxTrees caps the number of trees kept after sampling. 0 means
	// unbounded.
	MaxTrees int

	// StrictTranslate turns a TRANSLATE entry naming a taxon absent
	// from a preceding TAXA block, or a tree line referencing a local
	// ID absent from TRANSLATE, into a TranslateError, and an unknown
	// command inside TREES into a NexusError. Without it, the first
	// case is recorded in Warnings, an unmatched leaf label is interned
	// as a taxon name as-is, and unknown commands are skipped.
	StrictTranslate bool

	// TotalTreesHint lets a caller declare the total number of tree
	// declarations in the source, so BurninFraction can be honoured
	// against a non-seekable source, in eager and lazy mode alike. It
	// is ignored when BurninFraction is 0 or the source is an
	// io.Seeker, whose declarations are counted by a pre-pass instead.
	TotalTreesHint int
}

// DefaultConfig returns the default options: compact representation,
// eager parsing, no filtering.
func DefaultConfig() Config {
	return Config{
		Representation: RepresentationCompact,
		Mode:           ModeEager,
		SkipFirst:      0,
		BurninFraction: 0,
		SampleEvery:    1,
		MaxTrees:       0,
		StrictTranslate: false,
		TotalTreesHint: 0,
	}
}

// Validate reports a ConfigError if the receiver's fields are out of
// range.
func (c Config) Validate() error {
	if c.BurninFraction < 0 || c.BurninFraction >= 1 {
		return &ConfigError{Kind: ConfigBurninOutOfRange, Msg: "must be in [0, 1)"}
	}
	if c.SampleEvery <= 0 {
		return &ConfigError{Kind: ConfigSampleEveryZero}
	}
	if c.SkipFirst < 0 {
		return &ConfigError{Kind: ConfigBurninOutOfRange, Msg: "skip_first must be non-negative"}
	}
	return nil
}
