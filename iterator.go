// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

import "io"

// TreeIterator streams trees out of a Nexus TREES block one at a time,
// for callers that cannot or do not want to hold a whole posterior
// sample in memory at once. Its usage mirrors bufio.Scanner:
//
//	for iter.Next() {
//	    t := iter.Tree()
//	}
//	if err := iter.Err(); err != nil {
//	    ...
//	}
type TreeIterator struct {
	eng    *nexusEngine
	cur    Tree
	err    error
	done   bool
	closer io.Closer
}

// Next advances the iterator to the next surviving tree, returning
// false when the TREES block is exhausted or an error occurred. Call
// Err after Next returns false to distinguish the two.
func (it *TreeIterator) Next() bool {
	if it.done {
		return false
	}
	tr, ok, err := it.eng.nextTree()
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	if !ok {
		it.done = true
		return false
	}
	it.cur = tr
	return true
}

// Tree returns the tree produced by the most recent call to Next.
func (it *TreeIterator) Tree() Tree { return it.cur }

// Err returns the error, if any, that stopped iteration.
func (it *TreeIterator) Err() error { return it.err }

// Warnings returns the non-fatal mismatches observed so far (for
// example, translate entries with no matching TAXA entry under
// non-strict translation).
func (it *TreeIterator) Warnings() []string { return it.eng.warnings }

// Close releases the underlying source, if ParseNexusFile opened it.
func (it *TreeIterator) Close() error {
	if it.closer == nil {
		return nil
	}
	return it.closer.Close()
}
