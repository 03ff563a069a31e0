// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

import "strings"

// ParseNewickString parses s as a single Newick tree, terminated by
// ';', using the representation cfg selects. The taxon table is
// created fresh and is reachable through the returned Tree.
func ParseNewickString(s string, cfg Config) (Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := newBuilderFor(cfg.Representation, nil)
	lex := newLexer(strings.NewReader(s))
	p := &parser{lex: lex}
	return p.parseTree(b)
}

// newBuilderFor returns a fresh Builder for representation, sharing
// taxa if non-nil.
func newBuilderFor(representation Representation, taxa *TaxonTable) Builder {
	if representation == RepresentationSimple {
		return NewSimpleTreeBuilder(taxa)
	}
	return NewCompactTreeBuilder(taxa)
}

// parser drives a Builder from a token stream, following the grammar:
//
//	tree     := subtree ';'
//	subtree  := leaf | internal
//	leaf     := label [':' number]
//	internal := '(' subtree (',' subtree)+ ')' [label] [':' number]
//
// parseTree is more lenient than this grammar in one respect: a
// parenthesised group holding a single subtree, such as "(A);", is
// accepted as an internal vertex with one child.
//
// Unlike a textbook recursive-descent implementation, parseTree tracks
// nesting with an explicit integer depth counter and relies on the
// Builder's own (also explicit) stack rather than native recursion, so
// that thousands of levels of nested parentheses cannot overflow the
// Go call stack.
type parser struct {
	lex       *lexer
	translate map[string]TaxonId // nil when no TRANSLATE table is in force
	buf       *token

	// strictTranslate, when translate is non-nil, turns a leaf label
	// absent from the translate table into a TranslateError instead of
	// interning it directly. line is reported on that error; it is a
	// snapshot taken by the Nexus driver when the tree declaration
	// began, not tracked token-by-token.
	strictTranslate bool
	line            int
}

func (p *parser) peek() (token, error) {
	if p.buf != nil {
		return *p.buf, nil
	}
	t, err := p.lex.next()
	if err != nil {
		return token{}, err
	}
	p.buf = &t
	return t, nil
}

func (p *parser) consume() { p.buf = nil }

func (p *parser) next() (token, error) {
	if p.buf != nil {
		t := *p.buf
		p.buf = nil
		return t, nil
	}
	return p.lex.next()
}

func (p *parser) resolveTaxon(raw string, taxa *TaxonTable) (TaxonId, error) {
	if p.translate != nil {
		if id, ok := p.translate[raw]; ok {
			return id, nil
		}
		if p.strictTranslate {
			return 0, &TranslateError{Kind: TranslateUnresolved, LocalID: raw, Line: p.line}
		}
	}
	return taxa.Intern(raw), nil
}

// maybeBranchLength consumes an optional ':' number following the
// vertex most recently attached to b's current focus.
func (p *parser) maybeBranchLength(b Builder) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.kind != tokColon {
		return nil
	}
	p.consume()
	v, err := p.lex.expectNumber()
	if err != nil {
		return err
	}
	b.SetBranchLengthOfJustAttached(v)
	return nil
}

// maybeInternalLabelAndLength consumes the optional label and optional
// ':' number that may follow a ')'.
func (p *parser) maybeInternalLabelAndLength(b Builder) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.kind == tokLabel || tok.kind == tokNumber {
		p.consume()
		b.SetLabelOfJustClosed(tok.text)
	}
	return p.maybeBranchLength(b)
}

// parseTree consumes exactly one "subtree ';'" and returns the
// completed tree.
func (p *parser) parseTree(b Builder) (Tree, error) {
	depth := 0
	expectChild := true

	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}

		switch tok.kind {
		case tokLParen:
			if !expectChild {
				return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.pos, Msg: "unexpected '('"}
			}
			b.BeginInternal()
			depth++
			expectChild = true

		case tokComma:
			if depth == 0 {
				return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.pos, Msg: "unexpected ','"}
			}
			if expectChild {
				return nil, &ParseError{Kind: ParseEmptyChild, Pos: tok.pos}
			}
			expectChild = true

		case tokRParen:
			if depth == 0 {
				return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.pos, Msg: "unexpected ')'"}
			}
			if expectChild {
				return nil, &ParseError{Kind: ParseEmptyChild, Pos: tok.pos}
			}
			depth--
			b.EndInternal()
			if err := p.maybeInternalLabelAndLength(b); err != nil {
				return nil, err
			}
			expectChild = false

		case tokLabel, tokNumber:
			if !expectChild {
				return nil, &ParseError{Kind: ParseUnexpectedToken, Pos: tok.pos, Msg: "unexpected label"}
			}
			id, err := p.resolveTaxon(tok.text, b.Taxa())
			if err != nil {
				return nil, err
			}
			b.AddLeaf(id)
			if err := p.maybeBranchLength(b); err != nil {
				return nil, err
			}
			expectChild = false

		case tokColon:
			return nil, &ParseError{Kind: ParseBranchLengthWithoutVertex, Pos: tok.pos}

		case tokSemicolon:
			if depth != 0 {
				return nil, &ParseError{Kind: ParseUnmatchedParen, Pos: tok.pos}
			}
			if expectChild {
				return nil, &ParseError{Kind: ParseEmptyTree, Pos: tok.pos}
			}
			return b.Finish()

		case tokEOF:
			if depth != 0 {
				return nil, &ParseError{Kind: ParseUnmatchedParen, Pos: tok.pos}
			}
			return nil, &ParseError{Kind: ParseUnexpectedEOF, Pos: tok.pos}
		}
	}
}
