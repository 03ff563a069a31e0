// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// NexusResult pairs the trees read from a Nexus file with the taxon
// table they reference, so a caller cannot accidentally separate a
// tree from the table its TaxonIds are meaningless without. Exactly
// one of Trees and Iter is populated, depending on Config.Mode.
type NexusResult struct {
	Taxa     *TaxonTable
	Trees    []Tree
	Iter     *TreeIterator
	Warnings []string
}

// ParseNexusReader reads a Nexus file from r, recognising TAXA and
// TREES blocks and skipping every other block. In eager mode every
// retained tree is parsed before this function returns; in lazy mode
// it returns once any TAXA block has been read and the TREES block has
// begun, and the TRANSLATE command and the trees are read one at a
// time as the returned iterator advances.
func ParseNexusReader(r io.Reader, cfg Config) (*NexusResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	total := 0
	if cfg.BurninFraction > 0 {
		t, err := resolveTotalTrees(r, cfg)
		if err != nil {
			return nil, err
		}
		total = t
		if seeker, ok := r.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return nil, &IOError{Err: err}
			}
		}
	}

	eng, err := newNexusEngine(r, cfg, total)
	if err != nil {
		return nil, err
	}

	if cfg.Mode == ModeLazy {
		return &NexusResult{
			Taxa:     eng.taxa,
			Iter:     &TreeIterator{eng: eng},
			Warnings: eng.warnings,
		}, nil
	}

	var trees []Tree
	for {
		tr, ok, err := eng.nextTree()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		trees = append(trees, tr)
	}
	return &NexusResult{
		Taxa:     eng.taxa,
		Trees:    trees,
		Warnings: eng.warnings,
	}, nil
}

// resolveTotalTrees determines the total number of tree declarations
// when fractional burn-in needs it: via a caller-supplied hint, or a
// pre-pass over a seekable source. It is an error to request
// fractional burn-in against a non-seekable source with no hint.
func resolveTotalTrees(r io.Reader, cfg Config) (int, error) {
	if _, ok := r.(io.Seeker); !ok {
		if cfg.TotalTreesHint > 0 {
			return cfg.TotalTreesHint, nil
		}
		return 0, &ConfigError{Kind: ConfigUnknownTotal}
	}
	return countTreeDeclarations(r)
}

// countTreeDeclarations does a lightweight pre-pass over a Nexus
// source, counting "tree" declarations inside the TREES block without
// building any trees.
func countTreeDeclarations(r io.Reader) (int, error) {
	s := newNexScanner(r)
	if err := s.expectHeader(); err != nil {
		return 0, err
	}
	if err := s.seekToBlock("trees"); err != nil {
		return 0, err
	}
	count := 0
	for {
		text, delim, err := s.readToken()
		if err != nil {
			return 0, err
		}
		cmd := strings.ToLower(text)
		switch cmd {
		case "end", "endblock":
			return count, nil
		case "tree":
			count++
			if delim != ';' {
				if err := s.skipDefinition(); err != nil {
					return 0, err
				}
			}
		default:
			if delim != ';' {
				if err := s.skipDefinition(); err != nil {
					return 0, err
				}
			}
		}
	}
}

// nexusEngine drives the Nexus envelope scan and, on demand, builds
// the next surviving tree. It is the shared core behind both eager
// collection and the lazy TreeIterator.
type nexusEngine struct {
	scanner *nexScanner
	cfg     Config
	taxa    *TaxonTable

	translate       map[string]TaxonId
	strictTranslate bool

	warnings []string

	combinedDrop int // skip_first + floor(burnin_fraction*total)
	seen         int
	kept         int
	done         bool
}

func newNexusEngine(r io.Reader, cfg Config, total int) (*nexusEngine, error) {
	s := newNexScanner(r)
	if err := s.expectHeader(); err != nil {
		return nil, err
	}

	eng := &nexusEngine{
		scanner:         s,
		cfg:             cfg,
		taxa:            NewTaxonTable(),
		strictTranslate: cfg.StrictTranslate,
	}
	burninCount := 0
	if cfg.BurninFraction > 0 {
		burninCount = int(math.Floor(cfg.BurninFraction * float64(total)))
	}
	eng.combinedDrop = cfg.SkipFirst + burninCount

	for {
		name, err := s.expectBeginBlock()
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(name) {
		case "taxa":
			if err := eng.parseTaxaBlock(); err != nil {
				return nil, err
			}
		case "trees":
			return eng, nil
		default:
			if err := s.skipBlock(); err != nil {
				return nil, err
			}
		}
	}
}

func (e *nexusEngine) parseTaxaBlock() error {
	s := e.scanner
	for {
		text, delim, err := s.readToken()
		if err != nil {
			return err
		}
		cmd := strings.ToLower(text)
		switch cmd {
		case "end", "endblock":
			return nil
		case "dimensions":
			if delim != ';' {
				if err := s.skipDefinition(); err != nil {
					return err
				}
			}
		case "taxlabels":
			if err := e.readTaxLabels(); err != nil {
				return err
			}
		default:
			if delim != ';' {
				if err := s.skipDefinition(); err != nil {
					return err
				}
			}
		}
	}
}

func (e *nexusEngine) readTaxLabels() error {
	s := e.scanner
	for {
		name, delim, err := s.readToken()
		if err != nil {
			return err
		}
		if name != "" {
			if _, dup := e.taxa.Get(name); dup {
				return &NexusError{Kind: NexusDuplicateTaxon, Block: "TAXA", Line: s.line, Msg: name}
			}
			e.taxa.Intern(name)
		}
		if delim == ';' {
			return nil
		}
	}
}

// nextTree advances the TREES block scan until it finds a tree
// declaration that survives the filter pipeline, building it, or
// until the block ends. ok is false once there is nothing more to
// return (block end, or max_trees already satisfied).
func (e *nexusEngine) nextTree() (Tree, bool, error) {
	if e.done {
		return nil, false, nil
	}
	if e.cfg.MaxTrees > 0 && e.kept >= e.cfg.MaxTrees {
		e.done = true
		return nil, false, nil
	}

	s := e.scanner
	for {
		text, delim, err := s.readToken()
		if err != nil {
			return nil, false, err
		}
		cmd := strings.ToLower(text)

		switch cmd {
		case "end", "endblock":
			e.done = true
			return nil, false, nil

		case "translate":
			if err := e.readTranslate(); err != nil {
				return nil, false, err
			}

		case "tree":
			e.seen++
			line := s.line
			// consume the tree name, then the '=' that follows it
			_, nameDelim, err := s.readToken()
			if err != nil {
				return nil, false, err
			}
			if nameDelim != '=' {
				if _, d, err := s.readToken(); err != nil {
					return nil, false, err
				} else if d != '=' {
					return nil, false, &NexusError{Kind: NexusMalformedBlock, Block: "TREES", Line: line, Msg: "expected '=' after tree name"}
				}
			}

			keep := e.seen > e.combinedDrop &&
				(e.seen-e.combinedDrop-1)%e.cfg.SampleEvery == 0
			if !keep {
				if err := s.skipDefinition(); err != nil {
					return nil, false, err
				}
				continue
			}

			if err := s.skipSpaces(); err != nil {
				return nil, false, err
			}
			lex := newLexerAt(s.r, s.pos, s.line)
			p := &parser{lex: lex, translate: e.translate, strictTranslate: e.strictTranslate, line: line}
			builder := newBuilderFor(e.cfg.Representation, e.taxa)
			tr, err := p.parseTree(builder)
			if err != nil {
				return nil, false, err
			}
			s.pos = lex.pos
			s.line = lex.line
			e.kept++
			return tr, true, nil

		default:
			if cmd == "" {
				e.done = true
				return nil, false, nil
			}
			if e.strictTranslate {
				return nil, false, &NexusError{Kind: NexusUnknownCommand, Block: "TREES", Line: s.line, Msg: cmd}
			}
			if delim != ';' {
				if err := s.skipDefinition(); err != nil {
					return nil, false, err
				}
			}
		}
	}
}

// readTranslate builds the local-id-to-TaxonId map from a TRANSLATE
// command. When a TAXA block already populated the taxon table, a
// translate entry naming a taxon absent from it is a mismatch: a
// warning by default, or a TranslateError under strict_translate.
func (e *nexusEngine) readTranslate() error {
	s := e.scanner
	e.translate = make(map[string]TaxonId)
	taxaSealed := e.taxa.Len() > 0
	for {
		localID, delim, err := s.readToken()
		if err != nil {
			return err
		}
		if localID == "" && delim == ';' {
			return nil
		}
		name, delim2, err := s.readToken()
		if err != nil {
			return err
		}
		_, knownBefore := e.taxa.Get(name)
		id := e.taxa.Intern(name)
		if taxaSealed && !knownBefore {
			if e.strictTranslate {
				return &TranslateError{Kind: TranslateNotInTaxa, LocalID: localID, Line: s.line}
			}
			e.warnings = append(e.warnings, "translate: taxon "+strconv.Quote(name)+" not present in TAXA block")
		}

		e.translate[localID] = id
		if delim2 == ';' {
			return nil
		}
	}
}

// --- low-level Nexus token scanning -----------------------------------

// nexScanner reads Nexus block/command tokens from a shared
// *bufio.Reader, tracking an approximate line number for error
// reporting. Matching of block/command names is case-insensitive;
// content tokens preserve case.
type nexScanner struct {
	r    *bufio.Reader
	pos  int64
	line int
	last int
}

func newNexScanner(r io.Reader) *nexScanner {
	return &nexScanner{r: bufio.NewReader(r), line: 1}
}

func (s *nexScanner) readRune() (rune, error) {
	r, size, err := s.r.ReadRune()
	if err != nil {
		return 0, err
	}
	s.pos += int64(size)
	s.last = size
	if r == '\n' {
		s.line++
	}
	return r, nil
}

func (s *nexScanner) unreadRune() {
	if err := s.r.UnreadRune(); err != nil {
		return
	}
	s.pos -= int64(s.last)
}

func (s *nexScanner) skipSpaces() error {
	for {
		r, err := s.readRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &IOError{Err: err}
		}
		if r == '[' {
			if err := s.skipComment(); err != nil {
				return err
			}
			continue
		}
		if !unicode.IsSpace(r) {
			s.unreadRune()
			return nil
		}
	}
}

func (s *nexScanner) skipComment() error {
	start := s.pos - 1
	depth := 1
	for {
		r, err := s.readRune()
		if errors.Is(err, io.EOF) {
			return &LexError{Kind: LexUnterminatedComment, Pos: start}
		}
		if err != nil {
			return &IOError{Err: err}
		}
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

// readToken reads the next token, returning its text and the
// delimiter that ended it (one of ' ' for whitespace, ';', ',', '/',
// '='). It mirrors the teacher's quoted-block handling: a token
// starting with a quote is read verbatim (with doubled quotes
// collapsing to a literal quote) until the matching close quote.
func (s *nexScanner) readToken() (string, rune, error) {
	if err := s.skipSpaces(); err != nil {
		return "", 0, err
	}
	var b strings.Builder

	r1, err := s.readRune()
	if errors.Is(err, io.EOF) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, &IOError{Err: err}
	}

	var delim rune
	if r1 == '\'' || r1 == '"' {
		stop := r1
		start := s.pos - 1
		for {
			r, err := s.readRune()
			if errors.Is(err, io.EOF) {
				return "", 0, &LexError{Kind: LexUnterminatedQuote, Pos: start}
			}
			if err != nil {
				return "", 0, &IOError{Err: err}
			}
			if r == stop {
				nx, err := s.readRune()
				if errors.Is(err, io.EOF) {
					delim = ' '
					break
				}
				if err != nil {
					return "", 0, &IOError{Err: err}
				}
				if nx != stop {
					s.unreadRune()
					delim = ' '
					break
				}
				if stop == '\'' {
					b.WriteRune('\'')
					continue
				}
			}
			b.WriteRune(r)
		}
	} else {
		s.unreadRune()
		for {
			r, err := s.readRune()
			if errors.Is(err, io.EOF) {
				delim = ' '
				break
			}
			if err != nil {
				return "", 0, &IOError{Err: err}
			}
			if unicode.IsSpace(r) {
				delim = ' '
				break
			}
			if r == ';' || r == ',' || r == '/' || r == '=' {
				delim = r
				break
			}
			b.WriteRune(r)
		}
	}

	if unicode.IsSpace(delim) {
		if err := s.skipSpaces(); err != nil {
			return "", 0, err
		}
		r, err := s.readRune()
		if errors.Is(err, io.EOF) {
			return b.String(), delim, nil
		}
		if err != nil {
			return "", 0, &IOError{Err: err}
		}
		if r == ';' || r == ',' || r == '/' || r == '=' {
			delim = r
		} else {
			s.unreadRune()
		}
	}
	return b.String(), delim, nil
}

func (s *nexScanner) skipDefinition() error {
	for {
		_, delim, err := s.readToken()
		if err != nil {
			return err
		}
		if delim == ';' {
			return nil
		}
	}
}

func (s *nexScanner) skipBlock() error {
	for {
		text, _, err := s.readToken()
		if err != nil {
			return err
		}
		t := strings.ToLower(text)
		if t == "end" || t == "endblock" {
			return nil
		}
	}
}

func (s *nexScanner) expectHeader() error {
	text, _, err := s.readToken()
	if err != nil {
		return err
	}
	if strings.ToLower(text) != "#nexus" {
		return &NexusError{Kind: NexusMissingHeader, Line: s.line, Msg: text}
	}
	return nil
}

// expectBeginBlock reads a "BEGIN <name> ;" sequence and returns name.
func (s *nexScanner) expectBeginBlock() (string, error) {
	text, _, err := s.readToken()
	if err != nil {
		return "", err
	}
	if strings.ToLower(text) != "begin" {
		return "", &NexusError{Kind: NexusMalformedBlock, Line: s.line, Msg: "expected 'begin', got " + strconv.Quote(text)}
	}
	name, delim, err := s.readToken()
	if err != nil {
		return "", err
	}
	if delim != ';' {
		if err := s.skipDefinition(); err != nil {
			return "", err
		}
	}
	return name, nil
}

// seekToBlock skips blocks until one named want (case-insensitive)
// begins; used only by the lightweight pre-pass counter.
func (s *nexScanner) seekToBlock(want string) error {
	for {
		name, err := s.expectBeginBlock()
		if err != nil {
			return err
		}
		if strings.ToLower(name) == want {
			return nil
		}
		if err := s.skipBlock(); err != nil {
			return err
		}
	}
}
