// Copyright 2024 The TOML Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser implements the expression parser, statement parser, and
// tree builder of spec.md §4.3–§4.5: it drives a [scanner.Scanner] over a
// whole document and produces a rooted [value.Table], enforcing every
// cross-statement invariant of spec.md §3 as it goes. There is no
// backtracking: a statement is either accepted and folded into the tree,
// or the first error aborts the parse.
package parser

import (
	"github.com/tomldec/toml/scanner"
	"github.com/tomldec/toml/token"
	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

// DefaultMaxDepth is the default cap on combined array/inline-table
// nesting within one value (spec.md §5). The number of segments in a
// dotted key or table header is not counted against it.
const DefaultMaxDepth = 256

// Option configures a Decode call.
type Option func(*Parser)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// WithFloatParser installs a hook called with the raw float literal text
// (underscores already stripped) instead of the built-in strconv-based
// parser (SPEC_FULL.md §C.1). The hook returns a float64, and that is
// what the decoded Float value holds; no greater precision is kept.
func WithFloatParser(parse func(string) (float64, error)) Option {
	return func(p *Parser) { p.parseFloat = parse }
}

// Parser holds the state of a single decode: the scanner, the document
// root, and the current insertion point (spec.md §4.5).
type Parser struct {
	sc *scanner.Scanner

	root   *value.Table
	cursor *value.Table

	maxDepth   int
	parseFloat func(string) (float64, error)
}

// Decode parses a complete TOML document and returns its root table.
func Decode(src []byte, opts ...Option) (*value.Table, error) {
	if err := scanner.ValidateUTF8(src); err != nil {
		return nil, err
	}
	root := value.NewTable()
	root.SetExplicit(true)
	p := &Parser{
		sc:       scanner.Init(src),
		root:     root,
		cursor:   root,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.parseFloat != nil {
		p.sc.SetFloatParser(p.parseFloat)
	}
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	return p.root, nil
}

func (p *Parser) errorf(kind tomlerr.Kind, format string, args ...any) *tomlerr.Error {
	return tomlerr.Newf(kind, p.sc.Position(), format, args...)
}

func (p *Parser) errorfAt(pos token.Position, kind tomlerr.Kind, format string, args ...any) *tomlerr.Error {
	return tomlerr.Newf(kind, pos, format, args...)
}
