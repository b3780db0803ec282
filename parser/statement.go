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

package parser

import (
	"github.com/tomldec/toml/value"

	"github.com/tomldec/toml/tomlerr"
)

// parseDocument drives the top-level statement loop of spec.md §4.4: each
// iteration is a blank/comment line, a [header], a [[header]], or a
// key = value pair, each of which must be the only statement on its
// physical line besides trailing whitespace or a comment.
func (p *Parser) parseDocument() error {
	for {
		if err := p.sc.SkipBlankLines(); err != nil {
			return err
		}
		if p.sc.AtEOF() {
			return nil
		}

		if p.sc.Peek(0) == '[' {
			if err := p.parseTableHeaderStatement(); err != nil {
				return err
			}
		} else {
			if err := p.parseKeyValueStatement(p.cursor); err != nil {
				return err
			}
		}

		if err := p.endOfLine(); err != nil {
			return err
		}
	}
}

// endOfLine consumes the trailing whitespace/comment and newline (or EOF)
// that must follow every statement.
func (p *Parser) endOfLine() error {
	p.sc.SkipSpaces()
	if p.sc.AtComment() {
		if err := p.sc.SkipComment(); err != nil {
			return err
		}
	}
	if p.sc.AtEOF() {
		return nil
	}
	ok, err := p.sc.ConsumeNewline()
	if err != nil {
		return err
	}
	if !ok {
		return p.errorf(tomlerr.UnexpectedCharacter, "expected a newline after a statement")
	}
	return nil
}

// parseTableHeaderStatement parses a [a.b.c] or [[a.b.c]] statement and
// moves the current insertion point to the table it opens.
func (p *Parser) parseTableHeaderStatement() error {
	pos := p.sc.Position()
	p.sc.Advance(1) // consume '['
	isArrayOfTables := p.sc.Peek(0) == '['
	if isArrayOfTables {
		p.sc.Advance(1)
	}

	p.sc.SkipSpaces()
	segs, err := p.parseKeyPath()
	if err != nil {
		return err
	}
	p.sc.SkipSpaces()

	if isArrayOfTables {
		if !p.sc.Match("]]") {
			return p.errorf(tomlerr.UnexpectedCharacter, "expected ']]' to close an array-of-tables header")
		}
		t, err := p.openArrayOfTablesElement(segs, pos)
		if err != nil {
			return err
		}
		p.cursor = t
		return nil
	}

	if !p.sc.Match("]") {
		return p.errorf(tomlerr.UnexpectedCharacter, "expected ']' to close a table header")
	}
	t, err := p.openHeader(segs, pos)
	if err != nil {
		return err
	}
	p.cursor = t
	return nil
}

// parseKeyValueStatement parses "key = value", resolving the (possibly
// dotted) key path relative to target.
func (p *Parser) parseKeyValueStatement(target *value.Table) error {
	pos := p.sc.Position()
	segs, err := p.parseKeyPath()
	if err != nil {
		return err
	}
	p.sc.SkipSpaces()
	if !p.sc.Match("=") {
		return p.errorf(tomlerr.UnexpectedCharacter, "expected '=' after a key")
	}
	p.sc.SkipSpaces()
	v, err := p.parseValue(0)
	if err != nil {
		return err
	}
	return p.assignKeyValue(target, segs, v, pos)
}

// parseKeyPath parses one or more dot-separated key segments, each a
// bare key or a single-line quoted key (spec.md §4.2), with optional
// whitespace around the dots.
func (p *Parser) parseKeyPath() ([]string, error) {
	if !p.sc.AtKeyStart() {
		return nil, p.errorf(tomlerr.UnexpectedCharacter, "expected a key")
	}
	first, err := p.sc.ScanKey()
	if err != nil {
		return nil, err
	}
	segs := []string{first}
	for {
		p.sc.SkipSpaces()
		if p.sc.Peek(0) != '.' {
			break
		}
		p.sc.Advance(1)
		p.sc.SkipSpaces()
		if !p.sc.AtKeyStart() {
			return nil, p.errorf(tomlerr.UnexpectedCharacter, "expected a key segment after '.'")
		}
		seg, err := p.sc.ScanKey()
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}
