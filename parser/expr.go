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
	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

// parseValue parses the value to the right of '=' or an array element:
// a string, number, boolean, datetime, inline array, or inline table
// (spec.md §4.3). depth is how many array/inline-table levels already
// enclose this value; it is the sole input to the nesting-depth check
// (spec.md §5), since scalars themselves never add to it.
func (p *Parser) parseValue(depth int) (value.Value, error) {
	switch ch := p.sc.Peek(0); {
	case ch == '"' || ch == '\'':
		return p.sc.ScanString()
	case ch == '[':
		return p.parseArray(depth)
	case ch == '{':
		return p.parseInlineTable(depth)
	case ch == 't':
		if p.sc.Match("true") {
			return value.NewBoolean(true), nil
		}
		return value.Value{}, p.errorf(tomlerr.UnexpectedCharacter, "invalid value")
	case ch == 'f':
		if p.sc.Match("false") {
			return value.NewBoolean(false), nil
		}
		return value.Value{}, p.errorf(tomlerr.UnexpectedCharacter, "invalid value")
	case ch == '+' || ch == '-' || ch == 'i' || ch == 'n' || (ch >= '0' && ch <= '9'):
		return p.sc.ScanNumberOrDateTime()
	default:
		return value.Value{}, p.errorf(tomlerr.UnexpectedCharacter, "expected a value")
	}
}

// parseArray parses "[" … "]" (spec.md §4.3): elements are comma-separated
// values, possibly spread across multiple lines with blank lines and
// comments freely interspersed, with an optional trailing comma.
func (p *Parser) parseArray(depth int) (value.Value, error) {
	newDepth := depth + 1
	if newDepth > p.maxDepth {
		return value.Value{}, p.errorf(tomlerr.NestingTooDeep, "array nesting exceeds maximum depth of %d", p.maxDepth)
	}
	p.sc.Advance(1) // consume '['
	arr := value.NewArray()

	if err := p.sc.SkipBlankLines(); err != nil {
		return value.Value{}, err
	}
	for {
		if p.sc.Peek(0) == ']' {
			p.sc.Advance(1)
			arr.SetInline(true)
			return value.ArrayValue(arr), nil
		}
		v, err := p.parseValue(newDepth)
		if err != nil {
			return value.Value{}, err
		}
		arr.Append(v)
		if err := p.sc.SkipBlankLines(); err != nil {
			return value.Value{}, err
		}
		switch p.sc.Peek(0) {
		case ',':
			p.sc.Advance(1)
			if err := p.sc.SkipBlankLines(); err != nil {
				return value.Value{}, err
			}
		case ']':
			p.sc.Advance(1)
			arr.SetInline(true)
			return value.ArrayValue(arr), nil
		default:
			if p.sc.AtEOF() {
				return value.Value{}, p.errorf(tomlerr.UnexpectedEOF, "unterminated array")
			}
			return value.Value{}, p.errorf(tomlerr.UnexpectedCharacter, "expected ',' or ']' in array")
		}
	}
}

// parseInlineTable parses "{" … "}" (spec.md §4.3): comma-separated
// key = value pairs on a single logical line, dotted keys allowed, no
// trailing comma, no comments or blank lines between entries.
func (p *Parser) parseInlineTable(depth int) (value.Value, error) {
	newDepth := depth + 1
	if newDepth > p.maxDepth {
		return value.Value{}, p.errorf(tomlerr.NestingTooDeep, "inline table nesting exceeds maximum depth of %d", p.maxDepth)
	}
	pos := p.sc.Position()
	p.sc.Advance(1) // consume '{'
	t := value.NewTable()

	p.sc.SkipSpaces()
	if p.sc.Peek(0) == '}' {
		p.sc.Advance(1)
		t.SetInline(true)
		return value.TableValue(t), nil
	}
	for {
		p.sc.SkipSpaces()
		entryPos := p.sc.Position()
		segs, err := p.parseKeyPath()
		if err != nil {
			return value.Value{}, err
		}
		p.sc.SkipSpaces()
		if !p.sc.Match("=") {
			return value.Value{}, p.errorf(tomlerr.UnexpectedCharacter, "expected '=' in inline table")
		}
		p.sc.SkipSpaces()
		v, err := p.parseValue(newDepth)
		if err != nil {
			return value.Value{}, err
		}
		if err := p.assignKeyValue(t, segs, v, entryPos); err != nil {
			return value.Value{}, err
		}

		p.sc.SkipSpaces()
		switch p.sc.Peek(0) {
		case ',':
			p.sc.Advance(1)
		case '}':
			p.sc.Advance(1)
			t.SetInline(true)
			return value.TableValue(t), nil
		default:
			if p.sc.AtEOF() {
				return value.Value{}, p.errorfAt(pos, tomlerr.UnexpectedEOF, "unterminated inline table")
			}
			return value.Value{}, p.errorfAt(pos, tomlerr.UnexpectedCharacter, "expected ',' or '}' in inline table")
		}
	}
}
