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
	"strings"

	"github.com/tomldec/toml/token"
	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

// This file is the tree builder of spec.md §4.5. It owns every mutation
// of the document tree and is the sole place that enforces the
// cross-statement invariants of spec.md §3: no duplicate keys, no
// table/value kind conflicts, no re-declaration of an explicit table, no
// extension of an inline table or array.
//
// Two tables carry the sealing state that makes this tractable without a
// side index (contrast with the openTableArrays/seenKeys side-tables an
// AST-based builder needs): Table.Explicit, set the moment a table is
// opened by a [header], and Table.Closed, set at that moment and also
// when a table becomes the direct parent of a key write, which is the
// one actually consulted to reject a later [header] targeting the same
// path.
// A table reached only as an ancestor on the way to some deeper path —
// never itself the target of a header or a key — stays open, which is
// what lets "[a.b]" followed later by "[a]" promote the implicit `a` to
// explicit (real TOML allows this; only a["direct" write] seals it).

// dottedPath renders a key path for error messages and Path fields.
func dottedPath(segs []string) []string {
	return append([]string(nil), segs...)
}

// walkPrefix walks all but the caller's final key segment starting from
// cur, creating implicit tables as needed and descending into the last
// element of any array-of-tables it meets along the way (spec.md §4.5).
// segs is the full path; prefixLen is how many leading segments to walk
// (len(segs)-1 for a normal path).
func (p *Parser) walkPrefix(cur *value.Table, segs []string, prefixLen int, pos token.Position) (*value.Table, error) {
	for i := 0; i < prefixLen; i++ {
		seg := segs[i]
		v, ok := cur.Get(seg)
		if !ok {
			nt := value.NewTable()
			cur.Set(seg, value.TableValue(nt))
			cur = nt
			continue
		}
		switch v.Kind() {
		case value.TableKind:
			t := v.Table()
			if t.Inline() {
				return nil, tomlerr.NewPath(tomlerr.ExtendedInlineTable, pos, dottedPath(segs[:i+1]),
					"%q is an inline table and cannot be extended", seg)
			}
			cur = t
		case value.ArrayKind:
			arr := v.Array()
			if !arr.IsArrayOfTables() {
				return nil, tomlerr.NewPath(tomlerr.ExtendedInlineArray, pos, dottedPath(segs[:i+1]),
					"%q is an inline array and cannot be extended", seg)
			}
			cur = arr.LastTable()
		default:
			return nil, tomlerr.NewPath(tomlerr.TableIsValue, pos, dottedPath(segs[:i+1]),
				"%q is a %s, not a table", seg, v.Kind())
		}
	}
	return cur, nil
}

// assignKeyValue implements a key = value statement (spec.md §4.4): segs
// is the full (possibly dotted) key path, resolved relative to start
// (the current insertion point for a top-level statement, or the
// enclosing table for an inline-table entry).
func (p *Parser) assignKeyValue(start *value.Table, segs []string, v value.Value, pos token.Position) error {
	parent, err := p.walkPrefix(start, segs, len(segs)-1, pos)
	if err != nil {
		return err
	}
	last := segs[len(segs)-1]
	if parent.Inline() {
		return tomlerr.NewPath(tomlerr.ExtendedInlineTable, pos, dottedPath(segs), "cannot add keys to an inline table")
	}
	if existing, ok := parent.Get(last); ok {
		if existing.Kind() == value.TableKind {
			return tomlerr.NewPath(tomlerr.ValueIsTable, pos, dottedPath(segs), "%q is already a table", last)
		}
		return tomlerr.NewPath(tomlerr.DuplicateKey, pos, dottedPath(segs), "%q is already defined", last)
	}
	parent.Set(last, v)
	// Writing directly into parent, whether through a bare key or the
	// last segment of a dotted one, seals that exact path against a
	// later [header]: real TOML forbids "a.b = 1" followed by "[a]", but
	// still allows "[a.c]" (spec.md §4.5's "sealing rules").
	parent.SetClosed(true)
	return nil
}

// openHeader implements a [a.b.c] statement (spec.md §4.5, invariant 4).
// Header paths are always resolved from the document root.
func (p *Parser) openHeader(segs []string, pos token.Position) (*value.Table, error) {
	if len(segs) == 0 {
		return nil, tomlerr.NewPath(tomlerr.EmptyKey, pos, nil, "table header has no name")
	}
	parent, err := p.walkPrefix(p.root, segs, len(segs)-1, pos)
	if err != nil {
		return nil, err
	}
	last := segs[len(segs)-1]
	existing, ok := parent.Get(last)
	if !ok {
		t := value.NewTable()
		t.SetExplicit(true)
		t.SetClosed(true)
		parent.Set(last, value.TableValue(t))
		return t, nil
	}
	switch existing.Kind() {
	case value.TableKind:
		t := existing.Table()
		if t.Inline() {
			return nil, tomlerr.NewPath(tomlerr.ExtendedInlineTable, pos, dottedPath(segs), "%q is an inline table", last)
		}
		if t.Closed() {
			return nil, tomlerr.NewPath(tomlerr.RedefinedTable, pos, dottedPath(segs), "table %q is already defined", strings.Join(segs, "."))
		}
		t.SetExplicit(true)
		t.SetClosed(true)
		return t, nil
	case value.ArrayKind:
		return nil, tomlerr.NewPath(tomlerr.TypeConflict, pos, dottedPath(segs), "%q is an array of tables, not a table", last)
	default:
		return nil, tomlerr.NewPath(tomlerr.TableIsValue, pos, dottedPath(segs), "%q is a %s, not a table", last, existing.Kind())
	}
}

// openArrayOfTablesElement implements a [[a.b.c]] statement (spec.md
// §4.5, invariant 5): it appends a fresh table to the array at segs,
// creating the array itself on first use, and returns that new table as
// the statement's insertion point.
func (p *Parser) openArrayOfTablesElement(segs []string, pos token.Position) (*value.Table, error) {
	if len(segs) == 0 {
		return nil, tomlerr.NewPath(tomlerr.EmptyKey, pos, nil, "array-of-tables header has no name")
	}
	parent, err := p.walkPrefix(p.root, segs, len(segs)-1, pos)
	if err != nil {
		return nil, err
	}
	last := segs[len(segs)-1]
	existing, ok := parent.Get(last)
	if !ok {
		arr := value.NewArray()
		arr.SetIsArrayOfTables(true)
		t := value.NewTable()
		arr.Append(value.TableValue(t))
		parent.Set(last, value.ArrayValue(arr))
		return t, nil
	}
	if existing.Kind() == value.ArrayKind && !existing.Array().IsArrayOfTables() {
		return nil, tomlerr.NewPath(tomlerr.ExtendedInlineArray, pos, dottedPath(segs),
			"%q is an inline array and cannot be extended", last)
	}
	if existing.Kind() != value.ArrayKind || !existing.Array().IsArrayOfTables() {
		return nil, tomlerr.NewPath(tomlerr.TypeConflict, pos, dottedPath(segs),
			"%q is already defined and is not an array of tables", last)
	}
	arr := existing.Array()
	t := value.NewTable()
	arr.Append(value.TableValue(t))
	return t, nil
}
