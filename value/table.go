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

package value

// Table is an ordered key→Value mapping. Insertion order is preserved so
// the encoder can emit a stable document (spec.md §3); equality for the
// purposes of the decoder's invariants ignores order.
//
// The three unexported flags mirror spec.md §3's "hidden bookkeeping":
// only the tree builder (package parser) ever sets them; everything else
// treats a Table as a read-only ordered map.
type Table struct {
	keys   []string
	values map[string]Value

	explicit bool // opened by a [header] line
	closed   bool // sealed against being reopened by a later [header]
	inline   bool // created by an inline-table literal
}

// NewTable returns an empty, implicit, open, non-inline Table.
func NewTable() *Table {
	return &Table{values: make(map[string]Value)}
}

// Len reports the number of direct entries.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the entry keys in insertion order. The caller must not
// mutate the returned slice.
func (t *Table) Keys() []string { return t.keys }

// Get returns the value stored at key and whether it was present.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Set inserts or overwrites the value at key, appending it to the key
// order on first insertion. Callers outside package parser should treat
// a decoded Table as immutable; Set exists for the tree builder and for
// programmatic tree construction ahead of Marshal.
func (t *Table) Set(key string, v Value) {
	if t.values == nil {
		t.values = make(map[string]Value)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Explicit reports whether this table was opened by a [header] statement.
func (t *Table) Explicit() bool { return t.explicit }

// SetExplicit marks the table as opened by a [header] statement.
func (t *Table) SetExplicit(v bool) { t.explicit = v }

// Closed reports whether a later [header] naming this table is rejected.
// The tree builder does not consult it for dotted-key statements, which
// may still add keys to a closed table.
func (t *Table) Closed() bool { return t.closed }

// SetClosed seals or unseals the table against being reopened by a [header].
func (t *Table) SetClosed(v bool) { t.closed = v }

// Inline reports whether this table was created by an inline-table
// literal ({...}), and is therefore permanently immutable from outside.
func (t *Table) Inline() bool { return t.inline }

// SetInline marks the table as having been created by an inline-table literal.
func (t *Table) SetInline(v bool) { t.inline = v }

// Array is an ordered sequence of Values. Per spec.md §3, it carries two
// flags: Inline (created as a [...] literal, permanently immutable) and
// IsArrayOfTables (opened/extended by [[header]] statements).
type Array struct {
	elems []Value

	inline          bool
	isArrayOfTables bool
}

// NewArray returns an empty Array.
func NewArray() *Array { return &Array{} }

// Len reports the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element at index i.
func (a *Array) At(i int) Value { return a.elems[i] }

// Elements returns the elements in order. The caller must not mutate the
// returned slice.
func (a *Array) Elements() []Value { return a.elems }

// Append adds v as the last element.
func (a *Array) Append(v Value) { a.elems = append(a.elems, v) }

// Inline reports whether this array was created by an inline [...] literal.
func (a *Array) Inline() bool { return a.inline }

// SetInline marks the array as having been created by an inline [...] literal.
func (a *Array) SetInline(v bool) { a.inline = v }

// IsArrayOfTables reports whether this array was opened by [[header]].
func (a *Array) IsArrayOfTables() bool { return a.isArrayOfTables }

// SetIsArrayOfTables marks the array as an array-of-tables.
func (a *Array) SetIsArrayOfTables(v bool) { a.isArrayOfTables = v }

// LastTable returns the Table of the last element, which must itself be
// a Table (true for every array-of-tables element). It panics otherwise;
// callers (the tree builder) only call this on arrays already known to
// be array-of-tables with at least one element.
func (a *Array) LastTable() *Table {
	return a.elems[len(a.elems)-1].Table()
}
