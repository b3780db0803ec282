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
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

func get(t *testing.T, tbl *value.Table, path ...string) value.Value {
	t.Helper()
	for i, seg := range path {
		v, ok := tbl.Get(seg)
		if !ok {
			t.Fatalf("path %v: %q not found", path, seg)
		}
		if i == len(path)-1 {
			return v
		}
		tbl = v.Table()
	}
	panic("unreachable")
}

func TestDecodeSimpleKeyValues(t *testing.T) {
	root, err := Decode([]byte("name = \"tom\"\nage = 30\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(get(t, root, "name").String(), "tom"))
	qt.Assert(t, qt.Equals(get(t, root, "age").Integer(), int64(30)))
}

// S3 from spec.md: a dotted key builds nested implicit tables, and a later
// [header] deeper still is legal, it never touches the sealed leaf.
func TestDottedKeyBuildsNestedTables(t *testing.T) {
	root, err := Decode([]byte("a.b.c = 42\n[a.b.d]\ne = 1\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(get(t, root, "a", "b", "c").Integer(), int64(42)))
	qt.Assert(t, qt.Equals(get(t, root, "a", "b", "d", "e").Integer(), int64(1)))
}

// Mirrors the toml.io "[fruit.physical]" then "[fruit]" example: a table
// only ever walked through as an ancestor stays promotable.
func TestHeaderMayPromoteAnAncestorTableLater(t *testing.T) {
	root, err := Decode([]byte("[fruit.physical]\ncolor = \"red\"\n[fruit]\nname = \"apple\"\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(get(t, root, "fruit", "physical", "color").String(), "red"))
	qt.Assert(t, qt.Equals(get(t, root, "fruit", "name").String(), "apple"))
}

// A table whose exact path was the direct target of a dotted-key write
// cannot later be reopened with [header] (real TOML forbids this).
func TestHeaderCannotReopenADirectlyWrittenKey(t *testing.T) {
	_, err := Decode([]byte("a.b = 1\n[a]\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.RedefinedTable)))
}

func TestRedefiningAnExplicitTableIsAnError(t *testing.T) {
	_, err := Decode([]byte("[a]\nb = 1\n[a]\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.RedefinedTable)))
}

func TestDuplicateKeyInSameTable(t *testing.T) {
	_, err := Decode([]byte("a = 1\na = 2\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.DuplicateKey)))
}

func TestArrayOfTablesAppendsElements(t *testing.T) {
	root, err := Decode([]byte("[[fruits]]\nname = \"apple\"\n[[fruits]]\nname = \"banana\"\n"))
	qt.Assert(t, qt.IsNil(err))
	v := get(t, root, "fruits")
	qt.Assert(t, qt.Equals(v.Array().Len(), 2))
	qt.Assert(t, qt.Equals(v.Array().At(0).Table().Keys()[0], "name"))
	first, _ := v.Array().At(0).Table().Get("name")
	qt.Assert(t, qt.Equals(first.String(), "apple"))
	second, _ := v.Array().At(1).Table().Get("name")
	qt.Assert(t, qt.Equals(second.String(), "banana"))
}

func TestArrayOfTablesWithNestedSubtable(t *testing.T) {
	root, err := Decode([]byte("[[fruits]]\nname = \"apple\"\n[fruits.physical]\ncolor = \"red\"\n[[fruits]]\nname = \"banana\"\n"))
	qt.Assert(t, qt.IsNil(err))
	v := get(t, root, "fruits")
	qt.Assert(t, qt.Equals(v.Array().Len(), 2))
	color, _ := v.Array().At(0).Table().Get("physical")
	c, _ := color.Table().Get("color")
	qt.Assert(t, qt.Equals(c.String(), "red"))
}

func TestInlineTableCannotBeExtended(t *testing.T) {
	_, err := Decode([]byte("point = { x = 1, y = 2 }\n[point.z]\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.ExtendedInlineTable)))
}

func TestInlineTableSupportsDottedKeys(t *testing.T) {
	root, err := Decode([]byte("name = { first.given = \"Tom\", first.middle = \"A\" }\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(get(t, root, "name", "first", "given").String(), "Tom"))
	qt.Assert(t, qt.Equals(get(t, root, "name", "first", "middle").String(), "A"))
}

func TestInlineTableRejectsTrailingComma(t *testing.T) {
	_, err := Decode([]byte("t = { a = 1, }\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.UnexpectedCharacter)))
}

func TestArrayAllowsTrailingCommaAndMultiline(t *testing.T) {
	root, err := Decode([]byte("nums = [\n  1,\n  2, # two\n  3,\n]\n"))
	qt.Assert(t, qt.IsNil(err))
	v := get(t, root, "nums")
	qt.Assert(t, qt.Equals(v.Array().Len(), 3))
}

func TestTableIsValueError(t *testing.T) {
	_, err := Decode([]byte("a = 1\n[a.b]\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.TableIsValue)))
}

func TestValueIsTableError(t *testing.T) {
	_, err := Decode([]byte("a = { b = 1 }\na = 2\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.ValueIsTable)))
}

func TestExtendingAnInlineTableViaDottedKeyIsAnError(t *testing.T) {
	_, err := Decode([]byte("a = { b = 1 }\na.b.c = 2\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.ExtendedInlineTable)))
}

func TestTypeConflictArrayVsTable(t *testing.T) {
	_, err := Decode([]byte("[[a]]\nx = 1\n[a]\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.TypeConflict)))
}

func TestNestingTooDeep(t *testing.T) {
	_, err := Decode([]byte("a = [[[1]]]\n"), WithMaxDepth(2))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.NestingTooDeep)))
}

func TestWithMaxDepthAllowsDeeperNestingWhenRaised(t *testing.T) {
	_, err := Decode([]byte("a = [[[1]]]\n"), WithMaxDepth(10))
	qt.Assert(t, qt.IsNil(err))
}

func TestCommentsAndBlankLinesBetweenStatements(t *testing.T) {
	root, err := Decode([]byte("# leading comment\n\na = 1 # trailing\n\n# another\nb = 2\n"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(get(t, root, "a").Integer(), int64(1)))
	qt.Assert(t, qt.Equals(get(t, root, "b").Integer(), int64(2)))
}

func TestMissingNewlineAfterStatementIsAnError(t *testing.T) {
	_, err := Decode([]byte("a = 1 b = 2\n"))
	qt.Assert(t, qt.IsTrue(err != nil))
}

// WithFloatParser must actually be consulted by the scanner, not merely
// stored on the Parser (SPEC_FULL.md §C.1).
func TestWithFloatParserReplacesDefaultParsing(t *testing.T) {
	sentinel := 1234.5
	root, err := Decode([]byte("x = 3.14\n"), WithFloatParser(func(string) (float64, error) {
		return sentinel, nil
	}))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(get(t, root, "x").Float(), sentinel))
}

func TestWithFloatParserErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := Decode([]byte("x = 3.14\n"), WithFloatParser(func(string) (float64, error) {
		return 0, boom
	}))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.InvalidNumber)))
}

// Extending an inline array (rather than a table) must report the
// spec's dedicated ExtendedInlineArray kind, not a generic conflict.
func TestExtendingAnInlineArrayViaDottedKeyIsAnError(t *testing.T) {
	_, err := Decode([]byte("x = [1, 2]\nx.y = 3\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.ExtendedInlineArray)))
}

func TestExtendingAnInlineArrayViaArrayTableHeaderIsAnError(t *testing.T) {
	_, err := Decode([]byte("x = [1, 2]\n[[x]]\n"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.ExtendedInlineArray)))
}

func TestUnterminatedArrayReportsUnexpectedEOF(t *testing.T) {
	_, err := Decode([]byte("a = [1, 2"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.UnexpectedEOF)))
}

func TestUnterminatedInlineTableReportsUnexpectedEOF(t *testing.T) {
	_, err := Decode([]byte("a = { b = 1"))
	qt.Assert(t, qt.IsTrue(tomlerr.Is(err, tomlerr.UnexpectedEOF)))
}
