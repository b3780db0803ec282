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

import (
	"math"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestScalarAccessorsPanicOnKindMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic calling Integer() on a String value")
		}
	}()
	NewString("x").Integer()
}

func TestScalarAccessors(t *testing.T) {
	qt.Assert(t, qt.Equals(NewString("hi").String(), "hi"))
	qt.Assert(t, qt.Equals(NewInteger(42).Integer(), int64(42)))
	qt.Assert(t, qt.Equals(NewFloat(1.5).Float(), 1.5))
	qt.Assert(t, qt.IsTrue(NewBoolean(true).Boolean()))
}

func TestTablePreservesInsertionOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Set("z", NewInteger(1))
	tbl.Set("a", NewInteger(2))
	tbl.Set("m", NewInteger(3))
	qt.Assert(t, qt.DeepEquals(tbl.Keys(), []string{"z", "a", "m"}))
}

func TestTableSetOverwritesWithoutReordering(t *testing.T) {
	tbl := NewTable()
	tbl.Set("a", NewInteger(1))
	tbl.Set("b", NewInteger(2))
	tbl.Set("a", NewInteger(99))
	qt.Assert(t, qt.DeepEquals(tbl.Keys(), []string{"a", "b"}))
	v, ok := tbl.Get("a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Integer(), int64(99)))
}

func TestArrayOfTablesLastTable(t *testing.T) {
	arr := NewArray()
	arr.SetIsArrayOfTables(true)
	first := NewTable()
	first.Set("n", NewInteger(1))
	second := NewTable()
	second.Set("n", NewInteger(2))
	arr.Append(TableValue(first))
	arr.Append(TableValue(second))

	last := arr.LastTable()
	v, _ := last.Get("n")
	qt.Assert(t, qt.Equals(v.Integer(), int64(2)))
}

func TestEqualIgnoresTableOrderButNotArrayOrder(t *testing.T) {
	t1 := NewTable()
	t1.Set("a", NewInteger(1))
	t1.Set("b", NewInteger(2))
	t2 := NewTable()
	t2.Set("b", NewInteger(2))
	t2.Set("a", NewInteger(1))
	qt.Assert(t, qt.IsTrue(TableValue(t1).Equal(TableValue(t2))))

	a1 := NewArray()
	a1.Append(NewInteger(1))
	a1.Append(NewInteger(2))
	a2 := NewArray()
	a2.Append(NewInteger(2))
	a2.Append(NewInteger(1))
	qt.Assert(t, qt.IsFalse(ArrayValue(a1).Equal(ArrayValue(a2))))
}

func TestEqualTreatsNaNAsEqualToNaN(t *testing.T) {
	qt.Assert(t, qt.IsTrue(NewFloat(math.NaN()).Equal(NewFloat(math.NaN()))))
}

func TestDateTimeTime(t *testing.T) {
	dt := DateTime{Year: 1979, Month: 5, Day: 27, Hour: 7, Minute: 32, Second: 0, HasOffset: true, OffsetMinutes: 0}
	tm := dt.Time()
	qt.Assert(t, qt.Equals(tm.Year(), 1979))
	qt.Assert(t, qt.Equals(tm.Hour(), 7))
}

func TestDateTimeWithOffset(t *testing.T) {
	dt := DateTime{Year: 2020, Month: 1, Day: 1, HasOffset: true, OffsetMinutes: -300}
	tm := dt.Time()
	_, offset := tm.Zone()
	qt.Assert(t, qt.Equals(offset, -300*60))
}
