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

// Package value declares the typed tree produced by the decoder and
// consumed by the encoder: a tagged union of TOML's scalar, array and
// table forms. There are two main classes of node: scalars, which hold a
// single typed Go value, and containers (Table, Array), which hold
// further Values plus the bookkeeping flags the tree builder needs to
// enforce TOML's table/array sealing rules.
package value

import "time"

// Kind identifies which variant a Value holds.
type Kind int

const (
	InvalidKind Kind = iota
	StringKind
	IntegerKind
	FloatKind
	BooleanKind
	OffsetDateTimeKind
	LocalDateTimeKind
	LocalDateKind
	LocalTimeKind
	ArrayKind
	TableKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntegerKind:
		return "integer"
	case FloatKind:
		return "float"
	case BooleanKind:
		return "boolean"
	case OffsetDateTimeKind:
		return "offset-datetime"
	case LocalDateTimeKind:
		return "local-datetime"
	case LocalDateKind:
		return "local-date"
	case LocalTimeKind:
		return "local-time"
	case ArrayKind:
		return "array"
	case TableKind:
		return "table"
	}
	return "invalid"
}

// A Value is a single node in the decoded tree. Exactly one of the
// payload fields is meaningful, as selected by Kind; String/Integer/
// Float/Boolean/datetime variants are scalars, Array and Table are
// containers reachable through their own methods.
//
// The zero Value is InvalidKind and is never produced by the decoder.
type Value struct {
	kind Kind

	str  string
	i64  int64
	f64  float64
	b    bool
	dt   DateTime
	arr  *Array
	tbl  *Table
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// String returns the payload of a String value. Panics if v is not a String.
func (v Value) String() string {
	v.mustBe(StringKind)
	return v.str
}

// Integer returns the payload of an Integer value. Panics if v is not an Integer.
func (v Value) Integer() int64 {
	v.mustBe(IntegerKind)
	return v.i64
}

// Float returns the payload of a Float value. Panics if v is not a Float.
func (v Value) Float() float64 {
	v.mustBe(FloatKind)
	return v.f64
}

// Boolean returns the payload of a Boolean value. Panics if v is not a Boolean.
func (v Value) Boolean() bool {
	v.mustBe(BooleanKind)
	return v.b
}

// DateTime returns the payload of any of the four datetime variants.
// Panics if v does not hold one of them.
func (v Value) DateTime() DateTime {
	switch v.kind {
	case OffsetDateTimeKind, LocalDateTimeKind, LocalDateKind, LocalTimeKind:
		return v.dt
	}
	panic("value: DateTime called on " + v.kind.String() + " value")
}

// Array returns the payload of an Array value. Panics if v is not an Array.
func (v Value) Array() *Array {
	v.mustBe(ArrayKind)
	return v.arr
}

// Table returns the payload of a Table value. Panics if v is not a Table.
func (v Value) Table() *Table {
	v.mustBe(TableKind)
	return v.tbl
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic("value: " + k.String() + " accessor called on " + v.kind.String() + " value")
	}
}

// Scalar constructors.

func NewString(s string) Value { return Value{kind: StringKind, str: s} }
func NewInteger(i int64) Value { return Value{kind: IntegerKind, i64: i} }
func NewFloat(f float64) Value { return Value{kind: FloatKind, f64: f} }
func NewBoolean(b bool) Value  { return Value{kind: BooleanKind, b: b} }

// ArrayValue and TableValue wrap an already-built container as a Value.
// They are named distinctly from Array's and Table's own NewArray/NewTable
// constructors (value/table.go) since Go does not allow overloading.
func ArrayValue(a *Array) Value { return Value{kind: ArrayKind, arr: a} }
func TableValue(t *Table) Value { return Value{kind: TableKind, tbl: t} }

func NewOffsetDateTime(dt DateTime) Value { return Value{kind: OffsetDateTimeKind, dt: dt} }
func NewLocalDateTime(dt DateTime) Value  { return Value{kind: LocalDateTimeKind, dt: dt} }
func NewLocalDate(dt DateTime) Value      { return Value{kind: LocalDateKind, dt: dt} }
func NewLocalTime(dt DateTime) Value      { return Value{kind: LocalTimeKind, dt: dt} }

// DateTime is the common payload of the four datetime variants (spec.md
// §3). Which fields are meaningful depends on the owning Value's Kind:
// LocalDate uses only Year/Month/Day; LocalTime uses only
// Hour/Minute/Second/Nanosecond; LocalDateTime uses both; OffsetDateTime
// additionally sets HasOffset and OffsetMinutes.
type DateTime struct {
	Year, Month, Day          int
	Hour, Minute, Second      int
	Nanosecond                int
	HasOffset                 bool
	OffsetMinutes             int // minutes east of UTC; 0 with HasOffset true means "Z"
}

// Time reconstructs dt as a time.Time in a fixed zone matching its offset
// (or UTC for forms with no offset). Nanosecond is used as stored; the
// scanner has already truncated, rather than rounded, any fractional
// digits beyond the ninth (spec.md §4.2's truncation rule).
func (dt DateTime) Time() time.Time {
	loc := time.UTC
	if dt.HasOffset && dt.OffsetMinutes != 0 {
		loc = time.FixedZone("", dt.OffsetMinutes*60)
	}
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, loc)
}
