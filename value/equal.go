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

import "math"

// Equal reports whether v and other are semantically equal per spec.md
// §3/§8: table key order is ignored, but array element order is
// significant. Two NaN floats compare equal to each other (their sign
// bit is explicitly unspecified by the spec), matching IEEE-754 NaN's
// usual semantic treatment in this domain rather than its bitwise one.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case StringKind:
		return v.str == other.str
	case IntegerKind:
		return v.i64 == other.i64
	case FloatKind:
		if math.IsNaN(v.f64) && math.IsNaN(other.f64) {
			return true
		}
		return v.f64 == other.f64
	case BooleanKind:
		return v.b == other.b
	case OffsetDateTimeKind, LocalDateTimeKind, LocalDateKind, LocalTimeKind:
		return v.dt == other.dt
	case ArrayKind:
		return v.arr.Equal(other.arr)
	case TableKind:
		return v.tbl.Equal(other.tbl)
	}
	return true // both InvalidKind
}

// Equal reports whether a and other hold the same elements in the same
// order.
func (a *Array) Equal(other *Array) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil || len(a.elems) != len(other.elems) {
		return false
	}
	for i, e := range a.elems {
		if !e.Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether t and other hold the same key/value pairs,
// irrespective of insertion order.
func (t *Table) Equal(other *Table) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || len(t.keys) != len(other.keys) {
		return false
	}
	for k, v := range t.values {
		ov, ok := other.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
