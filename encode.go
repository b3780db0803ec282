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

package toml

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomldec/toml/token"
	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

// tomlZeroPos is used for encoder errors, which have no source position
// to report (the error arises from the in-memory tree, not parsed text).
var tomlZeroPos token.Position

// encodeOptions holds the encoder-only knobs split out of Option.
type encodeOptions struct {
	keyOrder KeyOrder
}

// encoder walks a value.Table and emits the TOML document of spec.md
// §4.6: scalars first, then sub-tables as [prefix.k] blocks, then
// array-of-tables as repeated [[prefix.k]] blocks, each recursively.
// This module's Value model always holds proper datetime variants (never
// string-shaped dates per spec.md §9's design note), so the §4.7
// string-heuristic has nothing to detect and is not implemented.
type encoder struct {
	opts encodeOptions
	buf  strings.Builder
}

func encode(root *value.Table, opts encodeOptions) ([]byte, error) {
	e := &encoder{opts: opts}
	if err := e.writeTableBody(root, nil); err != nil {
		return nil, err
	}
	return []byte(e.buf.String()), nil
}

// orderedKeys returns t's keys in the order this encoder should visit
// them, honoring opts.keyOrder.
func (e *encoder) orderedKeys(t *value.Table) []string {
	keys := append([]string(nil), t.Keys()...)
	if e.opts.keyOrder == KeepInsertionOrder {
		return keys
	}
	sort.Strings(keys)
	return keys
}

// writeTableBody emits one table's scalars, then its sub-tables as
// [path] headers, then its array-of-tables as repeated [[path]] headers,
// each recursively (spec.md §4.6).
func (e *encoder) writeTableBody(t *value.Table, path []string) error {
	var scalarKeys, tableKeys, arrayTableKeys []string
	for _, k := range e.orderedKeys(t) {
		if k == "" {
			return tomlerr.NewPath(tomlerr.EmptyKey, tomlZeroPos, appendPath(path, k), "a table key must not be empty")
		}
		v, _ := t.Get(k)
		switch {
		case v.Kind() == value.TableKind:
			tableKeys = append(tableKeys, k)
		case v.Kind() == value.ArrayKind && isArrayOfTables(v.Array()):
			arrayTableKeys = append(arrayTableKeys, k)
		default:
			scalarKeys = append(scalarKeys, k)
		}
	}

	for _, k := range scalarKeys {
		v, _ := t.Get(k)
		formatted, err := e.formatValue(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(&e.buf, "%s = %s\n", formatKey(k), formatted)
	}
	for _, k := range tableKeys {
		v, _ := t.Get(k)
		sub := appendPath(path, k)
		fmt.Fprintf(&e.buf, "[%s]\n", formatPath(sub))
		if err := e.writeTableBody(v.Table(), sub); err != nil {
			return err
		}
	}
	for _, k := range arrayTableKeys {
		v, _ := t.Get(k)
		sub := appendPath(path, k)
		for _, elem := range v.Array().Elements() {
			fmt.Fprintf(&e.buf, "[[%s]]\n", formatPath(sub))
			if err := e.writeTableBody(elem.Table(), sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// isArrayOfTables reports whether arr should be emitted as [[header]]
// blocks: non-empty and every element a Table (spec.md §4.6 step 1 — "a
// mixed array, or an array of non-table values, is a scalar here").
func isArrayOfTables(arr *value.Array) bool {
	if arr.Len() == 0 {
		return false
	}
	for _, el := range arr.Elements() {
		if el.Kind() != value.TableKind {
			return false
		}
	}
	return true
}

// appendPath returns path+k as a freshly allocated slice so that sibling
// calls in the same loop (tableKeys, arrayTableKeys) never alias and
// overwrite each other's last element.
func appendPath(path []string, k string) []string {
	sub := make([]string, len(path)+1)
	copy(sub, path)
	sub[len(path)] = k
	return sub
}

func formatPath(segs []string) string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = formatKey(s)
	}
	return strings.Join(out, ".")
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

func formatKey(k string) string {
	if isBareKey(k) {
		return k
	}
	return `"` + escapeBasicString(k) + `"`
}

// escapeBasicString implements spec.md §4.6's string formatting rule:
// backslash, double quote, and the common control-character shorthands
// get two-character escapes; any other control byte gets \u00XX.
func escapeBasicString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// formatValue formats a single value (scalar, inline array, or inline
// table) for use as a key's right-hand side or as an array/inline-table
// element.
func (e *encoder) formatValue(v value.Value) (string, error) {
	switch v.Kind() {
	case value.StringKind:
		return `"` + escapeBasicString(v.String()) + `"`, nil
	case value.IntegerKind:
		return strconv.FormatInt(v.Integer(), 10), nil
	case value.FloatKind:
		return formatFloat(v.Float()), nil
	case value.BooleanKind:
		if v.Boolean() {
			return "true", nil
		}
		return "false", nil
	case value.OffsetDateTimeKind, value.LocalDateTimeKind, value.LocalDateKind, value.LocalTimeKind:
		return formatDateTime(v), nil
	case value.ArrayKind:
		return e.formatArray(v.Array())
	case value.TableKind:
		return e.formatInlineTable(v.Table())
	}
	return "", tomlerr.Newf(tomlerr.TypeConflict, tomlZeroPos, "cannot encode a value of kind %s", v.Kind())
}

func (e *encoder) formatArray(arr *value.Array) (string, error) {
	parts := make([]string, arr.Len())
	for i, el := range arr.Elements() {
		s, err := e.formatValue(el)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func (e *encoder) formatInlineTable(t *value.Table) (string, error) {
	keys := e.orderedKeys(t)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			return "", tomlerr.NewPath(tomlerr.EmptyKey, tomlZeroPos, nil, "a table key must not be empty")
		}
		v, _ := t.Get(k)
		formatted, err := e.formatValue(v)
		if err != nil {
			return "", err
		}
		parts = append(parts, formatKey(k)+" = "+formatted)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

// formatFloat implements spec.md §4.6: inf/-inf/nan as bare literals,
// finite values with enough precision to round-trip, sign of zero
// preserved (Go's 'g' formatter with -1 precision already does both —
// strconv.FormatFloat(-0.0, ...) yields "-0").
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// A bare integer-looking float ("-0", "1") must keep a decimal point
	// or exponent to round-trip as a TOML float rather than an integer.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatDateTime(v value.Value) string {
	dt := v.DateTime()
	switch v.Kind() {
	case value.LocalDateKind:
		return fmt.Sprintf("%04d-%02d-%02d", dt.Year, dt.Month, dt.Day)
	case value.LocalTimeKind:
		return formatTimeOfDay(dt)
	}
	s := fmt.Sprintf("%04d-%02d-%02dT%s", dt.Year, dt.Month, dt.Day, formatTimeOfDay(dt))
	if v.Kind() == value.OffsetDateTimeKind {
		if dt.OffsetMinutes == 0 {
			s += "Z"
		} else {
			sign := "+"
			m := dt.OffsetMinutes
			if m < 0 {
				sign = "-"
				m = -m
			}
			s += fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
		}
	}
	return s
}

func formatTimeOfDay(dt value.DateTime) string {
	s := fmt.Sprintf("%02d:%02d:%02d", dt.Hour, dt.Minute, dt.Second)
	if dt.Nanosecond != 0 {
		frac := fmt.Sprintf("%09d", dt.Nanosecond)
		frac = strings.TrimRight(frac, "0")
		s += "." + frac
	}
	return s
}
