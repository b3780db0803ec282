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

package scanner

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

// ScanNumberOrDateTime recognizes an integer, float, or one of the four
// bare datetime/date/time forms, all of which begin with a digit, a
// leading sign, or the 'i'/'n' of inf/nan (spec.md §4.2, §4.3). The single-lookahead rule that
// tells numbers and datetimes apart ("four digits followed by '-', or
// two digits followed by ':'") lives here rather than in the expression
// parser, since it needs the same character classification helpers as
// the rest of the numeric scanning.
func (s *Scanner) ScanNumberOrDateTime() (value.Value, error) {
	start := s.offset
	sign := rune(0)
	if s.ch == '+' || s.ch == '-' {
		sign = s.ch
		s.next()
	}

	switch {
	case s.ch == 'i':
		return s.scanSpecialFloat(start, "inf", inf(sign))
	case s.ch == 'n':
		return s.scanSpecialFloat(start, "nan", nan(sign))
	case !isDigit(s.ch):
		return value.Value{}, s.errorfAt(start, tomlerr.InvalidNumber, "invalid number")
	}

	if sign == 0 && s.ch == '0' && (s.Peek(1) == 'x' || s.Peek(1) == 'o' || s.Peek(1) == 'b') {
		return s.scanRadixInteger(start)
	}

	if sign == 0 && s.looksLikeDateTime() {
		return s.scanDateTimeValue(start)
	}

	return s.scanDecimalNumber(start, sign)
}

func inf(sign rune) float64 {
	if sign == '-' {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// nan's sign bit is explicitly unspecified by spec.md §3; this module
// still honors a leading '-' in the source text so -nan round-trips
// through Marshal as -nan rather than silently becoming nan.
func nan(sign rune) float64 {
	n := math.NaN()
	if sign == '-' {
		return math.Copysign(n, -1)
	}
	return n
}

func (s *Scanner) scanSpecialFloat(start int, word string, f float64) (value.Value, error) {
	if !s.Match(word) {
		return value.Value{}, s.errorfAt(start, tomlerr.InvalidNumber, "invalid number")
	}
	return value.NewFloat(f), nil
}

// looksLikeDateTime implements spec.md §4.3's lookahead: four digits
// followed by '-', or two digits followed by ':'.
func (s *Scanner) looksLikeDateTime() bool {
	digitsAhead := func(n int) bool {
		for i := 0; i < n; i++ {
			if !isDigit(s.Peek(i)) {
				return false
			}
		}
		return true
	}
	if digitsAhead(4) && s.Peek(4) == '-' {
		return true
	}
	if digitsAhead(2) && s.Peek(2) == ':' {
		return true
	}
	return false
}

// scanDigitRun consumes a run of digits (per isDigitFn) with TOML's
// underscore-separator rule: '_' is legal only strictly between two
// digits, never leading, trailing, or doubled.
func (s *Scanner) scanDigitRun(isDigitFn func(rune) bool) (string, error) {
	start := s.offset
	if !isDigitFn(s.ch) {
		return "", s.errorf(tomlerr.InvalidNumber, "expected a digit")
	}
	s.next()
	for {
		if s.ch == '_' {
			if !isDigitFn(s.Peek(1)) {
				return "", s.errorf(tomlerr.InvalidNumber, "'_' in a number must be surrounded by digits")
			}
			s.next()
			s.next()
			continue
		}
		if isDigitFn(s.ch) {
			s.next()
			continue
		}
		break
	}
	return string(s.src[start:s.offset]), nil
}

func isOctDigit(ch rune) bool { return ch >= '0' && ch <= '7' }
func isBinDigit(ch rune) bool { return ch == '0' || ch == '1' }

func (s *Scanner) scanRadixInteger(start int) (value.Value, error) {
	s.next() // '0'
	radixCh := s.ch
	s.next() // 'x'/'o'/'b'

	var isDigitFn func(rune) bool
	var base int
	switch radixCh {
	case 'x':
		isDigitFn, base = isHexDigit, 16
	case 'o':
		isDigitFn, base = isOctDigit, 8
	case 'b':
		isDigitFn, base = isBinDigit, 2
	}

	digits, err := s.scanDigitRun(isDigitFn)
	if err != nil {
		return value.Value{}, err
	}
	clean := strings.ReplaceAll(digits, "_", "")
	u, err := strconv.ParseUint(clean, base, 63)
	if err != nil {
		return value.Value{}, s.errorfAt(start, tomlerr.IntegerOverflow, "integer literal out of 64-bit range")
	}
	return value.NewInteger(int64(u)), nil
}

// scanDecimalNumber scans a decimal integer or float, including the
// leading-zero restriction on the integer part (spec.md §4.2: "no
// leading zeros except the digit 0 itself").
func (s *Scanner) scanDecimalNumber(start int, sign rune) (value.Value, error) {
	intDigits, err := s.scanDigitRun(isDigit)
	if err != nil {
		return value.Value{}, err
	}
	if clean := strings.ReplaceAll(intDigits, "_", ""); len(clean) > 1 && clean[0] == '0' {
		return value.Value{}, s.errorfAt(start, tomlerr.InvalidNumber, "leading zeros are not allowed in a decimal number")
	}

	isFloat := false
	var fracDigits, expSign, expDigits string

	if s.ch == '.' {
		// A lone '.' could also start a range-like construct in other
		// grammars; in TOML a key/value's RHS never continues after a
		// value, so any '.' here belongs to this number.
		isFloat = true
		s.next()
		fracDigits, err = s.scanDigitRun(isDigit)
		if err != nil {
			return value.Value{}, err
		}
	}

	if s.ch == 'e' {
		isFloat = true
		s.next()
		if s.ch == '+' || s.ch == '-' {
			expSign = string(s.ch)
			s.next()
		}
		expDigits, err = s.scanDigitRun(isDigit)
		if err != nil {
			return value.Value{}, err
		}
	}

	if !isFloat {
		clean := strings.ReplaceAll(intDigits, "_", "")
		text := clean
		if sign == '-' {
			text = "-" + clean
		}
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return value.Value{}, s.errorfAt(start, tomlerr.IntegerOverflow, "integer literal out of 64-bit range")
		}
		return value.NewInteger(i), nil
	}

	var b strings.Builder
	if sign == '-' {
		b.WriteByte('-')
	}
	b.WriteString(strings.ReplaceAll(intDigits, "_", ""))
	if fracDigits != "" {
		b.WriteByte('.')
		b.WriteString(strings.ReplaceAll(fracDigits, "_", ""))
	}
	if expDigits != "" {
		b.WriteByte('e')
		b.WriteString(expSign)
		b.WriteString(strings.ReplaceAll(expDigits, "_", ""))
	}
	parseFloat := func(text string) (float64, error) { return strconv.ParseFloat(text, 64) }
	if s.parseFloat != nil {
		parseFloat = s.parseFloat
	}
	f, err := parseFloat(b.String())
	if err != nil {
		return value.Value{}, s.errorfAt(start, tomlerr.InvalidNumber, "malformed float literal")
	}
	return value.NewFloat(f), nil
}
