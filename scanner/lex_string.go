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
	"strings"
	"unicode/utf8"

	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

// ScanString recognizes any of the four TOML string forms starting at
// the cursor (spec.md §4.2) and returns the decoded value.Value.
func (s *Scanner) ScanString() (value.Value, error) {
	var str string
	var err error
	switch s.ch {
	case '"':
		str, err = s.ScanBasicString(false)
	case '\'':
		str, err = s.ScanLiteralString(false)
	default:
		return value.Value{}, s.errorf(tomlerr.UnexpectedCharacter, "expected a string")
	}
	if err != nil {
		return value.Value{}, err
	}
	return value.NewString(str), nil
}

// ScanBasicString recognizes a basic "…" or multiline """…""" string and
// returns its decoded content. If forKey is true, a multiline opening
// delimiter is a lexical error (quoted keys are single-line only,
// spec.md §4.2).
func (s *Scanner) ScanBasicString(forKey bool) (string, error) {
	start := s.offset
	multiline := s.Peek(1) == '"' && s.Peek(2) == '"'
	if multiline && forKey {
		return "", s.errorf(tomlerr.UnexpectedCharacter, "multiline strings cannot be used as keys")
	}
	if multiline {
		s.Advance(3)
		s.trimLeadingNewline()
	} else {
		s.next()
	}

	var sb strings.Builder
	spanStart := s.offset
	for {
		switch {
		case s.ch < 0:
			return "", s.errorfAt(start, tomlerr.UnterminatedString, "string literal not terminated")

		case s.ch == '"':
			if !multiline {
				sb.Write(s.src[spanStart:s.offset])
				s.next()
				return sb.String(), nil
			}
			quoteStart := s.offset
			if done, content, ok := s.closeTripleQuote('"'); ok {
				sb.Write(s.src[spanStart:quoteStart])
				sb.WriteString(content)
				if done {
					return sb.String(), nil
				}
				spanStart = s.offset
				continue
			}
			s.next()

		case s.ch == '\n':
			if !multiline {
				return "", s.errorfAt(start, tomlerr.UnterminatedString, "string literal not terminated")
			}
			s.next()

		case s.ch == '\r':
			if multiline && s.Peek(1) == '\n' {
				s.next()
				continue
			}
			return "", s.errorf(tomlerr.ControlCharacter, "bare CR is not allowed in a string")

		case s.ch == '\\':
			if multiline {
				if n, ok := s.lineContinuationLength(); ok {
					sb.Write(s.src[spanStart:s.offset])
					s.Advance(n)
					s.skipLineContinuationWhitespace()
					spanStart = s.offset
					continue
				}
			}
			sb.Write(s.src[spanStart:s.offset])
			r, err := s.scanEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
			spanStart = s.offset

		case s.ch < 0x20 && s.ch != '\t', s.ch == 0x7f:
			return "", s.errorf(tomlerr.ControlCharacter, "control character U+%04X is not allowed in a string", s.ch)

		default:
			s.next()
		}
	}
}

// ScanLiteralString recognizes a literal '…' or multiline '''…''' string;
// no escapes are processed. If forKey is true, a multiline opening
// delimiter is a lexical error.
func (s *Scanner) ScanLiteralString(forKey bool) (string, error) {
	start := s.offset
	multiline := s.Peek(1) == '\'' && s.Peek(2) == '\''
	if multiline && forKey {
		return "", s.errorf(tomlerr.UnexpectedCharacter, "multiline strings cannot be used as keys")
	}
	if multiline {
		s.Advance(3)
		s.trimLeadingNewline()
	} else {
		s.next()
	}

	spanStart := s.offset
	var sb strings.Builder
	for {
		switch {
		case s.ch < 0:
			return "", s.errorfAt(start, tomlerr.UnterminatedString, "string literal not terminated")

		case s.ch == '\'':
			if !multiline {
				sb.Write(s.src[spanStart:s.offset])
				s.next()
				return sb.String(), nil
			}
			quoteStart := s.offset
			if done, content, ok := s.closeTripleQuote('\''); ok {
				sb.Write(s.src[spanStart:quoteStart])
				sb.WriteString(content)
				if done {
					return sb.String(), nil
				}
				spanStart = s.offset
				continue
			}
			s.next()

		case s.ch == '\n':
			if !multiline {
				return "", s.errorfAt(start, tomlerr.UnterminatedString, "string literal not terminated")
			}
			s.next()

		case s.ch == '\r':
			if multiline && s.Peek(1) == '\n' {
				s.next()
				continue
			}
			return "", s.errorf(tomlerr.ControlCharacter, "bare CR is not allowed in a string")

		case s.ch < 0x20 && s.ch != '\t', s.ch == 0x7f:
			return "", s.errorf(tomlerr.ControlCharacter, "control character U+%04X is not allowed in a string", s.ch)

		default:
			s.next()
		}
	}
}

// trimLeadingNewline implements "an immediately-following newline is
// trimmed" for the opening delimiter of a multiline string (spec.md §4.2).
func (s *Scanner) trimLeadingNewline() {
	if s.ch == '\r' && s.Peek(1) == '\n' {
		s.next()
		s.next()
	} else if s.ch == '\n' {
		s.next()
	}
}

// closeTripleQuote is called with s.ch == quote while scanning a
// multiline string. It implements "up to two trailing quotes before the
// terminator are content": it looks at the full run of consecutive quote
// bytes starting here. A run shorter than 3 is entirely content; a run
// of 3-5 ends the string, treating any bytes before the final 3 as
// content. ok is false if the quote at the cursor turned out not to
// start a run at all (never happens in practice since the caller only
// calls this when s.ch==quote, but kept for symmetry).
func (s *Scanner) closeTripleQuote(quote rune) (done bool, content string, ok bool) {
	n := 0
	for s.Peek(n) == quote {
		n++
	}
	if n < 3 {
		content = strings.Repeat(string(quote), n)
		s.Advance(n)
		return false, content, true
	}
	extra := n - 3
	if extra > 2 {
		extra = 2 // only two trailing quotes may be content; scan the rest as a fresh run
	}
	content = strings.Repeat(string(quote), extra)
	s.Advance(extra + 3)
	return true, content, true
}

// lineContinuationLength reports whether the cursor is at a multiline
// basic string's line-ending backslash (escape, optional spaces/tabs,
// then a newline) and if so how many bytes the backslash-to-newline-start
// span occupies (the backslash itself; the newline is trimmed separately).
func (s *Scanner) lineContinuationLength() (int, bool) {
	k := 1
	for {
		c := s.Peek(k)
		if c == ' ' || c == '\t' {
			k++
			continue
		}
		break
	}
	c := s.Peek(k)
	if c == '\n' || (c == '\r' && s.Peek(k+1) == '\n') {
		return 1, true
	}
	return 0, false
}

// skipLineContinuationWhitespace consumes the run of spaces, tabs, and
// newlines following a line-ending backslash, per spec.md §4.2.
func (s *Scanner) skipLineContinuationWhitespace() {
	for {
		switch {
		case s.ch == ' ' || s.ch == '\t':
			s.next()
		case s.ch == '\n':
			s.next()
		case s.ch == '\r' && s.Peek(1) == '\n':
			s.next()
			s.next()
		default:
			return
		}
	}
}

// scanEscape decodes one backslash escape sequence (the backslash itself
// must still be the current character) and returns the rune it denotes.
func (s *Scanner) scanEscape() (rune, error) {
	offs := s.offset
	s.next() // consume '\'
	switch s.ch {
	case 'b':
		s.next()
		return '\b', nil
	case 't':
		s.next()
		return '\t', nil
	case 'n':
		s.next()
		return '\n', nil
	case 'f':
		s.next()
		return '\f', nil
	case 'r':
		s.next()
		return '\r', nil
	case '"':
		s.next()
		return '"', nil
	case '\\':
		s.next()
		return '\\', nil
	case 'u':
		return s.scanUnicodeEscape(offs, 4)
	case 'U':
		return s.scanUnicodeEscape(offs, 8)
	}
	msg := "unknown escape sequence"
	if s.ch < 0 {
		msg = "escape sequence not terminated"
	}
	return 0, s.errorfAt(offs, tomlerr.InvalidEscape, msg)
}

func (s *Scanner) scanUnicodeEscape(offs int, n int) (rune, error) {
	s.next() // consume 'u' or 'U'
	var x uint32
	for i := 0; i < n; i++ {
		d := hexVal(s.ch)
		if d < 0 {
			msg := "invalid unicode escape sequence"
			if s.ch < 0 {
				msg = "escape sequence not terminated"
			}
			return 0, s.errorfAt(offs, tomlerr.InvalidUnicodeEscape, msg)
		}
		x = x*16 + uint32(d)
		s.next()
	}
	if x > utf8.MaxRune || (0xD800 <= x && x < 0xE000) {
		return 0, s.errorfAt(offs, tomlerr.InvalidUnicodeEscape, "escape sequence is not a valid Unicode scalar value")
	}
	return rune(x), nil
}

func hexVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}
