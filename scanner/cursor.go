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

// Package scanner implements the source cursor and lexical recognizers for
// TOML 1.0.0 documents (spec.md §4.1, §4.2). A Scanner owns a byte slice
// and a read position; its recognizer methods each consume one lexical
// form from the current position and return a decoded value.Value or a
// typed error. None of them builds the table tree — that is package
// parser's job.
package scanner

import (
	"unicode/utf8"

	"github.com/tomldec/toml/token"
	"github.com/tomldec/toml/tomlerr"
)

// Scanner is a byte-oriented cursor over a TOML document. It is not
// safe for concurrent use; each decode owns its own Scanner.
type Scanner struct {
	src  []byte
	file *token.File

	offset   int  // offset of ch
	rdOffset int  // offset of the byte after ch
	ch       rune // current byte/rune; -1 at EOF

	parseFloat func(string) (float64, error) // nil selects the strconv-based default
}

// Init prepares s to scan src from the beginning.
func Init(src []byte) *Scanner {
	s := &Scanner{src: src, file: token.NewFile(src)}
	s.rdOffset = 0
	s.next()
	return s
}

// SetFloatParser installs parse as the hook ScanNumberOrDateTime uses to
// turn a float literal's text into a float64, in place of the built-in
// strconv.ParseFloat (SPEC_FULL.md §C.1). A nil parse restores the default.
func (s *Scanner) SetFloatParser(parse func(string) (float64, error)) {
	s.parseFloat = parse
}

const eof = -1

// next advances the cursor by one byte. TOML is scanned byte-wise per
// spec.md §4.1: multi-byte UTF-8 sequences are validated only where the
// grammar mandates it (inside strings) and otherwise passed through
// untouched, so next() does not decode runes — it exposes raw bytes,
// with values above ASCII surfaced as their byte value rather than a
// decoded code point. Decoding into actual runes happens in the string
// recognizers, which must validate UTF-8 explicitly.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = rune(s.src[s.rdOffset])
		s.rdOffset++
		return
	}
	s.offset = len(s.src)
	s.ch = eof
}

// Offset returns the byte offset of the cursor.
func (s *Scanner) Offset() int { return s.offset }

// AtEOF reports whether the cursor is at the end of the document.
func (s *Scanner) AtEOF() bool { return s.ch == eof }

// Position returns the human-readable position of the cursor.
func (s *Scanner) Position() token.Position { return s.file.Position(s.offset) }

// PositionAt returns the human-readable position of an earlier offset.
func (s *Scanner) PositionAt(offset int) token.Position { return s.file.Position(offset) }

// Peek returns the byte k positions ahead of the cursor without
// consuming anything (Peek(0) is the current byte). Returns eof past the
// end of the document.
func (s *Scanner) Peek(k int) rune {
	idx := s.offset + k
	if idx < 0 || idx >= len(s.src) {
		return eof
	}
	return rune(s.src[idx])
}

// Advance consumes n bytes.
func (s *Scanner) Advance(n int) {
	for i := 0; i < n; i++ {
		s.next()
	}
}

// Match consumes and returns true if the upcoming bytes equal literal;
// otherwise it consumes nothing and returns false.
func (s *Scanner) Match(literal string) bool {
	if s.offset+len(literal) > len(s.src) {
		return false
	}
	if string(s.src[s.offset:s.offset+len(literal)]) != literal {
		return false
	}
	s.Advance(len(literal))
	return true
}

// errorf builds a positioned *tomlerr.Error at the cursor's current offset.
func (s *Scanner) errorf(kind tomlerr.Kind, format string, args ...any) *tomlerr.Error {
	return tomlerr.Newf(kind, s.Position(), format, args...)
}

func (s *Scanner) errorfAt(offset int, kind tomlerr.Kind, format string, args ...any) *tomlerr.Error {
	return tomlerr.Newf(kind, s.PositionAt(offset), format, args...)
}

// ValidateUTF8 reports an InvalidUtf8 error if src is not valid UTF-8;
// called once up front by the parser (spec.md §6).
func ValidateUTF8(src []byte) error {
	if utf8.Valid(src) {
		return nil
	}
	// Find the first offending byte for a precise error location.
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			f := token.NewFile(src)
			for j := 0; j < i; j++ {
				if src[j] == '\n' {
					f.AddLine(j + 1)
				}
			}
			return tomlerr.Newf(tomlerr.InvalidUtf8, f.Position(i), "invalid UTF-8 byte 0x%02x", src[i])
		}
		i += size
	}
	return nil
}

func isBareKeyByte(ch rune) bool {
	return ch >= '0' && ch <= '9' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= 'a' && ch <= 'z' ||
		ch == '_' || ch == '-'
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}
