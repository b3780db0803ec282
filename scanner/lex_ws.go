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

import "github.com/tomldec/toml/tomlerr"

// SkipSpaces consumes a run of TOML whitespace (space and tab only;
// newlines are never whitespace in this grammar).
func (s *Scanner) SkipSpaces() {
	for s.ch == ' ' || s.ch == '\t' {
		s.next()
	}
}

// AtComment reports whether the cursor is positioned at a comment start.
func (s *Scanner) AtComment() bool { return s.ch == '#' }

// SkipComment consumes a '#' comment through (but not including) the
// terminating newline or EOF. Control characters other than tab are
// forbidden inside comments (spec.md §4.2).
func (s *Scanner) SkipComment() error {
	start := s.offset
	s.next() // consume '#'
	for s.ch != '\n' && s.ch != eof {
		if s.ch == '\r' {
			if s.Peek(1) == '\n' {
				break
			}
			return s.errorfAt(start, tomlerr.ControlCharacter, "bare CR is not allowed in a comment")
		}
		if s.ch >= 0 && s.ch < 0x20 && s.ch != '\t' || s.ch == 0x7f {
			return s.errorfAt(s.offset, tomlerr.ControlCharacter, "control character U+%04X in comment", s.ch)
		}
		s.next()
	}
	return nil
}

// ConsumeNewline consumes a "\n" or "\r\n" newline and returns true, or
// returns false without consuming anything if the cursor is not at a
// newline. A bare '\r' not followed by '\n' is a lexical error.
func (s *Scanner) ConsumeNewline() (bool, error) {
	switch s.ch {
	case '\n':
		s.next()
		return true, nil
	case '\r':
		if s.Peek(1) == '\n' {
			s.next()
			s.next()
			return true, nil
		}
		return false, s.errorf(tomlerr.ControlCharacter, "bare CR is not allowed outside of a string")
	}
	return false, nil
}

// SkipBlankLines consumes whitespace, comments, and newlines until it
// reaches EOF or a byte that starts a real statement (spec.md §4.4). It
// reports the first error encountered, e.g. a malformed comment.
func (s *Scanner) SkipBlankLines() error {
	for {
		s.SkipSpaces()
		if s.AtComment() {
			if err := s.SkipComment(); err != nil {
				return err
			}
			continue
		}
		ok, err := s.ConsumeNewline()
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		return nil
	}
}
