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

// AtKeyStart reports whether the cursor could begin a key: a bare-key
// byte, or an opening quote for a quoted key.
func (s *Scanner) AtKeyStart() bool {
	return isBareKeyByte(s.ch) || s.ch == '"' || s.ch == '\''
}

// ScanBareKey consumes a run of [A-Za-z0-9_-] bytes. The caller has
// already confirmed isBareKeyByte(s.ch) via AtKeyStart.
func (s *Scanner) ScanBareKey() string {
	start := s.offset
	for isBareKeyByte(s.ch) {
		s.next()
	}
	return string(s.src[start:s.offset])
}

// ScanKey consumes one dotted-key segment: a bare key, or a single-line
// basic/literal quoted key (spec.md §4.2). It does not consume
// surrounding whitespace or the '.' separators between segments; the
// caller (the statement/expression parser) drives ScanKey once per
// segment.
func (s *Scanner) ScanKey() (string, error) {
	switch {
	case isBareKeyByte(s.ch):
		return s.ScanBareKey(), nil
	case s.ch == '"':
		return s.ScanBasicString(true)
	case s.ch == '\'':
		return s.ScanLiteralString(true)
	}
	return "", s.errorf(tomlerr.UnexpectedCharacter, "expected a key, got %s", describeRune(s.ch))
}

func describeRune(ch rune) string {
	if ch == eof {
		return "end of input"
	}
	return "character " + string(rune(ch))
}
