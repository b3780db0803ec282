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

package tomlerr

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tomldec/toml/token"
)

func TestErrorFormatting(t *testing.T) {
	pos := token.Position{Offset: 12, Line: 2, Column: 5}
	err := Newf(UnterminatedString, pos, "string literal not terminated")
	qt.Assert(t, qt.Equals(err.Error(),
		"UnterminatedString: string literal not terminated (offset 12, line 2, column 5)"))
}

func TestErrorWithPath(t *testing.T) {
	pos := token.Position{Offset: 0, Line: 1, Column: 1}
	err := NewPath(RedefinedTable, pos, []string{"a", "b"}, "table %q is already defined", "a.b")
	qt.Assert(t, qt.IsTrue(strings.HasSuffix(err.Error(), "[path a.b]")))
}

func TestIOErrorHasNoPosition(t *testing.T) {
	err := NewIO(FileNotFound, "%s: no such file", "missing.toml")
	qt.Assert(t, qt.Equals(err.Error(), "FileNotFound: missing.toml: no such file"))
}

func TestIs(t *testing.T) {
	var err error = Newf(DuplicateKey, token.Position{Line: 1}, "oops")
	qt.Assert(t, qt.IsTrue(Is(err, DuplicateKey)))
	qt.Assert(t, qt.IsFalse(Is(err, RedefinedTable)))
	qt.Assert(t, qt.IsFalse(Is(nil, DuplicateKey)))
}

func TestKindStringCoversEveryKind(t *testing.T) {
	for k := UnexpectedCharacter; k <= IOError; k++ {
		qt.Assert(t, qt.Not(qt.Equals(k.String(), "Unknown")))
	}
}
