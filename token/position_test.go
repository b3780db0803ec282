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

package token

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestPositionASCII(t *testing.T) {
	src := []byte("abc\ndef\nghi")
	f := NewFile(src)
	f.AddLine(4) // offset of 'd'
	f.AddLine(8) // offset of 'g'

	pos := f.Position(5) // 'e'
	qt.Assert(t, qt.Equals(pos.Line, 2))
	qt.Assert(t, qt.Equals(pos.Column, 2))
	qt.Assert(t, qt.Equals(pos.Offset, 5))
}

func TestPositionCountsRunesNotBytes(t *testing.T) {
	// "héllo" — é is two UTF-8 bytes at offsets 1-2, but one column.
	src := []byte("héllo\nworld")
	f := NewFile(src)
	f.AddLine(7)

	lOffset := 3 // the 'l' right after "hé"
	_ = lOffset
	// byte layout: h(0) é(1,2) l(3) l(4) o(5) \n(6) w(7)...
	pos := f.Position(3) // first 'l'
	qt.Assert(t, qt.Equals(pos.Line, 1))
	qt.Assert(t, qt.Equals(pos.Column, 3)) // h, é, l -> column 3
}

func TestPositionZeroValueInvalid(t *testing.T) {
	var p Position
	qt.Assert(t, qt.IsFalse(p.IsValid()))
}
