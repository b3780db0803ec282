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

// Package token tracks byte offsets within a decoded document and turns
// them into human-readable line/column positions.
package token

import (
	"fmt"
	"unicode/utf8"
)

// Position describes a location within a document: a byte offset plus the
// 1-based line and column a reader would count it at.
//
// Column counts Unicode scalar values, not bytes: a multi-byte UTF-8
// sequence advances the column by one, not by its encoded length.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number (runes), starting at 1
}

// IsValid reports whether the position is meaningful.
func (pos Position) IsValid() bool { return pos.Line > 0 }

func (pos Position) String() string {
	if !pos.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// File tracks the line-start offsets of a single in-memory document so
// that a byte offset can be turned into a Position without rescanning the
// document from the start each time.
//
// A File is built incrementally by the scanner as it consumes bytes: every
// time it crosses a '\n' it calls AddLine with the offset of the following
// byte. Offsets must be added in increasing order.
type File struct {
	src   []byte
	size  int
	lines []int // offset of the first byte of each line; lines[0] == 0
}

// NewFile returns a File over the given document bytes. src is retained
// only to turn byte offsets into rune-counted columns; it is not copied.
func NewFile(src []byte) *File {
	return &File{src: src, size: len(src), lines: []int{0}}
}

// AddLine records that a new line starts at offset. Calls with an offset
// that does not strictly increase over the previous call, or that are out
// of bounds, are ignored.
func (f *File) AddLine(offset int) {
	if n := len(f.lines); (n == 0 || f.lines[n-1] < offset) && offset < f.size {
		f.lines = append(f.lines, offset)
	}
}

// Position computes the Position for a byte offset, clamping it into
// [0, size] first.
func (f *File) Position(offset int) Position {
	switch {
	case offset < 0:
		offset = 0
	case offset > f.size:
		offset = f.size
	}
	i := searchLineStarts(f.lines, offset)
	lineStart := f.lines[i]
	column := 1
	if lineStart <= len(f.src) && offset <= len(f.src) {
		column += utf8.RuneCount(f.src[lineStart:offset])
	} else {
		column += offset - lineStart
	}
	return Position{
		Offset: offset,
		Line:   i + 1,
		Column: column,
	}
}

// searchLineStarts returns the index of the last entry of lines that is
// <= x; lines must be sorted increasing and non-empty.
func searchLineStarts(lines []int, x int) int {
	i, j := 0, len(lines)
	for i < j {
		h := i + (j-i)/2
		if lines[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}
