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

// Package toml implements a decoder and encoder for TOML 1.0.0 documents
// (https://toml.io/en/v1.0.0), built from the source cursor, lexical
// recognizers, expression parser, statement parser and tree builder of
// the toml/scanner and toml/parser packages.
package toml

import (
	"io"
	"os"

	"github.com/tomldec/toml/parser"
	"github.com/tomldec/toml/tomlerr"
	"github.com/tomldec/toml/value"
)

// Option configures a Decode or Marshal call.
type Option func(*options)

type options struct {
	decode []parser.Option
	encode encodeOptions
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFloatParser installs a hook called with the raw float literal text
// (already stripped of underscores) in place of the default
// strconv.ParseFloat-based parser (SPEC_FULL.md §C.1). The hook returns a
// float64, and that is what the decoded Float value holds. Decode-only.
func WithFloatParser(parse func(string) (float64, error)) Option {
	return func(o *options) {
		o.decode = append(o.decode, parser.WithFloatParser(parse))
	}
}

// WithMaxDepth overrides the default combined array/inline-table nesting
// cap of 256 (spec.md §5); dotted-key and header path length is not
// counted against it. Decode-only.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.decode = append(o.decode, parser.WithMaxDepth(n))
	}
}

// KeyOrder selects how Marshal orders a table's entries.
type KeyOrder int

const (
	// Lexicographic sorts entries by key at every table level, giving a
	// deterministic byte-for-byte document regardless of construction
	// order (the default, matching the original fasttoml's dumps).
	Lexicographic KeyOrder = iota
	// KeepInsertionOrder emits entries in the order they were set on
	// each value.Table, matching the decoder's own insertion order for
	// a round-tripped document.
	KeepInsertionOrder
)

// WithKeyOrder overrides the default Lexicographic encode ordering.
// Encode-only.
func WithKeyOrder(order KeyOrder) Option {
	return func(o *options) { o.encode.keyOrder = order }
}

// Decode parses a complete TOML document and returns its root table
// (spec.md §6's loads). text must be valid UTF-8.
func Decode(text []byte, opts ...Option) (*value.Table, error) {
	o := buildOptions(opts)
	return parser.Decode(text, o.decode...)
}

// DecodeFile reads path and decodes it (spec.md §6's load). A missing
// file surfaces tomlerr.FileNotFound.
func DecodeFile(path string, opts ...Option) (*value.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tomlerr.NewIO(tomlerr.FileNotFound, "%s: no such file", path)
		}
		return nil, tomlerr.NewIO(tomlerr.IOError, "%s: %v", path, err)
	}
	return Decode(data, opts...)
}

// Marshal encodes root as a complete TOML document (spec.md §6's dumps).
func Marshal(root *value.Table, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	return encode(root, o.encode)
}

// EncodeFile encodes root and writes it to path, creating or truncating
// the file (spec.md §6's dump).
func EncodeFile(path string, root *value.Table, opts ...Option) error {
	data, err := Marshal(root, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return tomlerr.NewIO(tomlerr.IOError, "%s: %v", path, err)
	}
	return nil
}

// EncodeTo encodes root and writes it to w.
func EncodeTo(w io.Writer, root *value.Table, opts ...Option) error {
	data, err := Marshal(root, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
