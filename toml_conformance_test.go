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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"

	"github.com/tomldec/toml/value"
)

// valueComparer lets go-cmp diff trees built from value.Value, whose
// payload fields are all unexported: the comparer short-circuits cmp's
// usual reflection-based walk and defers to the type's own Equal.
var valueComparer = cmp.Comparer(func(a, b value.Value) bool { return a.Equal(b) })

// TestDecodeEncodeDecodeRoundTripsTxtarFixtures loads testdata/roundtrip.txtar
// (in the same archive-of-files shape the teacher's own TOML fixtures use)
// and checks that decode -> encode -> decode reproduces the original tree,
// using go-cmp rather than Table.Equal so that a mismatch is reported with
// a readable diff instead of a bare boolean.
func TestDecodeEncodeDecodeRoundTripsTxtarFixtures(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/roundtrip.txtar")
	if err != nil {
		t.Fatalf("reading roundtrip.txtar: %v", err)
	}
	if len(archive.Files) == 0 {
		t.Fatal("roundtrip.txtar has no fixture files")
	}
	for _, f := range archive.Files {
		f := f
		t.Run(f.Name, func(t *testing.T) {
			root, err := Decode(f.Data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			out, err := Marshal(root)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			root2, err := Decode(out)
			if err != nil {
				t.Fatalf("re-Decode of marshaled output: %v\n%s", err, out)
			}
			diff := cmp.Diff(value.TableValue(root), value.TableValue(root2), valueComparer)
			if diff != "" {
				t.Errorf("round trip changed the tree (-want +got):\n%s", diff)
			}
		})
	}
}
