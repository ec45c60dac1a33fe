// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import (
	"os"
	"testing"
)

// TestDecodeGoldenHelloWorld decodes the canonical "hello world" NBT
// fixture from testdata, generated once and checked in rather than
// built inline, so a wire-format regression shows up as a diff against
// a real file rather than against a byte literal in the test source.
func TestDecodeGoldenHelloWorld(t *testing.T) {
	raw, err := os.ReadFile("testdata/hello_world.nbt")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	root, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if root.Key() != "hello world" {
		t.Fatalf("root key = %q", root.Key())
	}
	name, ok := root.Child("name")
	if !ok || name.StringValue() != "Bananrama" {
		t.Fatalf("name child: %v, ok=%v", name, ok)
	}
}
