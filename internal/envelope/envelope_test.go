// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package envelope

import (
	"bytes"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want Framing
	}{
		{"gzip", []byte{0x1F, 0x8B, 0x08}, Gzip},
		{"zlib", []byte{0x78, 0x9C}, Zlib},
		{"raw", []byte{0x0A, 0x00}, Raw},
		{"single byte", []byte{0x78}, Zlib},
	}
	for _, c := range cases {
		if got := Detect(c.buf); got != c.want {
			t.Errorf("%s: Detect() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRoundTripAllFramings(t *testing.T) {
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 1000)
	for _, f := range []Framing{Gzip, Zlib, Raw} {
		compressed, err := Compress(payload, f)
		if err != nil {
			t.Fatalf("%v: Compress: %v", f, err)
		}
		if f != Raw && bytes.Equal(compressed, payload) {
			t.Fatalf("%v: compressed output equals input", f)
		}
		got, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("%v: Decompress: %v", f, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("%v: round trip mismatch", f)
		}
	}
}

func TestDecompressGrowsPastInitialCapacity(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, initialCapacity*3+17)
	compressed, err := Compress(payload, Gzip)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}
