// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import (
	"errors"
	"testing"
)

// TestDecodeMinimalCompound decodes the smallest legal document: a
// Compound tag, a zero-length name, and an immediate End (§8).
func TestDecodeMinimalCompound(t *testing.T) {
	raw := []byte{0x0A, 0x00, 0x00, 0x00}
	n, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n.Tag() != TagCompound || n.Key() != "" || n.Len() != 0 {
		t.Fatalf("unexpected root: tag=%v key=%q len=%d", n.Tag(), n.Key(), n.Len())
	}
}

// TestDecodeHelloWorld decodes a Compound named "hello world" holding a
// single String "name" = "Bananrama" (the canonical NBT example).
func TestDecodeHelloWorld(t *testing.T) {
	raw := []byte{
		0x0A, 0x00, 0x0B, // Compound, name len 11
		'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd',
		0x08, 0x00, 0x04, 'n', 'a', 'm', 'e', // String "name"
		0x00, 0x09, 'B', 'a', 'n', 'a', 'n', 'r', 'a', 'm', 'a',
		0x00, // End
	}
	n, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n.Key() != "hello world" {
		t.Fatalf("root key = %q", n.Key())
	}
	name, ok := n.Child("name")
	if !ok {
		t.Fatal("missing \"name\" child")
	}
	if name.StringValue() != "Bananrama" {
		t.Fatalf("name = %q", name.StringValue())
	}
}

func TestDecodeLeftoverDataIsSoft(t *testing.T) {
	raw := []byte{0x0A, 0x00, 0x00, 0x00, 0xFF, 0xFF}
	n, err := Decode(raw)
	if n == nil {
		t.Fatal("expected non-nil tree alongside LeftoverData")
	}
	var nerr *Error
	if !errors.As(err, &nerr) || nerr.Kind != LeftoverData {
		t.Fatalf("err = %v, want LeftoverData", err)
	}
}

func TestDecodeEarlyEOF(t *testing.T) {
	raw := []byte{0x0A, 0x00, 0x00} // truncated before End
	_, err := Decode(raw)
	var nerr *Error
	if !errors.As(err, &nerr) || nerr.Kind != EarlyEOF {
		t.Fatalf("err = %v, want EarlyEOF", err)
	}
}

func TestDecodeInvalidTagByte(t *testing.T) {
	raw := []byte{0x7F, 0x00, 0x00}
	_, err := Decode(raw)
	var nerr *Error
	if !errors.As(err, &nerr) || nerr.Kind != InvalidData {
		t.Fatalf("err = %v, want InvalidData", err)
	}
}

func TestDecodeNegativeArrayLength(t *testing.T) {
	raw := []byte{
		0x0A, 0x00, 0x00, // Compound ""
		0x0B, 0x00, 0x01, 'a', // IntArray "a"
		0xFF, 0xFF, 0xFF, 0xFF, // length -1
		0x00, // End
	}
	_, err := Decode(raw)
	var nerr *Error
	if !errors.As(err, &nerr) || nerr.Kind != InvalidData {
		t.Fatalf("err = %v, want InvalidData", err)
	}
}

func TestDecodeMaxDepthExceeded(t *testing.T) {
	// Build a deeply nested compound-of-compound chain via Encode, then
	// decode it back with a tight depth limit.
	root := NewCompound("root")
	cur := root
	for i := 0; i < 10; i++ {
		child := NewCompound("c")
		_ = cur.Append(child)
		cur = child
	}
	enc, err := Encode(root, WithFraming(FramingRaw))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, err = Decode(enc, WithMaxDepth(3))
	var nerr *Error
	if !errors.As(err, &nerr) || nerr.Kind != InvalidData {
		t.Fatalf("err = %v, want InvalidData", err)
	}
}
