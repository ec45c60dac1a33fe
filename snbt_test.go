// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import (
	"fmt"
	"testing"
)

func ExampleToSNBT() {
	root := NewCompound("")
	_ = root.Append(NewStringValue("name", "Bananrama"))
	_ = root.Append(NewInt("age", 12))
	fmt.Println(ToSNBT(root))
	// Output: {name:Bananrama,age:12}
}

func TestToSNBTCompact(t *testing.T) {
	root := NewCompound("")
	_ = root.Append(NewInt("x", 1))
	_ = root.Append(NewStringValue("y", "hi"))
	got := ToSNBT(root)
	want := `{x:1,y:hi}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestToSNBTEscapesOnlyQuote(t *testing.T) {
	root := NewCompound("")
	_ = root.Append(NewStringValue("s", `a"b\c`))
	got := ToSNBT(root)
	want := `{s:a\"b\c}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestToSNBTHelloWorld is scenario 2: decoding the spec's canonical
// "hello world" bytes and rendering with max_level=-1, indent=-1 must
// yield exactly "Hello:{name:World}" — no quotes around the root's key
// or the String value.
func TestToSNBTHelloWorld(t *testing.T) {
	raw := []byte{
		0x0A, 0x00, 0x05, 'H', 'e', 'l', 'l', 'o',
		0x08, 0x00, 0x04, 'n', 'a', 'm', 'e', 0x00, 0x05, 'W', 'o', 'r', 'l', 'd',
		0x00,
	}
	root, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := ToSNBT(root, WithMaxLevel(-1))
	want := "Hello:{name:World}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestToSNBTMaxLevelClipsContainers is scenario 3: with max_level=1 a
// container at depth 1 renders as "{...}" without expanding its
// children, while the root (depth 0) still expands.
func TestToSNBTMaxLevelClipsContainers(t *testing.T) {
	root := NewCompound("")
	a := NewCompound("a")
	b := NewCompound("b")
	_ = b.Append(NewInt("c", 1))
	_ = a.Append(b)
	_ = root.Append(a)

	got := ToSNBT(root, WithMaxLevel(1))
	want := "{a:{...}}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestToSNBTArrays(t *testing.T) {
	root := NewCompound("")
	_ = root.Append(NewByteArray("b", []byte{1, 2}))
	_ = root.Append(NewIntArray("i", []int32{1, -2}))
	_ = root.Append(NewLongArray("l", []int64{1, -2}))
	got := ToSNBT(root)
	want := `{b:[B;1b,2b],i:[I;1,-2],l:[L;1l,-2l]}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestToSNBTLongSuffixIsLowercase(t *testing.T) {
	root := NewCompound("")
	_ = root.Append(NewLong("n", 7))
	got := ToSNBT(root)
	want := `{n:7l}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteSNBTBufferOverflow(t *testing.T) {
	root := NewCompound("")
	_ = root.Append(NewInt("x", 1))
	tiny := make([]byte, 2)
	if _, err := WriteSNBT(tiny, root); err == nil {
		t.Fatal("expected BufferOverflow error")
	}
}

func TestWriteSNBTFitsExactly(t *testing.T) {
	root := NewCompound("")
	_ = root.Append(NewInt("x", 1))
	want := ToSNBT(root)
	buf := make([]byte, len(want))
	n, err := WriteSNBT(buf, root)
	if err != nil {
		t.Fatalf("WriteSNBT: %v", err)
	}
	if string(buf[:n]) != want {
		t.Fatalf("got %q, want %q", buf[:n], want)
	}
}
