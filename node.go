// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import (
	"bytes"
	"fmt"
)

// Node is a single NBT value: a tagged, recursive variant over the
// twelve non-End kinds (§3). A Node may carry a key (it is then a named
// Compound child, or the document root) or may be keyless (an element
// of a List) — which applies is determined by the parent, not by a
// field on Node itself; HasKey reports which is the case for this
// particular instance.
//
// Node owns its children: destroying a Node (letting it become
// unreachable) destroys its subtree. There is no interior sharing and a
// single tree must not be accessed from more than one goroutine
// concurrently; distinct trees may be processed in parallel freely.
type Node struct {
	tag Tag

	hasKey bool
	key    []byte

	i64 int64
	f32 float32
	f64 float64

	bytes []byte  // ByteArray, String payload
	ints  []int32 // IntArray
	longs []int64 // LongArray

	listElem Tag     // valid only when tag == TagList
	children []*Node // valid when tag == TagList or TagCompound
}

// Tag returns the node's kind.
func (n *Node) Tag() Tag { return n.tag }

// HasKey reports whether this node carries a name. It is true for the
// document root and for Compound children, false for List elements.
func (n *Node) HasKey() bool { return n.hasKey }

// KeyBytes returns the node's key as raw bytes (empty, non-nil if the
// node has an empty key) and whether the node has a key at all.
func (n *Node) KeyBytes() ([]byte, bool) { return n.key, n.hasKey }

// Key returns the node's key interpreted as a string. It returns "" if
// the node has no key. No Modified-UTF-8 decoding is performed (§9):
// the bytes are interpreted as-is, which is only correct for
// ASCII/UTF-8-clean keys.
func (n *Node) Key() string {
	if !n.hasKey {
		return ""
	}
	return string(n.key)
}

// SetKey assigns key to the node, marking it as keyed. Pass nil to
// clear an existing key (the node becomes keyless, as for a List
// element).
func (n *Node) SetKey(key []byte) {
	if key == nil {
		n.hasKey = false
		n.key = nil
		return
	}
	n.hasKey = true
	n.key = append([]byte(nil), key...)
}

// Int64 returns the scalar payload of a Byte, Short, Int or Long node,
// sign-extended to 64 bits. It panics if the node is not one of those
// kinds, matching the library's convention of leaving type confusion to
// the caller (the decoder never constructs a Node/accessor mismatch).
func (n *Node) Int64() int64 {
	n.mustBeOneOf(TagByte, TagShort, TagInt, TagLong)
	return n.i64
}

// Float32 returns the payload of a Float node.
func (n *Node) Float32() float32 {
	n.mustBe(TagFloat)
	return n.f32
}

// Float64 returns the payload of a Double node.
func (n *Node) Float64() float64 {
	n.mustBe(TagDouble)
	return n.f64
}

// Bytes returns the raw payload of a ByteArray or String node. For
// ByteArray this is the element bytes; for String it is the raw
// (unvalidated) byte payload. The returned slice must not be mutated.
func (n *Node) Bytes() []byte {
	n.mustBeOneOf(TagByteArray, TagString)
	return n.bytes
}

// StringValue returns a String node's payload converted to a Go string.
// Like Key, this performs no Modified-UTF-8 decoding.
func (n *Node) StringValue() string {
	n.mustBe(TagString)
	return string(n.bytes)
}

// IntArraySlice returns the elements of an IntArray node. The returned
// slice must not be mutated.
func (n *Node) IntArraySlice() []int32 {
	n.mustBe(TagIntArray)
	return n.ints
}

// LongArraySlice returns the elements of a LongArray node. The returned
// slice must not be mutated.
func (n *Node) LongArraySlice() []int64 {
	n.mustBe(TagLongArray)
	return n.longs
}

// ListElementTag returns the fixed element kind of a List node (§3
// invariant 1). An empty list may report TagEnd.
func (n *Node) ListElementTag() Tag {
	n.mustBe(TagList)
	return n.listElem
}

// Children returns a List's elements or a Compound's named children, in
// order. The returned slice must not be mutated; use Append to add
// children.
func (n *Node) Children() []*Node {
	n.mustBeOneOf(TagList, TagCompound)
	return n.children
}

// Len returns the number of children of a List or Compound.
func (n *Node) Len() int {
	n.mustBeOneOf(TagList, TagCompound)
	return len(n.children)
}

func (n *Node) mustBe(t Tag) {
	if n.tag != t {
		panic(fmt.Sprintf("mcnbt: Node is %v, not %v", n.tag, t))
	}
}

func (n *Node) mustBeOneOf(ts ...Tag) {
	for _, t := range ts {
		if n.tag == t {
			return
		}
	}
	panic(fmt.Sprintf("mcnbt: Node of kind %v does not support this accessor", n.tag))
}

// --- Construction ---

func keyed(key string) (hasKey bool, kb []byte) {
	return true, []byte(key)
}

// NewByte returns a keyed Byte node.
func NewByte(key string, v int8) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagByte, hasKey: hk, key: kb, i64: int64(v)}
}

// NewShort returns a keyed Short node.
func NewShort(key string, v int16) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagShort, hasKey: hk, key: kb, i64: int64(v)}
}

// NewInt returns a keyed Int node.
func NewInt(key string, v int32) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagInt, hasKey: hk, key: kb, i64: int64(v)}
}

// NewLong returns a keyed Long node.
func NewLong(key string, v int64) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagLong, hasKey: hk, key: kb, i64: v}
}

// NewFloat returns a keyed Float node.
func NewFloat(key string, v float32) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagFloat, hasKey: hk, key: kb, f32: v}
}

// NewDouble returns a keyed Double node.
func NewDouble(key string, v float64) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagDouble, hasKey: hk, key: kb, f64: v}
}

// NewByteArray returns a keyed ByteArray node; v is copied.
func NewByteArray(key string, v []byte) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagByteArray, hasKey: hk, key: kb, bytes: append([]byte(nil), v...)}
}

// NewString returns a keyed String node from raw bytes; v is copied.
func NewString(key string, v []byte) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagString, hasKey: hk, key: kb, bytes: append([]byte(nil), v...)}
}

// NewStringValue returns a keyed String node from a Go string.
func NewStringValue(key, v string) *Node {
	return NewString(key, []byte(v))
}

// NewIntArray returns a keyed IntArray node; v is copied.
func NewIntArray(key string, v []int32) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagIntArray, hasKey: hk, key: kb, ints: append([]int32(nil), v...)}
}

// NewLongArray returns a keyed LongArray node; v is copied.
func NewLongArray(key string, v []int64) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagLongArray, hasKey: hk, key: kb, longs: append([]int64(nil), v...)}
}

// NewList returns a keyed, empty List node whose element kind is fixed
// to elem (§3 invariant 1). Pass TagEnd for an empty list with no fixed
// element kind yet.
func NewList(key string, elem Tag) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagList, hasKey: hk, key: kb, listElem: elem}
}

// NewCompound returns a keyed, empty Compound node.
func NewCompound(key string) *Node {
	hk, kb := keyed(key)
	return &Node{tag: TagCompound, hasKey: hk, key: kb}
}

// Append adds child to a List or Compound. For a List, child must not
// carry a non-empty key (a child built with an empty key, such as
// NewInt("", v), is accepted and made keyless) and must match the
// list's element kind (unless the list is still empty with element kind
// TagEnd, in which case the first append fixes the element kind). For a
// Compound, child must be keyed; duplicate keys are permitted and
// preserved in insertion order (§9).
func (n *Node) Append(child *Node) error {
	switch n.tag {
	case TagList:
		if child.hasKey && len(child.key) > 0 {
			return fmt.Errorf("mcnbt: List elements must not carry a non-empty key")
		}
		if len(n.children) == 0 && n.listElem == TagEnd {
			n.listElem = child.tag
		} else if child.tag != n.listElem {
			return fmt.Errorf("mcnbt: List element kind %v does not match list kind %v", child.tag, n.listElem)
		}
		child.SetKey(nil)
	case TagCompound:
		if !child.hasKey {
			return fmt.Errorf("mcnbt: Compound children must carry a key")
		}
	default:
		return fmt.Errorf("mcnbt: cannot append to a %v node", n.tag)
	}
	n.children = append(n.children, child)
	return nil
}

// Equal reports deep structural equality: same kind, same key (if any),
// same payload, and children equal pairwise in order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.tag != o.tag || n.hasKey != o.hasKey {
		return false
	}
	if n.hasKey && !bytes.Equal(n.key, o.key) {
		return false
	}
	switch n.tag {
	case TagByte, TagShort, TagInt, TagLong:
		return n.i64 == o.i64
	case TagFloat:
		return n.f32 == o.f32
	case TagDouble:
		return n.f64 == o.f64
	case TagByteArray, TagString:
		return bytes.Equal(n.bytes, o.bytes)
	case TagIntArray:
		return int32SliceEqual(n.ints, o.ints)
	case TagLongArray:
		return int64SliceEqual(n.longs, o.longs)
	case TagList:
		if n.listElem != o.listElem || len(n.children) != len(o.children) {
			return false
		}
		fallthrough
	case TagCompound:
		if len(n.children) != len(o.children) {
			return false
		}
		for i := range n.children {
			if !n.children[i].Equal(o.children[i]) {
				return false
			}
		}
		return true
	case TagEnd:
		return true
	default:
		return false
	}
}

func int32SliceEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
