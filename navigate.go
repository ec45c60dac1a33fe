// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

// Child returns the first Compound child named key, and whether one was
// found. Lookup is a linear scan in insertion order (§4.7); if keys are
// duplicated (§9), the first match wins and later duplicates are
// unreachable through this accessor.
func (n *Node) Child(key string) (*Node, bool) {
	if n.tag != TagCompound {
		return nil, false
	}
	for _, c := range n.children {
		if c.Key() == key {
			return c, true
		}
	}
	return nil, false
}

// ChildPath walks a sequence of Compound keys from n, returning the
// node found at the end of the path, or false if any segment is
// missing or any intermediate node is not a Compound. ChildPath() with
// no keys returns n itself.
func (n *Node) ChildPath(keys ...string) (*Node, bool) {
	cur := n
	for _, k := range keys {
		next, ok := cur.Child(k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// At returns the i'th element of a List, and whether i was in range.
func (n *Node) At(i int) (*Node, bool) {
	if n.tag != TagList || i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}
