// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package mcnbt reads, edits and writes the Minecraft world-data family
// of binary formats: NBT (Named Binary Tag), its textual counterpart
// SNBT, and the MCA region-file container (in the sibling mca package).
// The codec is byte-exact with files produced by the Minecraft client
// and server; it performs no Minecraft-semantic validation.
//
// Decode and Encode convert between a byte stream and a Node tree;
// ToSNBT/WriteSNBT render a tree as text. Child and ChildPath navigate a
// decoded tree without walking it by hand. Decode, Encode and WriteSNBT
// report failure as an *Error carrying one of the Kind values and the
// byte position at which the condition was detected; Node.Append
// reports misuse of the tree API as a plain error.
//
// The package performs no concurrency of its own: a Decode or Encode
// call runs to completion on the calling goroutine, and a Node tree
// must not be shared across goroutines while being mutated.
package mcnbt
