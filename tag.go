// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import "fmt"

// Tag identifies the kind of an NBT node, encoded as a single byte when
// it appears on the wire (§3).
type Tag byte

const (
	TagEnd       Tag = 0
	TagByte      Tag = 1
	TagShort     Tag = 2
	TagInt       Tag = 3
	TagLong      Tag = 4
	TagFloat     Tag = 5
	TagDouble    Tag = 6
	TagByteArray Tag = 7
	TagString    Tag = 8
	TagList      Tag = 9
	TagCompound  Tag = 10
	TagIntArray  Tag = 11
	TagLongArray Tag = 12
)

var tagNames = [...]string{
	TagEnd:       "End",
	TagByte:      "Byte",
	TagShort:     "Short",
	TagInt:       "Int",
	TagLong:      "Long",
	TagFloat:     "Float",
	TagDouble:    "Double",
	TagByteArray: "ByteArray",
	TagString:    "String",
	TagList:      "List",
	TagCompound:  "Compound",
	TagIntArray:  "IntArray",
	TagLongArray: "LongArray",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", byte(t))
}

// valid reports whether t is one of the thirteen defined kinds.
func (t Tag) valid() bool {
	return t <= TagLongArray
}

// isContainer reports whether t carries child nodes rather than a
// scalar/array payload.
func (t Tag) isContainer() bool {
	return t == TagList || t == TagCompound
}
