// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import (
	"github.com/cosnicolaou/mcnbt/internal/cursor"
	"github.com/cosnicolaou/mcnbt/internal/envelope"
)

const defaultMaxDepth = 512

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	maxDepth int
}

// WithMaxDepth bounds the nesting depth Decode will follow before
// failing with InvalidData, guarding against maliciously deep input
// exhausting the goroutine stack. The default is 512.
func WithMaxDepth(n int) DecodeOption {
	return func(o *decodeOptions) { o.maxDepth = n }
}

// Decode parses a complete NBT document from data (§4.4). data may be
// gzip-framed, zlib-framed, or raw (detected automatically, §4.2).
//
// Decode always returns a usable tree when err is nil or when err is a
// LeftoverData *Error: LeftoverData is soft and signals that the
// top-level value decoded successfully but trailing bytes followed it.
// Every other error kind is hard and the returned Node is nil.
func Decode(data []byte, opts ...DecodeOption) (*Node, error) {
	o := decodeOptions{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := envelope.Decompress(data)
	if err != nil {
		return nil, wrapError(UnzipError, 0, err)
	}

	r := cursor.NewReader(raw)
	d := &decoder{r: r, maxDepth: o.maxDepth}
	root, derr := d.namedTag(0)
	if derr != nil {
		return nil, derr
	}
	if r.Remaining() > 0 {
		return root, newError(LeftoverData, r.Position())
	}
	return root, nil
}

type decoder struct {
	r        *cursor.Reader
	maxDepth int
}

// namedTag reads a tag byte followed by its name and payload, per the
// wire layout shared by the document root and every Compound child.
func (d *decoder) namedTag(depth int) (*Node, *Error) {
	pos := d.r.Position()
	tb, err := d.r.ReadU8()
	if err != nil {
		return nil, wrapError(EarlyEOF, pos, err)
	}
	tag := Tag(tb)
	if tag == TagEnd {
		return &Node{tag: TagEnd}, nil
	}
	if !tag.valid() {
		return nil, newError(InvalidData, pos)
	}
	namePos := d.r.Position()
	name, err := d.r.ReadShortString()
	if err != nil {
		return nil, wrapError(EarlyEOF, namePos, err)
	}
	n, derr := d.payload(tag, depth)
	if derr != nil {
		return nil, derr
	}
	n.hasKey = true
	n.key = name
	return n, nil
}

// payload reads the value of kind tag, assuming any tag byte and name
// have already been consumed.
func (d *decoder) payload(tag Tag, depth int) (*Node, *Error) {
	if depth > d.maxDepth {
		return nil, newError(InvalidData, d.r.Position())
	}
	pos := d.r.Position()
	switch tag {
	case TagByte:
		v, err := d.r.ReadI8()
		if err != nil {
			return nil, wrapError(EarlyEOF, pos, err)
		}
		return &Node{tag: tag, i64: int64(v)}, nil
	case TagShort:
		v, err := d.r.ReadI16()
		if err != nil {
			return nil, wrapError(EarlyEOF, pos, err)
		}
		return &Node{tag: tag, i64: int64(v)}, nil
	case TagInt:
		v, err := d.r.ReadI32()
		if err != nil {
			return nil, wrapError(EarlyEOF, pos, err)
		}
		return &Node{tag: tag, i64: int64(v)}, nil
	case TagLong:
		v, err := d.r.ReadI64()
		if err != nil {
			return nil, wrapError(EarlyEOF, pos, err)
		}
		return &Node{tag: tag, i64: v}, nil
	case TagFloat:
		v, err := d.r.ReadF32()
		if err != nil {
			return nil, wrapError(EarlyEOF, pos, err)
		}
		return &Node{tag: tag, f32: v}, nil
	case TagDouble:
		v, err := d.r.ReadF64()
		if err != nil {
			return nil, wrapError(EarlyEOF, pos, err)
		}
		return &Node{tag: tag, f64: v}, nil
	case TagByteArray:
		b, derr := d.byteVector(pos)
		if derr != nil {
			return nil, derr
		}
		return &Node{tag: tag, bytes: b}, nil
	case TagString:
		s, err := d.r.ReadShortString()
		if err != nil {
			return nil, wrapError(EarlyEOF, pos, err)
		}
		return &Node{tag: tag, bytes: s}, nil
	case TagIntArray:
		return d.intArray(pos)
	case TagLongArray:
		return d.longArray(pos)
	case TagList:
		return d.list(pos, depth)
	case TagCompound:
		return d.compound(pos, depth)
	default:
		return nil, newError(InvalidData, pos)
	}
}

func (d *decoder) length(pos int) (int, *Error) {
	n, err := d.r.ReadI32()
	if err != nil {
		return 0, wrapError(EarlyEOF, pos, err)
	}
	if n < 0 {
		return 0, newError(InvalidData, pos)
	}
	return int(n), nil
}

func (d *decoder) byteVector(pos int) ([]byte, *Error) {
	n, derr := d.length(pos)
	if derr != nil {
		return nil, derr
	}
	bpos := d.r.Position()
	b, err := d.r.ReadBytes(n)
	if err != nil {
		return nil, wrapError(EarlyEOF, bpos, err)
	}
	return b, nil
}

func (d *decoder) intArray(pos int) (*Node, *Error) {
	n, derr := d.length(pos)
	if derr != nil {
		return nil, derr
	}
	out := make([]int32, n)
	for i := range out {
		epos := d.r.Position()
		v, err := d.r.ReadI32()
		if err != nil {
			return nil, wrapError(EarlyEOF, epos, err)
		}
		out[i] = v
	}
	return &Node{tag: TagIntArray, ints: out}, nil
}

func (d *decoder) longArray(pos int) (*Node, *Error) {
	n, derr := d.length(pos)
	if derr != nil {
		return nil, derr
	}
	out := make([]int64, n)
	for i := range out {
		epos := d.r.Position()
		v, err := d.r.ReadI64()
		if err != nil {
			return nil, wrapError(EarlyEOF, epos, err)
		}
		out[i] = v
	}
	return &Node{tag: TagLongArray, longs: out}, nil
}

func (d *decoder) list(pos int, depth int) (*Node, *Error) {
	elemPos := d.r.Position()
	eb, err := d.r.ReadU8()
	if err != nil {
		return nil, wrapError(EarlyEOF, elemPos, err)
	}
	elem := Tag(eb)
	if elem != TagEnd && !elem.valid() {
		return nil, newError(InvalidData, elemPos)
	}
	n, derr := d.length(d.r.Position())
	if derr != nil {
		return nil, derr
	}
	if n > 0 && elem == TagEnd {
		return nil, newError(InvalidData, pos)
	}
	children := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		c, derr := d.payload(elem, depth+1)
		if derr != nil {
			return nil, derr
		}
		children = append(children, c)
	}
	return &Node{tag: TagList, listElem: elem, children: children}, nil
}

func (d *decoder) compound(pos int, depth int) (*Node, *Error) {
	var children []*Node
	for {
		c, derr := d.namedTag(depth + 1)
		if derr != nil {
			return nil, derr
		}
		if c.tag == TagEnd {
			break
		}
		children = append(children, c)
	}
	return &Node{tag: TagCompound, children: children}, nil
}
