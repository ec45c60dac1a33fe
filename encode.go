// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import (
	"github.com/cosnicolaou/mcnbt/internal/cursor"
	"github.com/cosnicolaou/mcnbt/internal/envelope"
)

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

type encodeOptions struct {
	framing envelope.Framing
}

// WithFraming selects the outer compression envelope Encode applies.
// The default is gzip, matching the framing Minecraft itself writes for
// standalone NBT files. Chunk payloads inside MCA region files are
// normally zlib-framed; the mca package's PutChunk passes the framing
// its caller chose through to Encode.
func WithFraming(f Framing) EncodeOption {
	return func(o *encodeOptions) { o.framing = envelope.Framing(f) }
}

// Framing names the compression envelope applied by Encode; it mirrors
// envelope.Framing so callers outside this module need not import the
// internal package.
type Framing int

const (
	FramingGzip Framing = Framing(envelope.Gzip)
	FramingZlib Framing = Framing(envelope.Zlib)
	FramingRaw  Framing = Framing(envelope.Raw)
)

// Encode serializes root as a complete NBT document (§4.5) and wraps it
// in the selected compression framing (gzip by default). root must
// carry a key (HasKey true); pass an unkeyed root's sibling built with
// NewCompound("") etc. if an empty name is desired.
func Encode(root *Node, opts ...EncodeOption) ([]byte, error) {
	o := encodeOptions{framing: envelope.Gzip}
	for _, opt := range opts {
		opt(&o)
	}

	size := encodedSize(root, true)
	buf := make([]byte, size)
	w := cursor.NewWriter(buf)
	if err := writeNamedTag(w, root); err != nil {
		return nil, wrapError(BufferOverflow, w.Position(), err)
	}

	out, err := envelope.Compress(w.Bytes(), o.framing)
	if err != nil {
		return nil, wrapError(UnzipError, 0, err)
	}
	return out, nil
}

func writeNamedTag(w *cursor.Writer, n *Node) error {
	if err := w.WriteU8(byte(n.tag)); err != nil {
		return err
	}
	if n.tag == TagEnd {
		return nil
	}
	key, _ := n.KeyBytes()
	if err := w.WriteShortString(key); err != nil {
		return err
	}
	return writePayload(w, n)
}

func writePayload(w *cursor.Writer, n *Node) error {
	switch n.tag {
	case TagByte:
		return w.WriteI8(int8(n.i64))
	case TagShort:
		return w.WriteI16(int16(n.i64))
	case TagInt:
		return w.WriteI32(int32(n.i64))
	case TagLong:
		return w.WriteI64(n.i64)
	case TagFloat:
		return w.WriteF32(n.f32)
	case TagDouble:
		return w.WriteF64(n.f64)
	case TagByteArray:
		if err := w.WriteI32(int32(len(n.bytes))); err != nil {
			return err
		}
		return w.WriteBytes(n.bytes)
	case TagString:
		return w.WriteShortString(n.bytes)
	case TagIntArray:
		if err := w.WriteI32(int32(len(n.ints))); err != nil {
			return err
		}
		for _, v := range n.ints {
			if err := w.WriteI32(v); err != nil {
				return err
			}
		}
		return nil
	case TagLongArray:
		if err := w.WriteI32(int32(len(n.longs))); err != nil {
			return err
		}
		for _, v := range n.longs {
			if err := w.WriteI64(v); err != nil {
				return err
			}
		}
		return nil
	case TagList:
		elem := n.listElem
		if len(n.children) == 0 && elem == 0 {
			elem = TagEnd
		}
		if err := w.WriteU8(byte(elem)); err != nil {
			return err
		}
		if err := w.WriteI32(int32(len(n.children))); err != nil {
			return err
		}
		for _, c := range n.children {
			if err := writePayload(w, c); err != nil {
				return err
			}
		}
		return nil
	case TagCompound:
		for _, c := range n.children {
			if err := writeNamedTag(w, c); err != nil {
				return err
			}
		}
		return w.WriteU8(byte(TagEnd))
	default:
		return ErrUnknownTag
	}
}

// ErrUnknownTag is returned internally when a Node carries a Tag value
// outside the thirteen defined kinds; it should not occur for trees
// built via the New* constructors or produced by Decode.
var ErrUnknownTag = newErrUnknownTag()

func newErrUnknownTag() error {
	return &Error{Kind: Internal, Position: 0}
}

// encodedSize computes the exact encoded length of n so Encode can
// allocate its destination window in a single pass, avoiding a growable
// buffer in the core encode path (§4.5, §9).
func encodedSize(n *Node, named bool) int {
	size := 1 // tag byte
	if n.tag == TagEnd {
		return size
	}
	if named {
		key, _ := n.KeyBytes()
		size += 2 + len(key)
	}
	size += payloadSize(n)
	return size
}

func payloadSize(n *Node) int {
	switch n.tag {
	case TagByte:
		return 1
	case TagShort:
		return 2
	case TagInt:
		return 4
	case TagLong:
		return 8
	case TagFloat:
		return 4
	case TagDouble:
		return 8
	case TagByteArray:
		return 4 + len(n.bytes)
	case TagString:
		return 2 + len(n.bytes)
	case TagIntArray:
		return 4 + 4*len(n.ints)
	case TagLongArray:
		return 4 + 8*len(n.longs)
	case TagList:
		size := 1 + 4
		for _, c := range n.children {
			size += payloadSize(c)
		}
		return size
	case TagCompound:
		size := 0
		for _, c := range n.children {
			size += encodedSize(c, true)
		}
		return size + 1 // trailing End
	default:
		return 0
	}
}
