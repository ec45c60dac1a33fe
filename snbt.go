// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mcnbt

import (
	"bytes"
	"strconv"

	"github.com/cosnicolaou/mcnbt/internal/cursor"
)

// SNBTOption configures ToSNBT and WriteSNBT.
type SNBTOption func(*snbtOptions)

type snbtOptions struct {
	maxLevel int
	indent   string
}

// WithMaxLevel clips printing at depth n (§4.6): containers at or below
// that depth are abbreviated as "{...}" or "[...]" instead of being
// expanded; an empty container at that depth still prints as "{}" or
// "[]". The root is depth 0. A negative value (the default) means
// unlimited depth.
func WithMaxLevel(n int) SNBTOption {
	return func(o *snbtOptions) { o.maxLevel = n }
}

// WithIndent selects pretty-printing with the given per-level indent
// string (e.g. "  "). The default, an empty string, prints compactly on
// a single line.
func WithIndent(indent string) SNBTOption {
	return func(o *snbtOptions) { o.indent = indent }
}

// ToSNBT renders n as SNBT text into a freshly allocated, growing
// buffer and returns it as a string. It never fails: unlike WriteSNBT it
// is not bounded by a caller-supplied window.
func ToSNBT(n *Node, opts ...SNBTOption) string {
	o := snbtOptions{maxLevel: -1}
	for _, opt := range opts {
		opt(&o)
	}
	var b bytes.Buffer
	p := &snbtPrinter{opts: o}
	p.writeNode(&b, n, 0)
	return b.String()
}

// WriteSNBT renders n as SNBT text into dst, a fixed-capacity window
// supplied by the caller, and returns the number of bytes written. It
// fails with a BufferOverflow *Error if dst is too small; dst's
// contents are then in an undefined, partially-written state (§4.6,
// mirroring the encoder's overflow behaviour).
func WriteSNBT(dst []byte, n *Node, opts ...SNBTOption) (int, error) {
	o := snbtOptions{maxLevel: -1}
	for _, opt := range opts {
		opt(&o)
	}
	var b bytes.Buffer
	p := &snbtPrinter{opts: o}
	p.writeNode(&b, n, 0)

	w := cursor.NewWriter(dst)
	if err := w.WriteBytes(b.Bytes()); err != nil {
		return 0, wrapError(BufferOverflow, w.Position(), err)
	}
	return w.Position(), nil
}

type snbtPrinter struct {
	opts snbtOptions
}

func (p *snbtPrinter) clipped(depth int) bool {
	return p.opts.maxLevel >= 0 && depth >= p.opts.maxLevel
}

func (p *snbtPrinter) newline(b *bytes.Buffer, depth int) {
	if p.opts.indent == "" {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString(p.opts.indent)
	}
}

// writeNode writes n's value, preceded by an unquoted key: prefix when
// n carries a non-empty key (§4.6: "if a key is present and
// non-empty"). List elements are keyless and the document root's key
// is honored the same as any Compound child's.
func (p *snbtPrinter) writeNode(b *bytes.Buffer, n *Node, depth int) {
	if n.hasKey && len(n.key) > 0 {
		writeEscaped(b, n.key)
		b.WriteByte(':')
		if p.opts.indent != "" {
			b.WriteByte(' ')
		}
	}
	switch n.tag {
	case TagByte:
		b.WriteString(strconv.FormatInt(n.i64, 10))
		b.WriteByte('b')
	case TagShort:
		b.WriteString(strconv.FormatInt(n.i64, 10))
		b.WriteByte('s')
	case TagInt:
		b.WriteString(strconv.FormatInt(n.i64, 10))
	case TagLong:
		b.WriteString(strconv.FormatInt(n.i64, 10))
		b.WriteByte('l')
	case TagFloat:
		b.WriteString(strconv.FormatFloat(float64(n.f32), 'g', -1, 32))
		b.WriteByte('f')
	case TagDouble:
		b.WriteString(strconv.FormatFloat(n.f64, 'g', -1, 64))
		b.WriteByte('d')
	case TagString:
		writeEscaped(b, n.bytes)
	case TagByteArray:
		b.WriteString("[B;")
		for i, v := range n.bytes {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(int64(int8(v)), 10))
			b.WriteByte('b')
		}
		b.WriteByte(']')
	case TagIntArray:
		b.WriteString("[I;")
		for i, v := range n.ints {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(int64(v), 10))
		}
		b.WriteByte(']')
	case TagLongArray:
		b.WriteString("[L;")
		for i, v := range n.longs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteByte('l')
		}
		b.WriteByte(']')
	case TagList:
		p.writeContainer(b, n, depth, '[', ']')
	case TagCompound:
		p.writeContainer(b, n, depth, '{', '}')
	case TagEnd:
		// nothing to print; End only appears as a structural terminator.
	}
}

func (p *snbtPrinter) writeContainer(b *bytes.Buffer, n *Node, depth int, open, closeByte byte) {
	b.WriteByte(open)
	if p.clipped(depth) && len(n.children) > 0 {
		b.WriteString("...")
		b.WriteByte(closeByte)
		return
	}
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		p.newline(b, depth+1)
		p.writeNode(b, c, depth+1)
	}
	if len(n.children) > 0 {
		p.newline(b, depth)
	}
	b.WriteByte(closeByte)
}

// writeEscaped writes s verbatim with no surrounding quotes, escaping
// only the quote character itself (§9: this diverges from the usual
// Minecraft SNBT conventions; no re-parse support is offered by this
// package).
func writeEscaped(b *bytes.Buffer, s []byte) {
	for _, c := range s {
		if c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
}
