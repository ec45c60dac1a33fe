// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package envelope implements the outer compression framing used by NBT
// and MCA streams: gzip, zlib or raw bytes, detected by magic number and
// inflated/deflated with klauspost/compress, a drop-in, zlib-compatible
// replacement for the standard library's compress/gzip and
// compress/zlib.
package envelope

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Framing identifies the outer compression envelope of a byte stream.
type Framing int

const (
	// Gzip is the RFC 1952 framing (magic bytes 1F 8B).
	Gzip Framing = iota
	// Zlib is the RFC 1950 framing (first byte 0x78).
	Zlib
	// Raw indicates no outer compression.
	Raw
)

func (f Framing) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Raw:
		return "raw"
	default:
		return fmt.Sprintf("Framing(%d)", int(f))
	}
}

// initialCapacity is the starting size for the geometrically growing
// output buffer used by Decompress.
const initialCapacity = 64 * 1024

// Detect inspects the first one or two bytes of buf and reports the
// compression framing per §4.2: 1F 8B is gzip, a first byte of 0x78 is
// zlib (any second byte), anything else is raw.
func Detect(buf []byte) Framing {
	if len(buf) >= 2 && buf[0] == 0x1F && buf[1] == 0x8B {
		return Gzip
	}
	if len(buf) >= 1 && buf[0] == 0x78 {
		return Zlib
	}
	return Raw
}

// Decompress detects the framing of buf and inflates it into a freshly
// allocated buffer, growing geometrically (starting at 64 KiB, doubling)
// until the underlying stream is exhausted. Raw input is returned as an
// owned copy.
func Decompress(buf []byte) ([]byte, error) {
	switch Detect(buf) {
	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("envelope: gzip: %w", err)
		}
		defer zr.Close()
		return inflate(zr)
	case Zlib:
		zr, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("envelope: zlib: %w", err)
		}
		defer zr.Close()
		return inflate(zr)
	default:
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	}
}

// inflate reads r to completion into a buffer that grows geometrically,
// starting at initialCapacity and doubling its capacity whenever it is
// full.
func inflate(r io.Reader) ([]byte, error) {
	out := make([]byte, 0, initialCapacity)
	for {
		if len(out) == cap(out) {
			grown := make([]byte, len(out), 2*cap(out))
			copy(grown, out)
			out = grown
		}
		n, err := r.Read(out[len(out):cap(out)])
		out = out[:len(out)+n]
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("envelope: %w", err)
		}
	}
}

// Compress frames buf according to framing. Compression level is
// best-ratio by default (per §4.2), implementation-defined otherwise.
func Compress(buf []byte, framing Framing) ([]byte, error) {
	switch framing {
	case Gzip:
		var b bytes.Buffer
		zw, err := gzip.NewWriterLevel(&b, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("envelope: gzip: %w", err)
		}
		if _, err := zw.Write(buf); err != nil {
			return nil, fmt.Errorf("envelope: gzip: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("envelope: gzip: %w", err)
		}
		return b.Bytes(), nil
	case Zlib:
		var b bytes.Buffer
		zw, err := zlib.NewWriterLevel(&b, zlib.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("envelope: zlib: %w", err)
		}
		if _, err := zw.Write(buf); err != nil {
			return nil, fmt.Errorf("envelope: zlib: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("envelope: zlib: %w", err)
		}
		return b.Bytes(), nil
	case Raw:
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	default:
		return nil, fmt.Errorf("envelope: unknown framing %v", framing)
	}
}
