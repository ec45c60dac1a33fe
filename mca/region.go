// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package mca reads and writes Anvil region files: the 32x32 grid of
// chunk slots, each independently gzip- or zlib-framed NBT, that
// Minecraft packs into .mca files (§4.8). It builds on the sibling
// mcnbt package for the per-chunk NBT payload and shares its flat
// error model.
package mca

import (
	"fmt"
	"regexp"
	"strconv"

	"cloudeng.io/errors"

	"github.com/cosnicolaou/mcnbt"
)

// ChunksPerRegion is the number of chunk slots in a region file: a 32x32
// grid (§4.8).
const ChunksPerRegion = 1024

const regionSide = 32

// SectorSize is the unit of allocation within a region file. The offset
// table, the timestamp table, and every chunk payload are padded to a
// multiple of SectorSize bytes.
const SectorSize = 4096

// Compression identifies how a chunk payload is framed, using the byte
// values Minecraft itself writes into the region file (distinct from,
// but mapped onto, mcnbt.Framing).
type Compression byte

const (
	CompressionGzip       Compression = 1
	CompressionZlib       Compression = 2
	CompressionUncompressed Compression = 3
)

func (c Compression) framing() mcnbt.Framing {
	switch c {
	case CompressionGzip:
		return mcnbt.FramingGzip
	case CompressionUncompressed:
		return mcnbt.FramingRaw
	default:
		return mcnbt.FramingZlib
	}
}

func framingToCompression(f mcnbt.Framing) Compression {
	switch f {
	case mcnbt.FramingGzip:
		return CompressionGzip
	case mcnbt.FramingRaw:
		return CompressionUncompressed
	default:
		return CompressionZlib
	}
}

// slot holds one chunk position's raw, still-compressed payload and
// metadata, mirroring the rawdata/size/epoch fields of the format this
// package was modeled on: payload bytes are kept exactly as read until
// ParseAll or Chunk decodes them.
type slot struct {
	raw         []byte
	compression Compression
	timestamp   uint32
}

// Region is an in-memory Anvil region file: up to 1024 independently
// framed NBT chunk payloads on a 32x32 grid, plus their last-modified
// timestamps (§4.8).
type Region struct {
	slots [ChunksPerRegion]slot

	hasPosition bool
	x, z        int32
}

// New returns an empty Region with no known grid position.
func New() *Region {
	return &Region{}
}

// NewWithPosition returns an empty Region tagged with the region grid
// coordinates x, z (the region file would conventionally be named
// r.x.z.mca). Supplying the position lets callers round-trip world
// coordinates without parsing it back out of a filename.
func NewWithPosition(x, z int32) *Region {
	return &Region{hasPosition: true, x: x, z: z}
}

// Position returns the region's grid coordinates and whether they are
// known.
func (r *Region) Position() (x, z int32, ok bool) {
	return r.x, r.z, r.hasPosition
}

var regionFilePattern = regexp.MustCompile(`r\.(-?\d+)\.(-?\d+)\.mca$`)

// PositionFromName extracts the region grid coordinates from a region
// file's base name (e.g. "r.3.-1.mca"), reporting ok=false if the name
// does not match the expected pattern.
func PositionFromName(name string) (x, z int32, ok bool) {
	m := regionFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	xi, err1 := strconv.ParseInt(m[1], 10, 32)
	zi, err2 := strconv.ParseInt(m[2], 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return int32(xi), int32(zi), true
}

// Index computes a chunk's slot index from its in-region coordinates
// (each taken modulo 32, matching how Minecraft addresses chunks within
// a region regardless of sign).
func Index(cx, cz int) int {
	cx = ((cx % regionSide) + regionSide) % regionSide
	cz = ((cz % regionSide) + regionSide) % regionSide
	return cx + cz*regionSide
}

func (r *Region) checkIndex(i int) error {
	if i < 0 || i >= ChunksPerRegion {
		return fmt.Errorf("mca: slot index %d out of range [0,%d)", i, ChunksPerRegion)
	}
	return nil
}

// HasChunk reports whether slot i holds a chunk payload.
func (r *Region) HasChunk(i int) bool {
	if r.checkIndex(i) != nil {
		return false
	}
	return len(r.slots[i].raw) > 0
}

// RawSize returns the number of raw (still-framed) payload bytes stored
// at slot i, or 0 if the slot is empty or out of range.
func (r *Region) RawSize(i int) int {
	if r.checkIndex(i) != nil {
		return 0
	}
	return len(r.slots[i].raw)
}

// Timestamp returns the slot's last-modified time as a Unix epoch
// second count, as stored in the region file's timestamp table.
func (r *Region) Timestamp(i int) uint32 {
	if r.checkIndex(i) != nil {
		return 0
	}
	return r.slots[i].timestamp
}

// SetTimestamp overwrites slot i's timestamp without touching its
// payload. WriteRaw never consults the system clock (§9 — the codec
// stays non-suspending and deterministic); callers that want the
// current time must compute it themselves and call SetTimestamp
// before writing.
func (r *Region) SetTimestamp(i int, t uint32) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	r.slots[i].timestamp = t
	return nil
}

// SetRaw installs already-framed chunk bytes (as read from, or destined
// for, a region file) at slot i with the given compression kind and
// timestamp.
func (r *Region) SetRaw(i int, raw []byte, c Compression, timestamp uint32) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	r.slots[i] = slot{raw: append([]byte(nil), raw...), compression: c, timestamp: timestamp}
	return nil
}

// Raw returns slot i's still-framed payload bytes and its compression
// kind.
func (r *Region) Raw(i int) ([]byte, Compression, error) {
	if err := r.checkIndex(i); err != nil {
		return nil, 0, err
	}
	return r.slots[i].raw, r.slots[i].compression, nil
}

// PutChunk encodes root as NBT under framing and installs it at slot i,
// leaving the existing timestamp untouched; call SetTimestamp
// separately to update it.
func (r *Region) PutChunk(i int, root *mcnbt.Node, framing mcnbt.Framing) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	enc, err := mcnbt.Encode(root, mcnbt.WithFraming(framing))
	if err != nil {
		return fmt.Errorf("mca: encoding slot %d: %w", i, err)
	}
	r.slots[i].raw = enc
	r.slots[i].compression = framingToCompression(framing)
	return nil
}

// Chunk decodes and returns the NBT tree stored at slot i, or nil, nil
// if the slot is empty.
func (r *Region) Chunk(i int, opts ...mcnbt.DecodeOption) (*mcnbt.Node, error) {
	if err := r.checkIndex(i); err != nil {
		return nil, err
	}
	s := r.slots[i]
	if len(s.raw) == 0 {
		return nil, nil
	}
	n, err := mcnbt.Decode(s.raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("mca: decoding slot %d: %w", i, err)
	}
	return n, nil
}

// ParseAll decodes every populated slot, returning a 1024-entry slice
// (nil where empty) and an aggregated error built from every slot that
// failed to decode; a single corrupt chunk does not prevent the rest
// from being returned. The returned error is nil if every populated
// slot decoded cleanly.
func (r *Region) ParseAll(opts ...mcnbt.DecodeOption) ([]*mcnbt.Node, error) {
	out := make([]*mcnbt.Node, ChunksPerRegion)
	var m errors.M
	for i := range r.slots {
		if len(r.slots[i].raw) == 0 {
			continue
		}
		n, err := r.Chunk(i, opts...)
		if err != nil {
			m.Append(fmt.Errorf("slot %d: %w", i, err))
			continue
		}
		out[i] = n
	}
	return out, m.Err()
}
