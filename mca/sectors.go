// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mca

import (
	"fmt"

	"github.com/cosnicolaou/mcnbt"
	"github.com/cosnicolaou/mcnbt/internal/cursor"
)

// headerSectors is the number of SectorSize-sized sectors occupied by
// the offset table followed by the timestamp table, at the start of
// every region file (§4.8).
const headerSectors = 2

// ReadOption configures ReadRaw and ReadFile.
type ReadOption func(*readOptions)

type readOptions struct {
	skipChunkError bool
}

// WithSkipChunkError makes ReadRaw tolerant of per-slot corruption
// (§4.8 steps 2 and 4): an offset entry whose sector range exceeds the
// file, or a slot whose length/payload is short-read, is treated as
// absent instead of failing the whole parse. A slot whose compression
// type byte is not 2 (zlib) is no longer rejected either, but its
// payload is still read and stored as-is.
func WithSkipChunkError() ReadOption {
	return func(o *readOptions) { o.skipChunkError = true }
}

// ReadRaw decodes the on-disk region file layout from data: the
// 4 KiB offset table, the 4 KiB timestamp table, and the sector-aligned
// chunk payloads they point to. Each chunk payload is a 4-byte
// big-endian length (one greater than the payload that follows, to
// account for the compression-type byte), a 1-byte compression type,
// and the framed NBT bytes themselves. An empty offset entry (all
// zero) leaves the corresponding slot empty.
func (r *Region) ReadRaw(data []byte, opts ...ReadOption) error {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) < headerSectors*SectorSize {
		return &mcnbt.Error{Kind: mcnbt.InvalidData, Position: 0}
	}
	rd := cursor.NewReader(data[:SectorSize])
	type loc struct{ sector, count uint32 }
	var locs [ChunksPerRegion]loc
	for i := 0; i < ChunksPerRegion; i++ {
		v, err := rd.ReadU32()
		if err != nil {
			return fmt.Errorf("mca: reading offset table entry %d: %w", i, err)
		}
		locs[i] = loc{sector: v >> 8, count: v & 0xFF}
	}

	tr := cursor.NewReader(data[SectorSize : 2*SectorSize])
	var timestamps [ChunksPerRegion]uint32
	for i := 0; i < ChunksPerRegion; i++ {
		v, err := tr.ReadU32()
		if err != nil {
			return fmt.Errorf("mca: reading timestamp table entry %d: %w", i, err)
		}
		timestamps[i] = v
	}

	// clearOrFail reports the outcome of a per-slot read failure at pos:
	// nil means the caller should clear slot i and continue (skip_chunk_error
	// is set), a non-nil *Error means the whole parse must fail.
	clearOrFail := func(pos int) *mcnbt.Error {
		if o.skipChunkError {
			return nil
		}
		return &mcnbt.Error{Kind: mcnbt.InvalidData, Position: pos}
	}

	for i := 0; i < ChunksPerRegion; i++ {
		l := locs[i]
		if l.sector == 0 && l.count == 0 {
			r.slots[i] = slot{timestamp: timestamps[i]}
			continue
		}
		start := int(l.sector) * SectorSize
		end := start + int(l.count)*SectorSize
		if start < headerSectors*SectorSize || end > len(data) || start >= end {
			if err := clearOrFail(start); err != nil {
				return err
			}
			r.slots[i] = slot{timestamp: timestamps[i]}
			continue
		}
		cr := cursor.NewReader(data[start:end])
		length, err := cr.ReadU32()
		if err != nil {
			if ferr := clearOrFail(start); ferr != nil {
				return ferr
			}
			r.slots[i] = slot{timestamp: timestamps[i]}
			continue
		}
		if length == 0 {
			r.slots[i] = slot{timestamp: timestamps[i]}
			continue
		}
		compPos := start + cr.Position()
		compByte, err := cr.ReadU8()
		if err != nil {
			if ferr := clearOrFail(start); ferr != nil {
				return ferr
			}
			r.slots[i] = slot{timestamp: timestamps[i]}
			continue
		}
		if Compression(compByte) != CompressionZlib && !o.skipChunkError {
			return &mcnbt.Error{Kind: mcnbt.InvalidData, Position: compPos}
		}
		payloadLen := int(length) - 1
		payload, err := cr.ReadBytes(payloadLen)
		if err != nil {
			if ferr := clearOrFail(start); ferr != nil {
				return ferr
			}
			r.slots[i] = slot{timestamp: timestamps[i]}
			continue
		}
		r.slots[i] = slot{raw: payload, compression: Compression(compByte), timestamp: timestamps[i]}
	}
	return nil
}

// sectorsFor returns the number of SectorSize sectors needed to hold n
// payload bytes plus the 5-byte chunk header, rounding up.
func sectorsFor(n int) int {
	total := n + 5
	return (total + SectorSize - 1) / SectorSize
}

// WriteRaw serializes the region to the on-disk layout ReadRaw parses:
// header tables first, then each populated slot's payload packed
// sector-by-sector in slot order starting immediately after the
// header. Empty slots contribute a zero offset-table entry and occupy
// no payload sectors.
func (r *Region) WriteRaw() ([]byte, error) {
	type placed struct {
		sector, count int
	}
	var locs [ChunksPerRegion]placed
	nextSector := headerSectors
	totalPayloadSectors := 0
	for i := 0; i < ChunksPerRegion; i++ {
		s := r.slots[i]
		if len(s.raw) == 0 {
			continue
		}
		n := sectorsFor(len(s.raw))
		locs[i] = placed{sector: nextSector, count: n}
		nextSector += n
		totalPayloadSectors += n
	}

	buf := make([]byte, (headerSectors+totalPayloadSectors)*SectorSize)
	w := cursor.NewWriter(buf[:SectorSize])
	for i := 0; i < ChunksPerRegion; i++ {
		l := locs[i]
		v := uint32(l.sector)<<8 | uint32(l.count)
		if err := w.WriteU32(v); err != nil {
			return nil, fmt.Errorf("mca: writing offset table entry %d: %w", i, err)
		}
	}
	tw := cursor.NewWriter(buf[SectorSize : 2*SectorSize])
	for i := 0; i < ChunksPerRegion; i++ {
		if err := tw.WriteU32(r.slots[i].timestamp); err != nil {
			return nil, fmt.Errorf("mca: writing timestamp table entry %d: %w", i, err)
		}
	}

	for i := 0; i < ChunksPerRegion; i++ {
		s := r.slots[i]
		if len(s.raw) == 0 {
			continue
		}
		l := locs[i]
		start := l.sector * SectorSize
		end := start + l.count*SectorSize
		cw := cursor.NewWriter(buf[start:end])
		if err := cw.WriteU32(uint32(len(s.raw) + 1)); err != nil {
			return nil, fmt.Errorf("mca: writing slot %d payload length: %w", i, err)
		}
		if err := cw.WriteU8(byte(s.compression)); err != nil {
			return nil, fmt.Errorf("mca: writing slot %d compression byte: %w", i, err)
		}
		if err := cw.WriteBytes(s.raw); err != nil {
			return nil, fmt.Errorf("mca: writing slot %d payload: %w", i, err)
		}
		// Remaining bytes in the final sector stay zero, matching the
		// padding Minecraft itself writes.
	}
	return buf, nil
}
