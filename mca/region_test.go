// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mca

import (
	"testing"

	"github.com/cosnicolaou/mcnbt"
)

func TestEmptyRegionRoundTrip(t *testing.T) {
	r := New()
	data, err := r.WriteRaw()
	if err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if len(data) != headerSectors*SectorSize {
		t.Fatalf("empty region should be exactly the header, got %d bytes", len(data))
	}

	got := New()
	if err := got.ReadRaw(data); err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	for i := 0; i < ChunksPerRegion; i++ {
		if got.HasChunk(i) {
			t.Fatalf("slot %d should be empty", i)
		}
	}
}

func TestPutChunkAndReadBackRoundTrip(t *testing.T) {
	r := New()
	root := mcnbt.NewCompound("")
	_ = root.Append(mcnbt.NewInt("x", 7))
	if err := r.PutChunk(Index(1, 1), root, mcnbt.FramingZlib); err != nil {
		t.Fatalf("PutChunk: %v", err)
	}
	if err := r.SetTimestamp(Index(1, 1), 1700000000); err != nil {
		t.Fatal(err)
	}

	data, err := r.WriteRaw()
	if err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}

	got := New()
	if err := got.ReadRaw(data); err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	idx := Index(1, 1)
	if !got.HasChunk(idx) {
		t.Fatal("expected chunk at (1,1)")
	}
	if got.Timestamp(idx) != 1700000000 {
		t.Fatalf("timestamp = %d", got.Timestamp(idx))
	}
	chunk, err := got.Chunk(idx)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if !root.Equal(chunk) {
		t.Fatal("chunk NBT did not round trip")
	}
}

func TestIndexWrapsNegativeCoordinates(t *testing.T) {
	if Index(-1, -1) != Index(31, 31) {
		t.Fatalf("Index(-1,-1)=%d, Index(31,31)=%d", Index(-1, -1), Index(31, 31))
	}
}

func TestPositionFromName(t *testing.T) {
	x, z, ok := PositionFromName("r.3.-7.mca")
	if !ok || x != 3 || z != -7 {
		t.Fatalf("got x=%d z=%d ok=%v", x, z, ok)
	}
	if _, _, ok := PositionFromName("not-a-region-file.txt"); ok {
		t.Fatal("expected no match")
	}
}

func TestParseAllAggregatesPerSlotErrors(t *testing.T) {
	r := New()
	good := mcnbt.NewCompound("")
	_ = good.Append(mcnbt.NewInt("ok", 1))
	if err := r.PutChunk(0, good, mcnbt.FramingRaw); err != nil {
		t.Fatal(err)
	}
	if err := r.SetRaw(1, []byte{0xFF, 0xFF, 0xFF}, CompressionUncompressed, 0); err != nil {
		t.Fatal(err)
	}

	nodes, err := r.ParseAll()
	if err == nil {
		t.Fatal("expected an aggregated error from the corrupt slot")
	}
	if nodes[0] == nil || !good.Equal(nodes[0]) {
		t.Fatal("good slot should still decode despite the corrupt one")
	}
	if nodes[1] != nil {
		t.Fatal("corrupt slot should decode to nil")
	}
}

func TestNewWithPosition(t *testing.T) {
	r := NewWithPosition(5, -2)
	x, z, ok := r.Position()
	if !ok || x != 5 || z != -2 {
		t.Fatalf("got x=%d z=%d ok=%v", x, z, ok)
	}
}
