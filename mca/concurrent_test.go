// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mca

import (
	"context"
	"testing"

	"github.com/cosnicolaou/mcnbt"
)

func TestParseAllConcurrentMatchesSerial(t *testing.T) {
	r := New()
	for i := 0; i < 5; i++ {
		root := mcnbt.NewCompound("")
		_ = root.Append(mcnbt.NewInt("slot", int32(i)))
		if err := r.PutChunk(i, root, mcnbt.FramingRaw); err != nil {
			t.Fatal(err)
		}
	}

	serial, err := r.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}

	progress := make(chan Progress, 5)
	concurrent, err := r.ParseAllConcurrent(context.Background(), WithConcurrency(3), WithProgress(progress))
	close(progress)
	if err != nil {
		t.Fatalf("ParseAllConcurrent: %v", err)
	}

	seen := 0
	for range progress {
		seen++
	}
	if seen != 5 {
		t.Fatalf("expected 5 progress events, got %d", seen)
	}

	for i := 0; i < ChunksPerRegion; i++ {
		if !serial[i].Equal(concurrent[i]) {
			t.Fatalf("slot %d differs between serial and concurrent parse", i)
		}
	}
}
