// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cosnicolaou/mcnbt"
	"github.com/cosnicolaou/mcnbt/mca"
	"github.com/schollz/progressbar/v2"
	"golang.org/x/crypto/ssh/terminal"
)

func regionInspect(ctx context.Context, values interface{}, args []string) error {
	cl := values.(*regionFlags)
	r, err := mca.ReadFile(ctx, args[0])
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if cl.Progress && terminal.IsTerminal(int(os.Stdout.Fd())) {
		bar = progressbar.New(mca.ChunksPerRegion)
	}

	populated := 0
	for i := 0; i < mca.ChunksPerRegion; i++ {
		if bar != nil {
			bar.Add(1)
		}
		if !r.HasChunk(i) {
			continue
		}
		populated++
		_, comp, _ := r.Raw(i)
		fmt.Printf("slot %4d: %6d bytes, compression=%d, timestamp=%d\n",
			i, r.RawSize(i), comp, r.Timestamp(i))
	}
	if bar != nil {
		fmt.Fprintln(os.Stdout)
	}
	fmt.Printf("%d/%d slots populated\n", populated, mca.ChunksPerRegion)
	return nil
}

func regionDump(ctx context.Context, values interface{}, args []string) error {
	cl := values.(*regionDumpFlags)
	r, err := mca.ReadFile(ctx, args[0])
	if err != nil {
		return err
	}
	idx := mca.Index(cl.X, cl.Z)
	if !r.HasChunk(idx) {
		return fmt.Errorf("no chunk at (%d,%d)", cl.X, cl.Z)
	}
	node, err := r.Chunk(idx)
	if err != nil {
		return err
	}
	fmt.Println(mcnbt.ToSNBT(node, snbtOptionsFrom(&cl.dumpFlags)...))
	return nil
}
