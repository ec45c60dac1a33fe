// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mca

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"cloudeng.io/errors"

	"github.com/cosnicolaou/mcnbt"
)

// Progress reports a single slot decoding successfully, for callers of
// ParseAllConcurrent that want to drive a progress indicator.
type Progress struct {
	Slot int
	Size int
}

type parseOpts struct {
	concurrency int
	progressCh  chan<- Progress
	decodeOpts  []mcnbt.DecodeOption
}

// ParseOption configures ParseAllConcurrent.
type ParseOption func(*parseOpts)

// WithConcurrency sets the number of worker goroutines decoding chunks
// in parallel. The default is runtime.GOMAXPROCS(-1).
func WithConcurrency(n int) ParseOption {
	return func(o *parseOpts) { o.concurrency = n }
}

// WithProgress sets a channel that receives a Progress value as each
// slot decodes successfully; a slot that fails to decode sends none.
// The caller must keep draining it; a full channel blocks
// ParseAllConcurrent's collection of results, and with it the workers.
func WithProgress(ch chan<- Progress) ParseOption {
	return func(o *parseOpts) { o.progressCh = ch }
}

// WithDecodeOptions forwards options to every per-slot mcnbt.Decode
// call (e.g. mcnbt.WithMaxDepth).
func WithDecodeOptions(opts ...mcnbt.DecodeOption) ParseOption {
	return func(o *parseOpts) { o.decodeOpts = opts }
}

type parseJob struct {
	slot int
	raw  []byte
}

type parseResult struct {
	slot int
	node *mcnbt.Node
	err  error
}

// ParseAllConcurrent decodes every populated slot the same way ParseAll
// does, but fans the work out across a bounded pool of goroutines
// (runtime.GOMAXPROCS(-1) by default). It exists for large regions
// where per-slot decode cost dominates and slots are independent of
// one another. The returned slice is identical to ParseAll's; the
// aggregated error names the same failing slots, but its component
// messages are ordered by worker scheduling rather than slot index and
// lack the "mca: decoding slot" prefix that ParseAll's carry.
//
// ctx cancellation stops dispatch of further jobs but does not abort
// in-flight decodes.
func (r *Region) ParseAllConcurrent(ctx context.Context, opts ...ParseOption) ([]*mcnbt.Node, error) {
	o := parseOpts{concurrency: runtime.GOMAXPROCS(-1)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	jobs := make(chan parseJob, o.concurrency)
	results := make(chan parseResult, o.concurrency)

	var workers sync.WaitGroup
	workers.Add(o.concurrency)
	for i := 0; i < o.concurrency; i++ {
		go func() {
			defer workers.Done()
			for job := range jobs {
				n, err := mcnbt.Decode(job.raw, o.decodeOpts...)
				if err != nil {
					err = fmt.Errorf("slot %d: %w", job.slot, err)
				}
				results <- parseResult{slot: job.slot, node: n, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < ChunksPerRegion; i++ {
			if len(r.slots[i].raw) == 0 {
				continue
			}
			select {
			case jobs <- parseJob{slot: i, raw: r.slots[i].raw}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	out := make([]*mcnbt.Node, ChunksPerRegion)
	var m errors.M
	for res := range results {
		if res.err != nil {
			m.Append(res.err)
			continue
		}
		out[res.slot] = res.node
		if o.progressCh != nil {
			o.progressCh <- Progress{Slot: res.slot, Size: r.RawSize(res.slot)}
		}
	}
	if ctx.Err() != nil {
		m.Append(ctx.Err())
	}
	return out, m.Err()
}
