// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mca

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/grailbio/base/file"
)

// ReadFile reads the region file at name (a local path, or any URL
// scheme registered with grailbio/base/file, such as s3://) and parses
// it with ReadRaw. If name's base matches the r.<x>.<z>.mca naming
// convention, the returned Region carries that grid position.
func ReadFile(ctx context.Context, name string, opts ...ReadOption) (*Region, error) {
	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("mca: opening %s: %w", name, err)
	}
	defer f.Close(ctx)

	data, err := ioutil.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, fmt.Errorf("mca: reading %s: %w", name, err)
	}

	var r *Region
	if x, z, ok := PositionFromName(filepath.Base(name)); ok {
		r = NewWithPosition(x, z)
	} else {
		r = New()
	}
	if err := r.ReadRaw(data, opts...); err != nil {
		return nil, fmt.Errorf("mca: parsing %s: %w", name, err)
	}
	return r, nil
}

// WriteFile serializes r with WriteRaw and writes the result to name,
// which may again be a local path or a registered URL scheme.
func WriteFile(ctx context.Context, name string, r *Region) error {
	data, err := r.WriteRaw()
	if err != nil {
		return fmt.Errorf("mca: serializing %s: %w", name, err)
	}
	f, err := file.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("mca: creating %s: %w", name, err)
	}
	defer f.Close(ctx)
	if _, err := f.Writer(ctx).Write(data); err != nil {
		return fmt.Errorf("mca: writing %s: %w", name, err)
	}
	return nil
}
