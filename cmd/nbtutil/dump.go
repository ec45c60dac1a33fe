// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/cosnicolaou/mcnbt"
	"github.com/grailbio/base/file"
)

func readAll(ctx context.Context, name string) ([]byte, error) {
	f, err := file.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer f.Close(ctx)
	return ioutil.ReadAll(f.Reader(ctx))
}

func snbtOptionsFrom(cl *dumpFlags) []mcnbt.SNBTOption {
	opts := []mcnbt.SNBTOption{mcnbt.WithMaxLevel(cl.MaxLevel)}
	if cl.Indent != "" {
		opts = append(opts, mcnbt.WithIndent(cl.Indent))
	}
	return opts
}

func dump(ctx context.Context, values interface{}, args []string) error {
	cl := values.(*dumpFlags)
	data, err := readAll(ctx, args[0])
	if err != nil {
		return err
	}
	root, err := mcnbt.Decode(data)
	if err != nil {
		var nerr *mcnbt.Error
		if !errors.As(err, &nerr) || nerr.Kind != mcnbt.LeftoverData {
			return err
		}
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	fmt.Println(mcnbt.ToSNBT(root, snbtOptionsFrom(cl)...))
	return nil
}
