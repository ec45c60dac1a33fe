// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command nbtutil dumps NBT files as SNBT, summarizes MCA region files,
// and dumps single chunks from them as SNBT. Files may be local, on S3, or any URL scheme registered
// with grailbio/base/file.
package main

import (
	"context"

	"cloudeng.io/cmdutil/subcmd"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
)

type dumpFlags struct {
	MaxLevel int    `subcmd:"max-level,-1,'clip SNBT output at this nesting depth; -1 for unlimited'"`
	Indent   string `subcmd:"indent,'  ','per-level indent string; empty for compact output'"`
}

type regionFlags struct {
	Progress bool `subcmd:"progress,true,'display a progress bar while scanning slots'"`
}

type regionDumpFlags struct {
	dumpFlags
	X int `subcmd:"x,0,'in-region chunk x coordinate (0-31)'"`
	Z int `subcmd:"z,0,'in-region chunk z coordinate (0-31)'"`
}

var cmdSet *subcmd.CommandSet

func init() {
	dumpCmd := subcmd.NewCommand("dump",
		subcmd.MustRegisterFlagStruct(&dumpFlags{}, nil, nil),
		dump, subcmd.ExactlyNumArguments(1))
	dumpCmd.Document(`decode an NBT file and print it as SNBT.`)

	regionCmd := subcmd.NewCommand("region",
		subcmd.MustRegisterFlagStruct(&regionFlags{}, nil, nil),
		regionInspect, subcmd.ExactlyNumArguments(1))
	regionCmd.Document(`summarize every populated chunk slot in an MCA region file.`)

	regionDumpCmd := subcmd.NewCommand("region-dump",
		subcmd.MustRegisterFlagStruct(&regionDumpFlags{}, nil, nil),
		regionDump, subcmd.ExactlyNumArguments(1))
	regionDumpCmd.Document(`decode a single chunk from an MCA region file and print it as SNBT.`)

	cmdSet = subcmd.NewCommandSet(dumpCmd, regionCmd, regionDumpCmd)
	cmdSet.Document(`inspect and convert Minecraft NBT, SNBT and MCA files. Files may be local, on S3 or a URL.`)

	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func main() {
	cmdSet.MustDispatch(context.Background())
}
