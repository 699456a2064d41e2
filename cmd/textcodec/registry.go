// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command textcodec is the CLI front end over the codec packages: one
// encode/decode subcommand pair per codec, plus a batch subcommand that
// walks a directory the way the original tool's EncodeAll/DecodeAll did.
// Paths may be local or, via github.com/grailbio/base/file, an s3://
// URI; that location-transparency is registered once in main.go.
package main

import (
	"github.com/afrlfff/textcodec/codec/ac"
	"github.com/afrlfff/textcodec/codec/bwt"
	"github.com/afrlfff/textcodec/codec/ha"
	"github.com/afrlfff/textcodec/codec/mtf"
	"github.com/afrlfff/textcodec/codec/rle"
)

// codecFuncs is the capability set every codec package exposes: a
// matched Encode/Decode pair over (inputPath, outputPath). §9 re-expresses
// the source's FileCodec base class as exactly this shape rather than a
// subclass hierarchy.
type codecFuncs struct {
	Encode func(inputPath, outputPath string) error
	Decode func(inputPath, outputPath string) error
}

// registry lists every codec this binary can dispatch to, keyed by the
// short name used on the command line (also the on-disk container's
// conventional file extension, e.g. "in.rle").
var registry = map[string]codecFuncs{
	"rle": {Encode: rle.Encode, Decode: rle.Decode},
	"mtf": {Encode: mtf.Encode, Decode: mtf.Decode},
	"bwt": {Encode: bwt.Encode, Decode: bwt.Decode},
	"ac":  {Encode: ac.Encode, Decode: ac.Decode},
	"ha":  {Encode: ha.Encode, Decode: ha.Decode},
}

// codecOrder fixes iteration order for anything that lists every codec
// (help text, the root command's subcommand registration) so output is
// deterministic across runs.
var codecOrder = []string{"rle", "mtf", "bwt", "ac", "ha"}
