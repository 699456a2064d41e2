// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/spf13/cobra"
)

func init() {
	// Registered once, at process start, the same way cmd/pbzip2 does it:
	// every codec's Encode/Decode opens paths through internal/ioutil,
	// which delegates to grailbio/base/file, so an s3:// path works
	// without any codec package knowing S3 exists.
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(
			s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "textcodec",
		Short:         "Lossless text compression codecs (RLE, MTF, BWT, AC, HA)",
		Long:          `textcodec encodes and decodes UTF-8 text files using the RLE, MTF, BWT, AC and HA codecs, to and from their self-describing binary containers. Input and output paths may be local or s3://.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, name := range codecOrder {
		root.AddCommand(newCodecCmd(name, registry[name]))
	}
	root.AddCommand(newBatchCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "textcodec:", err)
		os.Exit(1)
	}
}
