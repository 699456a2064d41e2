// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCodecCmd builds the "<name> encode <input> <output>" / "<name>
// decode <input> <output>" command pair for one codec.
func newCodecCmd(name string, funcs codecFuncs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Encode/decode with the %s codec", name),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "encode <input> <output>",
		Short: fmt.Sprintf("Encode UTF-8 text into a %s container", name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return funcs.Encode(args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "decode <input> <output>",
		Short: fmt.Sprintf("Decode a %s container back to UTF-8 text", name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return funcs.Decode(args[0], args[1])
		},
	})
	return cmd
}
