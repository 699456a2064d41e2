// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package ioutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/grailbio/base/file"

	"github.com/afrlfff/textcodec/codecerr"
)

// OpenInput opens path for reading, local or remote (e.g. s3://bucket/key),
// via grailbio/base/file the same way the teacher's cmd/pbzip2 does. Remote
// opens are retried with a bounded exponential backoff since they can fail
// transiently in ways a local os.Open never does.
func OpenInput(ctx context.Context, path string) (file.File, error) {
	if !isRemote(path) {
		f, err := file.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: open %v: %v", codecerr.ErrIO, path, err)
		}
		return f, nil
	}
	var f file.File
	op := func() error {
		var err error
		f, err = file.Open(ctx, path)
		return err
	}
	if err := backoff.Retry(op, retryPolicy()); err != nil {
		return nil, fmt.Errorf("%w: open %v: %v", codecerr.ErrIO, path, err)
	}
	return f, nil
}

// CreateOutput creates path for writing, local or remote.
func CreateOutput(ctx context.Context, path string) (file.File, error) {
	if !isRemote(path) {
		f, err := file.Create(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: create %v: %v", codecerr.ErrIO, path, err)
		}
		return f, nil
	}
	var f file.File
	op := func() error {
		var err error
		f, err = file.Create(ctx, path)
		return err
	}
	if err := backoff.Retry(op, retryPolicy()); err != nil {
		return nil, fmt.Errorf("%w: create %v: %v", codecerr.ErrIO, path, err)
	}
	return f, nil
}

func isRemote(path string) bool {
	return strings.Contains(path, "://")
}

func retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second
	return b
}
