// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rle implements the run-length encoding codec of §4.4: a
// classifier that splits its input into maximal identical-symbol runs
// and maximal distinct-adjacent literal runs, each capped at 127 (the
// signed 8-bit positive maximum), written as (signed count, payload)
// chunks. This is the canonical binary-container semantics; it
// corrects the source's text-mode decoder, which read a single decimal
// digit and so capped runs at 9 (see §9 known defect 1).
package rle

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/afrlfff/textcodec/codecerr"
	"github.com/afrlfff/textcodec/internal/codepoint"
	"github.com/afrlfff/textcodec/internal/ioutil"
)

const maxRun = 127

// chunk is one (signedCount, payload) record: count > 0 means count
// copies of payload[0]; count < 0 means the literal run payload.
type chunk struct {
	count   int8
	payload []rune
}

// classify splits seq into RLE chunks, grouping maximal identical runs
// (emitted as one or more +N chunks, N <= maxRun) and maximal
// distinct-adjacent literal runs (emitted as -N chunks, N <= maxRun).
func classify(seq []rune) []chunk {
	if len(seq) == 0 {
		return nil
	}

	var chunks []chunk
	var literal []rune

	flushLiteral := func() {
		if len(literal) == 0 {
			return
		}
		chunks = append(chunks, chunk{count: int8(-len(literal)), payload: append([]rune{}, literal...)})
		literal = literal[:0]
	}

	i := 0
	for i < len(seq) {
		j := i
		for j < len(seq) && seq[j] == seq[i] {
			j++
		}
		runLen := j - i
		if runLen > 1 {
			flushLiteral()
			for runLen > 0 {
				n := runLen
				if n > maxRun {
					n = maxRun
				}
				chunks = append(chunks, chunk{count: int8(n), payload: []rune{seq[i]}})
				runLen -= n
			}
		} else {
			literal = append(literal, seq[i])
			if len(literal) == maxRun {
				flushLiteral()
			}
		}
		i = j
	}
	flushLiteral()
	return chunks
}

// Encode reads UTF-8 text from inputPath and writes the RLE container to
// outputPath.
func Encode(inputPath, outputPath string) error {
	ctx := context.Background()
	in, err := ioutil.OpenInput(ctx, inputPath)
	if err != nil {
		return err
	}
	seq, err := ioutil.ReadAllCodePoints(in.Reader(ctx))
	if cerr := in.Close(ctx); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %v", codecerr.ErrIO, cerr)
	}
	if err != nil {
		return err
	}

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)

	if len(seq) == 0 {
		if err := ioutil.AppendU64(w, 0); err != nil {
			return err
		}
		return out.Close(ctx)
	}

	if err := ioutil.AppendU64(w, uint64(len(seq))); err != nil {
		return err
	}
	for _, c := range classify(seq) {
		if err := ioutil.AppendI8(w, c.count); err != nil {
			return err
		}
		if err := codepoint.EncodeSequence(w, c.payload); err != nil {
			return err
		}
	}
	return out.Close(ctx)
}

// Decode reads an RLE container from inputPath and writes the recovered
// UTF-8 text to outputPath.
func Decode(inputPath, outputPath string) error {
	ctx := context.Background()
	in, err := ioutil.OpenInput(ctx, inputPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx)
	r := bufio.NewReader(in.Reader(ctx))

	strLength, err := ioutil.ReadU64(r)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	var produced uint64
	for produced < strLength {
		count, err := ioutil.ReadI8(r)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: rle chunk count is zero", codecerr.ErrInvalidContainer)
		}
		if count > 0 {
			if produced+uint64(count) > strLength {
				return fmt.Errorf("%w: rle identical-run chunk overruns strLength", codecerr.ErrInvalidContainer)
			}
			cp, err := codepoint.ReadFrom(r)
			if err != nil {
				return err
			}
			b, _ := codepoint.Encode(cp)
			for i := int8(0); i < count; i++ {
				buf.Write(b)
			}
			produced += uint64(count)
		} else {
			n := int(-count)
			if produced+uint64(n) > strLength {
				return fmt.Errorf("%w: rle literal-run chunk overruns strLength", codecerr.ErrInvalidContainer)
			}
			seq, err := codepoint.DecodeSequence(r, n)
			if err != nil {
				return err
			}
			for _, cp := range seq {
				b, _ := codepoint.Encode(cp)
				buf.Write(b)
			}
			produced += uint64(n)
		}
	}

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	if _, err := out.Writer(ctx).Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", codecerr.ErrIO, err)
	}
	return out.Close(ctx)
}
