// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package mtf implements the move-to-front codec of §4.5: each code
// point is replaced by its current position in a shifting alphabet
// list, and that symbol is then moved to the front of the list. The
// index width on disk is chosen from the alphabet size (u8 up to 256
// symbols, u16 up to 65536, u32 beyond), mirroring CodecMTF.h.
package mtf

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/afrlfff/textcodec/codecerr"
	"github.com/afrlfff/textcodec/internal/codepoint"
	"github.com/afrlfff/textcodec/internal/ioutil"
	"github.com/afrlfff/textcodec/internal/textutil"
)

// shift moves alphabet[index] to the front, preserving the relative
// order of every other entry.
func shift(alphabet []rune, index int) {
	c := alphabet[index]
	copy(alphabet[1:index+1], alphabet[0:index])
	alphabet[0] = c
}

// Encode reads UTF-8 text from inputPath and writes the MTF container to
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

	sortedAlphabet := textutil.Alphabet(seq)
	if len(sortedAlphabet) > 1<<32-1 {
		return fmt.Errorf("%w: alphabet too large for a 32-bit length field", codecerr.ErrInvalidContainer)
	}

	moving := append([]rune{}, sortedAlphabet...)
	codes := make([]uint32, len(seq))
	for i, cp := range seq {
		idx := textutil.IndexOfOrdered(moving, cp)
		codes[i] = uint32(idx)
		shift(moving, idx)
	}

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)

	if err := ioutil.AppendU32(w, uint32(len(sortedAlphabet))); err != nil {
		return err
	}
	if err := codepoint.EncodeSequence(w, sortedAlphabet); err != nil {
		return err
	}
	if err := ioutil.AppendU64(w, uint64(len(seq))); err != nil {
		return err
	}
	for _, c := range codes {
		if err := writeIndex(w, len(sortedAlphabet), c); err != nil {
			return err
		}
	}
	return out.Close(ctx)
}

// Decode reads an MTF container from inputPath and writes the recovered
// UTF-8 text to outputPath.
func Decode(inputPath, outputPath string) error {
	ctx := context.Background()
	in, err := ioutil.OpenInput(ctx, inputPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx)
	r := bufio.NewReader(in.Reader(ctx))

	alphabetLength, err := ioutil.ReadU32(r)
	if err != nil {
		return err
	}
	alphabet, err := codepoint.DecodeSequence(r, int(alphabetLength))
	if err != nil {
		return err
	}
	strLength, err := ioutil.ReadU64(r)
	if err != nil {
		return err
	}

	moving := append([]rune{}, alphabet...)
	decoded := make([]rune, 0, strLength)
	for i := uint64(0); i < strLength; i++ {
		idx, err := readIndex(r, int(alphabetLength))
		if err != nil {
			return err
		}
		if idx >= uint32(len(moving)) {
			return fmt.Errorf("%w: mtf index %d out of range for alphabet of size %d", codecerr.ErrInvalidContainer, idx, len(moving))
		}
		decoded = append(decoded, moving[idx])
		shift(moving, int(idx))
	}

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)
	if err := codepoint.EncodeSequence(w, decoded); err != nil {
		return err
	}
	return out.Close(ctx)
}

func writeIndex(w io.Writer, alphabetLength int, v uint32) error {
	switch {
	case alphabetLength <= 256:
		return ioutil.AppendU8(w, uint8(v))
	case alphabetLength <= 65536:
		return ioutil.AppendU16(w, uint16(v))
	default:
		return ioutil.AppendU32(w, v)
	}
}

func readIndex(r *bufio.Reader, alphabetLength int) (uint32, error) {
	switch {
	case alphabetLength <= 256:
		v, err := ioutil.ReadU8(r)
		return uint32(v), err
	case alphabetLength <= 65536:
		v, err := ioutil.ReadU16(r)
		return uint32(v), err
	default:
		return ioutil.ReadU32(r)
	}
}
