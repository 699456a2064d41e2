// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package ha implements the static per-block Huffman codec of §4.6.
// Input is partitioned into blocks that grow until either 4096 code
// points have accumulated or the next symbol would push the block's
// distinct alphabet past 255 (the on-disk alphabet-length field is a
// single byte, so a block's alphabet must fit in it). Each block
// carries its own Huffman tree, rebuilt by the decoder from the
// per-symbol code lengths and packed code bits in the block header.
package ha

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/afrlfff/textcodec/codecerr"
	"github.com/afrlfff/textcodec/internal/codepoint"
	"github.com/afrlfff/textcodec/internal/huffman"
	"github.com/afrlfff/textcodec/internal/ioutil"
	"github.com/afrlfff/textcodec/internal/textutil"
)

const (
	maxBlockSymbols  = 4096
	maxBlockAlphabet = 255
)

// splitBlocks partitions seq into blocks honouring maxBlockSymbols and
// maxBlockAlphabet.
func splitBlocks(seq []rune) [][]rune {
	if len(seq) == 0 {
		return nil
	}
	var blocks [][]rune
	start := 0
	for start < len(seq) {
		seen := make(map[rune]struct{})
		end := start
		for end < len(seq) && end-start < maxBlockSymbols {
			if _, ok := seen[seq[end]]; !ok {
				if len(seen) == maxBlockAlphabet {
					break
				}
				seen[seq[end]] = struct{}{}
			}
			end++
		}
		blocks = append(blocks, seq[start:end])
		start = end
	}
	return blocks
}

// Encode reads UTF-8 text from inputPath and writes the HA container to
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

	if err := ioutil.AppendU64(w, uint64(len(seq))); err != nil {
		return err
	}

	for _, block := range splitBlocks(seq) {
		if err := encodeBlock(w, block); err != nil {
			return err
		}
	}
	return out.Close(ctx)
}

func encodeBlock(w io.Writer, symbols []rune) error {
	alphabet := textutil.Alphabet(symbols)
	freq := textutil.FrequencyMap(alphabet, symbols)

	syms := make([]huffman.Symbol, len(alphabet))
	for i, c := range alphabet {
		syms[i] = huffman.Symbol{CP: c, Freq: freq[c]}
	}
	sort.SliceStable(syms, func(i, j int) bool { return syms[i].Freq < syms[j].Freq })
	root := huffman.BuildTree(syms)
	codes := huffman.CodeMap(root, len(alphabet))

	if len(alphabet) > maxBlockAlphabet {
		return fmt.Errorf("%w: ha block alphabet exceeds %d symbols", codecerr.ErrInvalidContainer, maxBlockAlphabet)
	}
	if err := ioutil.AppendU8(w, uint8(len(alphabet))); err != nil {
		return err
	}
	if err := codepoint.EncodeSequence(w, alphabet); err != nil {
		return err
	}
	for _, c := range alphabet {
		code := codes[c]
		if len(code) > 255 {
			return fmt.Errorf("%w: ha code length exceeds 255 bits", codecerr.ErrInvalidContainer)
		}
		if err := ioutil.AppendU8(w, uint8(len(code))); err != nil {
			return err
		}
		var bw ioutil.BitWriter
		bw.WriteCode(code)
		if _, err := w.Write(bw.Bytes()); err != nil {
			return fmt.Errorf("%w: %v", codecerr.ErrIO, err)
		}
	}

	if err := ioutil.AppendU32(w, uint32(len(symbols))); err != nil {
		return err
	}
	var payload ioutil.BitWriter
	for _, c := range symbols {
		payload.WriteCode(codes[c])
	}
	if err := ioutil.AppendU64(w, payload.Bits()); err != nil {
		return err
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", codecerr.ErrIO, err)
	}
	return nil
}

// Decode reads an HA container from inputPath and writes the recovered
// UTF-8 text to outputPath.
func Decode(inputPath, outputPath string) error {
	ctx := context.Background()
	in, err := ioutil.OpenInput(ctx, inputPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx)
	r := bufio.NewReader(in.Reader(ctx))

	totalLength, err := ioutil.ReadU64(r)
	if err != nil {
		return err
	}

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)

	var decoded uint64
	for decoded < totalLength {
		symbols, err := decodeBlock(r)
		if err != nil {
			return err
		}
		if err := codepoint.EncodeSequence(w, symbols); err != nil {
			return err
		}
		decoded += uint64(len(symbols))
	}
	return out.Close(ctx)
}

// huffmanNode is the decode-side mirror of huffman.Node, rebuilt from
// the block header's explicit codes rather than frequencies.
type huffmanNode struct {
	cp          rune
	leaf        bool
	left, right *huffmanNode
}

func insertCode(root *huffmanNode, code string, cp rune) {
	n := root
	for i := 0; i < len(code); i++ {
		if code[i] == '0' {
			if n.left == nil {
				n.left = &huffmanNode{}
			}
			n = n.left
		} else {
			if n.right == nil {
				n.right = &huffmanNode{}
			}
			n = n.right
		}
	}
	n.leaf = true
	n.cp = cp
}

func decodeBlock(r *bufio.Reader) ([]rune, error) {
	alphabetLength, err := ioutil.ReadU8(r)
	if err != nil {
		return nil, err
	}
	alphabet, err := codepoint.DecodeSequence(r, int(alphabetLength))
	if err != nil {
		return nil, err
	}

	root := &huffmanNode{}
	var singleSymbol rune
	singleSymbolBlock := alphabetLength == 1
	for _, c := range alphabet {
		codeLength, err := ioutil.ReadU8(r)
		if err != nil {
			return nil, err
		}
		nbytes := (int(codeLength) + 7) / 8
		raw := make([]byte, nbytes)
		if nbytes > 0 {
			if _, err := io.ReadFull(r, raw); err != nil {
				return nil, fmt.Errorf("%w: %v", codecerr.ErrUnexpectedEOF, err)
			}
		}
		if singleSymbolBlock {
			singleSymbol = c
			continue
		}
		br := ioutil.NewBitReader(raw)
		var code []byte
		for i := 0; i < int(codeLength); i++ {
			bit, err := br.ReadBit()
			if err != nil {
				return nil, err
			}
			if bit == 0 {
				code = append(code, '0')
			} else {
				code = append(code, '1')
			}
		}
		insertCode(root, string(code), c)
	}

	blockSymbolCount, err := ioutil.ReadU32(r)
	if err != nil {
		return nil, err
	}
	bitCount, err := ioutil.ReadU64(r)
	if err != nil {
		return nil, err
	}
	payloadBytes := make([]byte, (bitCount+7)/8)
	if len(payloadBytes) > 0 {
		if _, err := io.ReadFull(r, payloadBytes); err != nil {
			return nil, fmt.Errorf("%w: %v", codecerr.ErrUnexpectedEOF, err)
		}
	}

	symbols := make([]rune, 0, blockSymbolCount)
	if singleSymbolBlock {
		for i := uint32(0); i < blockSymbolCount; i++ {
			symbols = append(symbols, singleSymbol)
		}
		return symbols, nil
	}

	br := ioutil.NewBitReader(payloadBytes)
	for i := uint32(0); i < blockSymbolCount; i++ {
		n := root
		for !n.leaf {
			bit, err := br.ReadBit()
			if err != nil {
				return nil, err
			}
			if bit == 0 {
				n = n.left
			} else {
				n = n.right
			}
			if n == nil {
				return nil, fmt.Errorf("%w: ha bit stream diverges from implied tree", codecerr.ErrInvalidContainer)
			}
		}
		symbols = append(symbols, n.cp)
	}
	return symbols, nil
}
