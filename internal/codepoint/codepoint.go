// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package codepoint encodes and decodes individual Unicode scalar values
// between a byte stream and a 32-bit code point, per RFC 3629. It is the
// single I/O unit every higher codec in this module builds on. No BOM is
// emitted or consumed.
package codepoint

import (
	"fmt"
	"io"

	"github.com/afrlfff/textcodec/codecerr"
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	maxScalar    = 0x10FFFF
)

// Valid reports whether cp is a legal Unicode scalar value: in
// [0, 0x10FFFF] and outside the surrogate range [0xD800, 0xDFFF].
func Valid(cp rune) bool {
	if cp < 0 || cp > maxScalar {
		return false
	}
	if cp >= surrogateMin && cp <= surrogateMax {
		return false
	}
	return true
}

// Encode returns the 1-4 byte UTF-8 encoding of cp.
func Encode(cp rune) ([]byte, error) {
	if !Valid(cp) {
		return nil, fmt.Errorf("%w: code point %#x out of range", codecerr.ErrInvalidUTF8, cp)
	}
	switch {
	case cp <= 0x7F:
		return []byte{byte(cp)}, nil
	case cp <= 0x7FF:
		return []byte{
			0xC0 | byte(cp>>6),
			0x80 | byte(cp&0x3F),
		}, nil
	case cp <= 0xFFFF:
		return []byte{
			0xE0 | byte(cp>>12),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}, nil
	default:
		return []byte{
			0xF0 | byte(cp>>18),
			0x80 | byte((cp>>12)&0x3F),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}, nil
	}
}

// WriteTo writes the UTF-8 encoding of cp to w.
func WriteTo(w io.Writer, cp rune) error {
	b, err := Encode(cp)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: %v", codecerr.ErrIO, err)
	}
	return nil
}

// continuationLen returns the total byte length of the scalar implied by
// the leading byte, or 0 if lead is not a valid UTF-8 leading byte.
func continuationLen(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// ReadFrom reads one scalar value from r.
func ReadFrom(r io.ByteReader) (rune, error) {
	lead, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", codecerr.ErrUnexpectedEOF, err)
	}
	return DecodeContinuation(lead, r)
}

// DecodeContinuation decodes a scalar value whose leading byte has already
// been read (as lead), consuming any remaining continuation bytes from r.
// Callers that need to distinguish "clean end of stream" from "truncated
// mid-scalar" read the leading byte themselves and only call this once
// they know a scalar is starting.
func DecodeContinuation(lead byte, r io.ByteReader) (rune, error) {
	n := continuationLen(lead)
	if n == 0 {
		return 0, fmt.Errorf("%w: invalid utf-8 leading byte %#x", codecerr.ErrInvalidUTF8, lead)
	}
	if n == 1 {
		return rune(lead), nil
	}
	cp := rune(lead & (0xFF >> uint(n+1)))
	for i := 1; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: truncated utf-8 sequence: %v", codecerr.ErrUnexpectedEOF, err)
		}
		if b&0xC0 != 0x80 {
			return 0, fmt.Errorf("%w: invalid utf-8 continuation byte %#x", codecerr.ErrInvalidUTF8, b)
		}
		cp = cp<<6 | rune(b&0x3F)
	}
	if !Valid(cp) {
		return 0, fmt.Errorf("%w: decoded code point %#x out of range", codecerr.ErrInvalidUTF8, cp)
	}
	return cp, nil
}

// EncodeSequence writes every scalar in seq to w, in order.
func EncodeSequence(w io.Writer, seq []rune) error {
	for _, cp := range seq {
		if err := WriteTo(w, cp); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSequence reads exactly length scalars from r.
func DecodeSequence(r io.ByteReader, length int) ([]rune, error) {
	seq := make([]rune, 0, length)
	for i := 0; i < length; i++ {
		cp, err := ReadFrom(r)
		if err != nil {
			return nil, err
		}
		seq = append(seq, cp)
	}
	return seq, nil
}
