// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package ioutil provides the binary I/O primitives every codec container
// is built from: fixed-width little-endian integer read/append, whole-file
// code point ingestion, and location-transparent file open/create so a
// codec's Encode/Decode can be pointed at a local path or a remote one
// (e.g. s3://...) without knowing the difference.
package ioutil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/afrlfff/textcodec/codecerr"
	"github.com/afrlfff/textcodec/internal/codepoint"
)

func wrapReadErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", codecerr.ErrUnexpectedEOF, err)
	}
	return fmt.Errorf("%w: %v", codecerr.ErrIO, err)
}

func wrapWriteErr(err error) error {
	return fmt.Errorf("%w: %v", codecerr.ErrIO, err)
}

// ReadU8 reads an unsigned 8-bit integer.
func ReadU8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapReadErr(err)
	}
	return b[0], nil
}

// ReadI8 reads a signed 8-bit integer.
func ReadI8(r io.Reader) (int8, error) {
	v, err := ReadU8(r)
	return int8(v), err
}

// ReadU16 reads an unsigned 16-bit little-endian integer.
func ReadU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapReadErr(err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadI16 reads a signed 16-bit little-endian integer.
func ReadI16(r io.Reader) (int16, error) {
	v, err := ReadU16(r)
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit little-endian integer.
func ReadU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapReadErr(err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadI32 reads a signed 32-bit little-endian integer.
func ReadI32(r io.Reader) (int32, error) {
	v, err := ReadU32(r)
	return int32(v), err
}

// ReadU64 reads an unsigned 64-bit little-endian integer.
func ReadU64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, wrapReadErr(err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadI64 reads a signed 64-bit little-endian integer.
func ReadI64(r io.Reader) (int64, error) {
	v, err := ReadU64(r)
	return int64(v), err
}

// AppendU8 appends an unsigned 8-bit integer.
func AppendU8(w io.Writer, v uint8) error {
	if _, err := w.Write([]byte{v}); err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

// AppendI8 appends a signed 8-bit integer.
func AppendI8(w io.Writer, v int8) error { return AppendU8(w, uint8(v)) }

// AppendU16 appends an unsigned 16-bit little-endian integer.
func AppendU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

// AppendI16 appends a signed 16-bit little-endian integer.
func AppendI16(w io.Writer, v int16) error { return AppendU16(w, uint16(v)) }

// AppendU32 appends an unsigned 32-bit little-endian integer.
func AppendU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

// AppendI32 appends a signed 32-bit little-endian integer.
func AppendI32(w io.Writer, v int32) error { return AppendU32(w, uint32(v)) }

// AppendU64 appends an unsigned 64-bit little-endian integer.
func AppendU64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return wrapWriteErr(err)
	}
	return nil
}

// AppendI64 appends a signed 64-bit little-endian integer.
func AppendI64(w io.Writer, v int64) error { return AppendU64(w, uint64(v)) }

// byteReader adapts an io.Reader to io.ByteReader without double-buffering
// when the reader already implements it (mirrors the newBitReader idiom
// the teacher uses to avoid an unnecessary bufio.Reader wrap).
func byteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &singleByteReader{r: r}
}

type singleByteReader struct {
	r io.Reader
}

func (s *singleByteReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadAllCodePoints decodes every remaining UTF-8 scalar from r.
func ReadAllCodePoints(r io.Reader) ([]rune, error) {
	br := byteReader(r)
	var seq []rune
	for {
		lead, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break // clean end of stream between scalars.
			}
			return nil, wrapReadErr(err)
		}
		cp, err := codepoint.DecodeContinuation(lead, br)
		if err != nil {
			return nil, err
		}
		seq = append(seq, cp)
	}
	return seq, nil
}
