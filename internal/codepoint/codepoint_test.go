// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package codepoint_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/afrlfff/textcodec/codecerr"
	"github.com/afrlfff/textcodec/internal/codepoint"
)

func TestRoundTripScalars(t *testing.T) {
	for _, cp := range []rune{
		0x00, 0x41, 0x7F, // 1 byte
		0x80, 0x7FF, // 2 byte
		0x800, 0xFFFF, // 3 byte
		0x10000, 0x10FFFF, // 4 byte
		'世', '界', '🎉',
	} {
		var buf bytes.Buffer
		if err := codepoint.WriteTo(&buf, cp); err != nil {
			t.Fatalf("WriteTo(%#x): %v", cp, err)
		}
		got, err := codepoint.ReadFrom(&buf)
		if err != nil {
			t.Fatalf("ReadFrom(%#x): %v", cp, err)
		}
		if got != cp {
			t.Errorf("got %#x, want %#x", got, cp)
		}
	}
}

func TestEncodeRejectsSurrogatesAndOutOfRange(t *testing.T) {
	for _, cp := range []rune{0xD800, 0xDFFF, 0x110000, -1} {
		if _, err := codepoint.Encode(cp); !errors.Is(err, codecerr.ErrInvalidUTF8) {
			t.Errorf("Encode(%#x): got %v, want ErrInvalidUTF8", cp, err)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	// leading byte of a 3-byte sequence with only one continuation byte.
	buf := bytes.NewReader([]byte{0xE4, 0xB8})
	if _, err := codepoint.ReadFrom(buf); !errors.Is(err, codecerr.ErrUnexpectedEOF) {
		t.Errorf("got %v, want ErrUnexpectedEOF", err)
	}
}

func TestDecodeInvalidContinuation(t *testing.T) {
	buf := bytes.NewReader([]byte{0xE4, 0x20, 0x80})
	if _, err := codepoint.ReadFrom(buf); !errors.Is(err, codecerr.ErrInvalidUTF8) {
		t.Errorf("got %v, want ErrInvalidUTF8", err)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	seq := []rune("héllo, 世界! 🎉")
	var buf bytes.Buffer
	if err := codepoint.EncodeSequence(&buf, seq); err != nil {
		t.Fatal(err)
	}
	got, err := codepoint.DecodeSequence(&buf, len(seq))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(seq) {
		t.Errorf("got %q, want %q", string(got), string(seq))
	}
}
