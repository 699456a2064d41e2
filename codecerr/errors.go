// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package codecerr defines the error kinds shared by every codec package.
// Call sites use errors.Is against the sentinels below rather than
// matching on formatted strings.
package codecerr

import "errors"

var (
	// ErrIO is returned for failures opening, reading or writing a file.
	ErrIO = errors.New("textcodec: io error")

	// ErrUnexpectedEOF is returned by binary readers and indicates a
	// truncated container.
	ErrUnexpectedEOF = errors.New("textcodec: unexpected eof")

	// ErrInvalidUTF8 is returned by the UTF-8 scalar decoder.
	ErrInvalidUTF8 = errors.New("textcodec: invalid utf-8")

	// ErrInvalidContainer is returned when a codec's binary header or
	// framing is structurally inconsistent (bad length, bad count).
	ErrInvalidContainer = errors.New("textcodec: invalid container")

	// ErrPrecisionFailure is returned by AC decode when the stored
	// interval midpoint falls outside the interval the decoder
	// reconstructs; it indicates a platform-precision defect rather
	// than a malformed file.
	ErrPrecisionFailure = errors.New("textcodec: arithmetic coding precision failure")

	// ErrEmptyInput is returned by codecs whose documented policy is to
	// reject zero-length input rather than emit an empty container.
	ErrEmptyInput = errors.New("textcodec: empty input")
)
