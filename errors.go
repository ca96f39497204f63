// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "errors"

// Errors returned for corrupted or inconsistent LZMA data.
var (
	// ErrHeader indicates an invalid properties header.
	ErrHeader = errors.New("lzma: invalid header")
	// ErrFirstSymbol indicates that the stream doesn't start with a
	// literal.
	ErrFirstSymbol = errors.New("lzma: stream doesn't start with a literal")
	// ErrDistance indicates a match distance outside of the dictionary
	// or the data produced so far.
	ErrDistance = errors.New("lzma: match distance out of range")
	// ErrUnexpectedEOS indicates an end-of-stream marker that has been
	// found before the uncompressed size has been reached.
	ErrUnexpectedEOS = errors.New("lzma: unexpected end-of-stream marker")
	// ErrNoEOS indicates a stream without size that ends without an
	// end-of-stream marker.
	ErrNoEOS = errors.New("lzma: missing end-of-stream marker")
	// ErrMatchOverrun indicates a match that extends beyond the
	// uncompressed size.
	ErrMatchOverrun = errors.New("lzma: match exceeds uncompressed size")
	// ErrDictCap indicates a dictionary size larger than the limit of
	// the decoder configuration.
	ErrDictCap = errors.New("lzma: dictionary size exceeds limit")
)

// errClosed is returned for operations on closed readers and writers.
var errClosed = errors.New("lzma: already closed")
