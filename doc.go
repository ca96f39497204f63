// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzma implements the LZMA compression method.
//
// The Encoder and Decoder types work on raw range-coded streams whose
// properties are transmitted separately. The Reader and Writer types
// support the classic .lzma format with a 13-byte header consisting of
// the properties byte, the dictionary size and the uncompressed size.
// A Writer configured with an end-of-stream marker compresses while data
// is written; otherwise it needs to buffer the data to learn its size.
//
// The encoder uses binary-tree match finders and an optimal parser that
// selects the cheapest sequence of literals and matches for blocks of up
// to 4096 bytes.
package lzma
