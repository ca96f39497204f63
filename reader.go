// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"io"
)

// Reader decompresses a classic .lzma stream. The decoding runs in a
// separate goroutine that is stopped by Close or when the stream has
// been read completely.
type Reader struct {
	Header
	pr *io.PipeReader
}

// NewReader reads the header of the stream from r and returns a reader
// for the uncompressed data.
func NewReader(r io.Reader) (lr *Reader, err error) {
	return NewReaderConfig(r, nil)
}

// NewReaderConfig works like NewReader but uses the decoder configuration
// to limit the accepted dictionary size.
func NewReaderConfig(r io.Reader, cfg *DecoderConfig) (lr *Reader, err error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	d, err := NewDecoderConfig(h.appendProperties(nil), cfg)
	if err != nil {
		return nil, err
	}
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(d.Decode(pw, r, h.Size))
	}()
	return &Reader{Header: h, pr: pr}, nil
}

// Read reads uncompressed data. It returns io.EOF after the complete
// stream has been decoded.
func (lr *Reader) Read(p []byte) (n int, err error) {
	return lr.pr.Read(p)
}

// Close stops the decoding. It doesn't close the underlying reader.
func (lr *Reader) Close() error {
	return lr.pr.Close()
}

// Decompress reads a classic .lzma stream from r and writes the
// uncompressed data to w.
func Decompress(w io.Writer, r io.Reader) error {
	return DecompressConfig(w, r, nil)
}

// DecompressConfig works like Decompress with a decoder configuration.
func DecompressConfig(w io.Writer, r io.Reader, cfg *DecoderConfig) error {
	h, err := ReadHeader(r)
	if err != nil {
		return err
	}
	d, err := NewDecoderConfig(h.appendProperties(nil), cfg)
	if err != nil {
		return err
	}
	return d.Decode(w, r, h.Size)
}
