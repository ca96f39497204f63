// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"io"
)

// Writer compresses data into a classic .lzma stream. With an
// end-of-stream marker the header is written immediately and the data is
// compressed while it is written; the size field is set to all ones.
// Otherwise the uncompressed size must be known before the header can be
// written, so all data is buffered and compressed by Close.
type Writer struct {
	w   io.Writer
	enc *Encoder
	buf bytes.Buffer
	// pw and done are only used with an end-of-stream marker.
	pw     *io.PipeWriter
	done   chan error
	closed bool
}

// NewWriter creates a writer using the default configuration.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterConfig(w, nil)
}

// NewWriterConfig creates a writer for the given configuration. A nil
// configuration selects the defaults.
func NewWriterConfig(w io.Writer, cfg *EncoderConfig) (*Writer, error) {
	enc, err := NewEncoder(cfg)
	if err != nil {
		return nil, err
	}
	lw := &Writer{w: w, enc: enc}
	if enc.cfg.EOS {
		if err = enc.Properties().Write(w); err != nil {
			return nil, err
		}
		lw.startEncoder()
	}
	return lw, nil
}

// startEncoder runs the encoder in a goroutine reading from a pipe. An
// encoding error is returned by the following Write calls and by Close.
func (lw *Writer) startEncoder() {
	pr, pw := io.Pipe()
	lw.pw = pw
	lw.done = make(chan error, 1)
	go func() {
		err := lw.enc.Encode(lw.w, pr, nil)
		pr.CloseWithError(err)
		lw.done <- err
	}()
}

// Config returns the configuration of the writer.
func (lw *Writer) Config() EncoderConfig { return lw.enc.Config() }

// Write compresses the data in p or buffers it if the size of the
// stream is stored in the header.
func (lw *Writer) Write(p []byte) (n int, err error) {
	if lw.closed {
		return 0, errClosed
	}
	if lw.pw != nil {
		return lw.pw.Write(p)
	}
	return lw.buf.Write(p)
}

// Close finishes the stream. Without an end-of-stream marker it writes
// the header and compresses the buffered data. It doesn't close the
// underlying writer.
func (lw *Writer) Close() error {
	if lw.closed {
		return errClosed
	}
	lw.closed = true
	if lw.pw != nil {
		lw.pw.Close()
		return <-lw.done
	}
	h := lw.enc.Properties()
	h.Size = int64(lw.buf.Len())
	if err := h.Write(lw.w); err != nil {
		return err
	}
	err := lw.enc.Encode(lw.w, &lw.buf, nil)
	lw.buf = bytes.Buffer{}
	return err
}

// Compress reads all data from r and writes a classic .lzma stream to w.
// Without an end-of-stream marker the input is read into memory first to
// determine the size.
func Compress(w io.Writer, r io.Reader, cfg *EncoderConfig) error {
	enc, err := NewEncoder(cfg)
	if err != nil {
		return err
	}
	h := enc.Properties()
	if !enc.cfg.EOS {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		h.Size = int64(len(data))
		r = bytes.NewReader(data)
	}
	if err = h.Write(w); err != nil {
		return err
	}
	return enc.Encode(w, r, nil)
}
