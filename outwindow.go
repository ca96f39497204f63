// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"io"

	"github.com/ulikunitz/lz"
)

// outWindow is the dictionary of the decoder. It is a circular buffer
// whose content is written to w whenever the buffer end is reached.
type outWindow struct {
	buf       []byte
	pos       uint32
	streamPos uint32
	w         io.Writer
	// number of bytes provided by train that may be referenced
	trainSize uint32
}

// create allocates the buffer. The content of an existing buffer of the
// same size is kept.
func (ow *outWindow) create(size uint32) {
	if uint32(len(ow.buf)) != size {
		ow.buf = make([]byte, size)
	}
	ow.pos = 0
	ow.streamPos = 0
}

// init sets the writer. Without solid the dictionary content will be
// ignored.
func (ow *outWindow) init(w io.Writer, solid bool) {
	if ow.buf == nil {
		panic("lzma: output window not created")
	}
	ow.w = w
	if !solid {
		ow.pos = 0
		ow.streamPos = 0
		ow.trainSize = 0
	}
}

// train fills the dictionary with the trailing bytes of r. The bytes are
// not written to the output.
func (ow *outWindow) train(r io.Reader) error {
	size := uint32(len(ow.buf))
	ow.pos = 0
	var total int64
	zeroReads := 0
	for {
		n, err := r.Read(ow.buf[ow.pos:])
		ow.pos += uint32(n)
		total += int64(n)
		if ow.pos == size {
			ow.pos = 0
		}
		if n == 0 && err == nil {
			zeroReads++
			if zeroReads >= maxZeroReads {
				return io.ErrNoProgress
			}
		} else {
			zeroReads = 0
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
	}
	ow.streamPos = ow.pos
	if total < int64(size) {
		ow.trainSize = uint32(total)
	} else {
		ow.trainSize = size
	}
	return nil
}

// flush writes the pending bytes to the writer.
func (ow *outWindow) flush() error {
	n := ow.pos - ow.streamPos
	if n == 0 {
		return nil
	}
	if ow.w == nil {
		return errors.New("lzma: output window has no writer")
	}
	if _, err := ow.w.Write(ow.buf[ow.streamPos:ow.pos]); err != nil {
		return err
	}
	if ow.pos >= uint32(len(ow.buf)) {
		ow.pos = 0
	}
	ow.streamPos = ow.pos
	return nil
}

// putByte appends a single byte.
func (ow *outWindow) putByte(c byte) error {
	ow.buf[ow.pos] = c
	ow.pos++
	if ow.pos >= uint32(len(ow.buf)) {
		return ow.flush()
	}
	return nil
}

// getByte returns the byte at distance dist+1 behind the current
// position.
func (ow *outWindow) getByte(dist uint32) byte {
	i := ow.pos - dist - 1
	if i >= uint32(len(ow.buf)) {
		i += uint32(len(ow.buf))
	}
	return ow.buf[i]
}

// copyBlock copies n bytes from dist+1 bytes behind the current position.
func (ow *outWindow) copyBlock(dist uint32, n uint32) error {
	size := uint32(len(ow.buf))
	i := ow.pos - dist - 1
	if i >= size {
		i += size
	}
	for ; n > 0; n-- {
		if i >= size {
			i = 0
		}
		ow.buf[ow.pos] = ow.buf[i]
		ow.pos++
		i++
		if ow.pos >= size {
			if err := ow.flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply writes a decoded operation into the window. A sequence without
// match length is a single literal stored in Aux.
func (ow *outWindow) apply(seq lz.Seq) error {
	if seq.MatchLen == 0 {
		return ow.putByte(byte(seq.Aux))
	}
	return ow.copyBlock(seq.Offset-1, seq.MatchLen)
}
