// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"io"

	"github.com/ulikunitz/lzma/xlog"
)

// maxZeroReads limits the number of consecutive reads that return neither
// data nor an error.
const maxZeroReads = 100

// inWindow buffers the input of the encoder. The positions pos, posLimit
// and streamPos are relative to bufOffset, which allows the match finder
// to store positions that stay valid while the block is moved to the
// start of the buffer.
type inWindow struct {
	buf []byte
	r   io.Reader

	bufOffset uint32
	pos       uint32
	posLimit  uint32
	streamPos uint32

	// buffer index after which the block must be moved
	lastSafe   uint32
	keepBefore uint32
	keepAfter  uint32

	eos bool
	err error
}

// create allocates the buffer. An existing buffer of the same size is
// reused.
func (w *inWindow) create(keepBefore, keepAfter, reserve uint32) {
	w.keepBefore = keepBefore
	w.keepAfter = keepAfter
	n := keepBefore + keepAfter + reserve
	if uint32(len(w.buf)) != n {
		w.buf = make([]byte, n)
	}
	w.lastSafe = n - keepAfter
}

// init resets the window and fills the buffer from r.
func (w *inWindow) init(r io.Reader) {
	if w.buf == nil {
		panic("lzma: input window not created")
	}
	w.r = r
	w.bufOffset = 0
	w.pos = 0
	w.posLimit = 0
	w.streamPos = 0
	w.eos = false
	w.err = nil
	w.readBlock()
}

// movePos advances the current position by one byte.
func (w *inWindow) movePos() {
	w.pos++
	if w.pos > w.posLimit {
		if w.bufOffset+w.pos > w.lastSafe {
			w.moveBlock()
		}
		w.readBlock()
	}
}

// indexByte returns the byte at index relative to the current position.
func (w *inWindow) indexByte(index int) byte {
	return w.buf[int(w.bufOffset+w.pos)+index]
}

// matchLen returns the number of bytes up to limit that are equal at
// index and index-dist-1 relative to the current position. The limit is
// reduced at the end of the stream.
func (w *inWindow) matchLen(index int, dist uint32, limit uint32) uint32 {
	p := int64(w.pos) + int64(index)
	if w.eos && p+int64(limit) > int64(w.streamPos) {
		if p >= int64(w.streamPos) {
			return 0
		}
		limit = uint32(int64(w.streamPos) - p)
	}
	k := int(w.bufOffset+w.pos) + index
	d := int(dist) + 1
	var i uint32
	for i < limit && w.buf[k+int(i)] == w.buf[k+int(i)-d] {
		i++
	}
	return i
}

// available returns the number of bytes following the current position.
func (w *inWindow) available() uint32 {
	return w.streamPos - w.pos
}

// readErr returns the error that terminated reading from the input.
func (w *inWindow) readErr() error {
	return w.err
}

// reduceOffsets subtracts sub from all positions. The buffer content
// doesn't change.
func (w *inWindow) reduceOffsets(sub uint32) {
	w.bufOffset += sub
	w.posLimit -= sub
	w.pos -= sub
	w.streamPos -= sub
}

// moveBlock copies the bytes that must be kept to the start of the buffer.
func (w *inWindow) moveBlock() {
	offset := w.bufOffset + w.pos - w.keepBefore
	// movePos moves one byte beyond pos
	if offset > 0 {
		offset--
	}
	n := w.bufOffset + w.streamPos - offset
	copy(w.buf[:n], w.buf[offset:offset+n])
	w.bufOffset -= offset
}

// readBlock fills the buffer. At the end of the input the eos flag is set
// and posLimit is set to the end of the data.
func (w *inWindow) readBlock() {
	if w.eos {
		return
	}
	zeroReads := 0
	for {
		start := w.bufOffset + w.streamPos
		size := uint32(len(w.buf)) - start
		if size == 0 {
			return
		}
		n, err := w.r.Read(w.buf[start : start+size])
		if n > 0 {
			zeroReads = 0
			w.streamPos += uint32(n)
			if w.streamPos >= w.pos+w.keepAfter {
				w.posLimit = w.streamPos - w.keepAfter
			}
		}
		if err == nil && n == 0 {
			zeroReads++
			if zeroReads >= maxZeroReads {
				err = io.ErrNoProgress
			}
		}
		if err != nil {
			if err != io.EOF {
				w.err = err
				xlog.Printf(debugLogger(), "input error %v", err)
			}
			w.setEOS()
			return
		}
	}
}

// setEOS marks the end of the input stream.
func (w *inWindow) setEOS() {
	w.posLimit = w.streamPos
	if w.bufOffset+w.posLimit > w.lastSafe {
		w.posLimit = w.lastSafe - w.bufOffset
	}
	w.eos = true
}
