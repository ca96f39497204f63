// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"io"
)

// newByteReader returns r if it is already an io.ByteReader. Other readers
// are read one byte at a time so that no data behind the stream is
// consumed.
func newByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &byteReader{r: r}
}

// byteReader converts a reader into a ByteReader.
type byteReader struct {
	r io.Reader
	p [1]byte
}

// ReadByte reads a single byte. A reader that returns neither data nor an
// error results in io.ErrNoProgress after repeated calls.
func (br *byteReader) ReadByte() (c byte, err error) {
	for i := 0; i < 100; i++ {
		n, err := br.r.Read(br.p[:])
		if n == 1 {
			return br.p[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}

// rangeEncoder implements range encoding of single bits. The low value can
// overflow therefore we need uint64. The cache value is used to handle
// overflows.
type rangeEncoder struct {
	w        io.ByteWriter
	nrange   uint32
	low      uint64
	cacheLen int64
	cache    byte
	// number of bytes written to w
	n int64
}

// init initializes the range encoder for the given byte writer.
func (e *rangeEncoder) init(w io.ByteWriter) {
	*e = rangeEncoder{
		w:        w,
		nrange:   0xffffffff,
		cacheLen: 1,
	}
}

// processed returns the number of bytes the encoder has produced so far
// including the bytes that are still pending.
func (e *rangeEncoder) processed() int64 {
	return e.n + e.cacheLen + 4
}

// encodeBit encodes the least significant bit of b. The p value will be
// updated by the function depending on the bit encoded.
func (e *rangeEncoder) encodeBit(p *prob, b uint32) error {
	bound := p.bound(e.nrange)
	if b&1 == 0 {
		e.nrange = bound
		p.inc()
	} else {
		e.low += uint64(bound)
		e.nrange -= bound
		p.dec()
	}
	return e.normalize()
}

// directEncodeBits encodes the n least-significant bits of v with
// probability 1/2. The most-significant bit is encoded first.
func (e *rangeEncoder) directEncodeBits(v uint32, n int) error {
	for i := n - 1; i >= 0; i-- {
		e.nrange >>= 1
		e.low += uint64(e.nrange) & (0 - (uint64(v>>uint(i)) & 1))
		if err := e.normalize(); err != nil {
			return err
		}
	}
	return nil
}

// flush writes a complete copy of the low value.
func (e *rangeEncoder) flush() error {
	for i := 0; i < 5; i++ {
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// shiftLow shifts the low value for 8 bit. The shifted byte is written into
// the byte writer. The cache value is used to handle overflows.
func (e *rangeEncoder) shiftLow() error {
	if uint32(e.low) < 0xff000000 || (e.low>>32) != 0 {
		tmp := e.cache
		for {
			if err := e.w.WriteByte(tmp + byte(e.low>>32)); err != nil {
				return err
			}
			e.n++
			tmp = 0xff
			e.cacheLen--
			if e.cacheLen <= 0 {
				if e.cacheLen < 0 {
					panic("lzma: negative cacheLen")
				}
				break
			}
		}
		e.cache = byte(uint32(e.low) >> 24)
	}
	e.cacheLen++
	e.low = uint64(uint32(e.low) << 8)
	return nil
}

// normalize handles shifts of nrange and low.
func (e *rangeEncoder) normalize() error {
	const top = 1 << 24
	if e.nrange >= top {
		return nil
	}
	e.nrange <<= 8
	return e.shiftLow()
}

// errRangeInit indicates that the first five bytes of a range-coded stream
// are invalid.
var errRangeInit = errors.New("lzma: invalid start of range-coded data")

// rangeDecoder decodes single bits of the range encoding stream.
type rangeDecoder struct {
	br     io.ByteReader
	nrange uint32
	code   uint32
}

// init initializes the rangeDecoder. It reads five bytes from the stream and
// may return errors.
func (d *rangeDecoder) init(br io.ByteReader) error {
	*d = rangeDecoder{br: br, nrange: 0xffffffff}

	b, err := d.br.ReadByte()
	if err != nil {
		return noEOF(err)
	}
	if b != 0 {
		return errRangeInit
	}
	for i := 0; i < 4; i++ {
		if err = d.updateCode(); err != nil {
			return err
		}
	}
	if d.code >= d.nrange {
		return errRangeInit
	}
	return nil
}

// possiblyAtEnd checks whether the decoder may be at the end of the stream.
func (d *rangeDecoder) possiblyAtEnd() bool {
	return d.code == 0
}

// directDecodeBits decodes n bits with probability 1/2. The
// most-significant bit is decoded first.
func (d *rangeDecoder) directDecodeBits(n int) (v uint32, err error) {
	for ; n > 0; n-- {
		d.nrange >>= 1
		d.code -= d.nrange
		t := 0 - (d.code >> 31)
		d.code += d.nrange & t
		v = (v << 1) | ((t + 1) & 1)

		// d.code will stay less then d.nrange
		if err = d.normalize(); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// decodeBit decodes a single bit. The bit will be returned at the
// least-significant position. All other bits will be zero. The probability
// value will be updated.
func (d *rangeDecoder) decodeBit(p *prob) (b uint32, err error) {
	bound := p.bound(d.nrange)
	if d.code < bound {
		d.nrange = bound
		p.inc()
		b = 0
	} else {
		d.code -= bound
		d.nrange -= bound
		p.dec()
		b = 1
	}
	return b, d.normalize()
}

// normalize the top value and update the code value.
func (d *rangeDecoder) normalize() error {
	// assume d.code < d.nrange
	const top = 1 << 24
	if d.nrange >= top {
		return nil
	}
	d.nrange <<= 8
	// d.code < d.nrange will be maintained
	return d.updateCode()
}

// updateCode reads a new byte into the code.
func (d *rangeDecoder) updateCode() error {
	b, err := d.br.ReadByte()
	if err != nil {
		return noEOF(err)
	}
	d.code = (d.code << 8) | uint32(b)
	return nil
}

// noEOF converts io.EOF into io.ErrUnexpectedEOF. A range-coded stream
// never ends in the middle of a bit.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
