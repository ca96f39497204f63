// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"fmt"
	"io"
)

// Ranges for the properties and the dictionary size.
const (
	MinPB = 0
	MaxPB = 4

	// MinDictSize and MaxDictSize bound the dictionary size of the
	// encoder.
	MinDictSize = 1
	MaxDictSize = 1 << 30
)

// Properties define the literal context bits, literal position bits and
// position bits of an LZMA stream.
type Properties struct {
	LC int
	LP int
	PB int
}

// byte returns the byte that encodes the properties.
func (p Properties) byte() byte {
	return (byte)((p.PB*5+p.LP)*9 + p.LC)
}

// fromByte decodes the properties byte.
func (p *Properties) fromByte(b byte) error {
	p.LC = int(b % 9)
	b /= 9
	p.LP = int(b % 5)
	b /= 5
	p.PB = int(b)
	if p.PB > MaxPB {
		return fmt.Errorf("%w: properties byte", ErrHeader)
	}
	return nil
}

// Verify checks the properties for correctness.
func (p Properties) Verify() error {
	if !(minLC <= p.LC && p.LC <= maxLC) {
		return errors.New("lzma: LC out of range 0..8")
	}
	if !(minLP <= p.LP && p.LP <= maxLP) {
		return errors.New("lzma: LP out of range 0..4")
	}
	if !(MinPB <= p.PB && p.PB <= MaxPB) {
		return errors.New("lzma: PB out of range 0..4")
	}
	return nil
}

// Length of the properties block and the classic LZMA header.
const (
	propertiesLen = 5
	headerLen     = 13
)

// eosSize is used for the uncompressed size if it is unknown
const eosSize uint64 = 0xffffffffffffffff

// Header describes the classic LZMA header. A Size of -1 indicates an
// unknown size; the stream must then be terminated by an end-of-stream
// marker.
type Header struct {
	Properties
	DictSize uint32
	Size     int64
}

// appendProperties adds the five properties bytes to the slice s.
func (h Header) appendProperties(s []byte) []byte {
	var a [propertiesLen]byte
	a[0] = h.Properties.byte()
	putLE32(a[1:], h.DictSize)
	return append(s, a[:]...)
}

// append adds the complete header to the slice s.
func (h Header) append(s []byte) []byte {
	s = h.appendProperties(s)
	var a [8]byte
	u := eosSize
	if h.Size >= 0 {
		u = uint64(h.Size)
	}
	putLE64(a[:], u)
	return append(s, a[:]...)
}

// parseProperties parses the first five bytes of x.
func (h *Header) parseProperties(x []byte) error {
	if len(x) < propertiesLen {
		return fmt.Errorf("%w: properties too short", ErrHeader)
	}
	if err := h.Properties.fromByte(x[0]); err != nil {
		return err
	}
	h.DictSize = getLE32(x[1:])
	return nil
}

// parse parses a complete header.
func (h *Header) parse(x []byte) error {
	if len(x) != headerLen {
		return fmt.Errorf("%w: incorrect length", ErrHeader)
	}
	if err := h.parseProperties(x); err != nil {
		return err
	}
	u := getLE64(x[propertiesLen:])
	if u == eosSize {
		h.Size = -1
		return nil
	}
	if u > 1<<63-1 {
		return fmt.Errorf("%w: size out of range", ErrHeader)
	}
	h.Size = int64(u)
	return nil
}

// WriteProperties writes the five bytes of the properties block.
func (h Header) WriteProperties(w io.Writer) error {
	_, err := w.Write(h.appendProperties(nil))
	return err
}

// Write writes the 13-byte classic header.
func (h Header) Write(w io.Writer) error {
	_, err := w.Write(h.append(nil))
	return err
}

// ReadProperties reads the five-byte properties block. The size of the
// returned header is -1.
func ReadProperties(r io.Reader) (h Header, err error) {
	var a [propertiesLen]byte
	if _, err = io.ReadFull(r, a[:]); err != nil {
		return Header{}, noEOF(err)
	}
	if err = h.parseProperties(a[:]); err != nil {
		return Header{}, err
	}
	h.Size = -1
	return h, nil
}

// ReadHeader reads the classic 13-byte header.
func ReadHeader(r io.Reader) (h Header, err error) {
	var a [headerLen]byte
	if _, err = io.ReadFull(r, a[:]); err != nil {
		return Header{}, noEOF(err)
	}
	if err = h.parse(a[:]); err != nil {
		return Header{}, err
	}
	return h, nil
}

// getLE32 reads an uint32 integer from a byte slice
func getLE32(b []byte) uint32 {
	x := uint32(b[3]) << 24
	x |= uint32(b[2]) << 16
	x |= uint32(b[1]) << 8
	x |= uint32(b[0])
	return x
}

// getLE64 converts the uint64 value stored as little endian to an uint64
// value.
func getLE64(b []byte) uint64 {
	x := uint64(b[7]) << 56
	x |= uint64(b[6]) << 48
	x |= uint64(b[5]) << 40
	x |= uint64(b[4]) << 32
	x |= uint64(b[3]) << 24
	x |= uint64(b[2]) << 16
	x |= uint64(b[1]) << 8
	x |= uint64(b[0])
	return x
}

// putLE32 puts an uint32 integer into a byte slice that must have at least
// a length of 4 bytes.
func putLE32(b []byte, x uint32) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
}

// putLE64 puts the uint64 value into the byte slice as little endian
// value. The byte slice b must have at least place for 8 bytes.
func putLE64(b []byte, x uint64) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
	b[4] = byte(x >> 32)
	b[5] = byte(x >> 40)
	b[6] = byte(x >> 48)
	b[7] = byte(x >> 56)
}
