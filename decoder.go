// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/lz"
	"github.com/ulikunitz/lzma/xlog"
)

// minWindowSize is the minimum size of the decoder dictionary buffer.
const minWindowSize = 1 << 12

// Decoder decompresses raw LZMA streams. A decoder can be reused for
// multiple streams with the same properties.
type Decoder struct {
	h     Header
	state codecState
	rd    rangeDecoder
	win   outWindow
	// distances must be less than dictCheck
	dictCheck uint32
	solid     bool
}

// NewDecoder creates a decoder for the five-byte properties block.
func NewDecoder(props []byte) (*Decoder, error) {
	return NewDecoderConfig(props, nil)
}

// NewDecoderConfig creates a decoder for the five-byte properties block
// using the given configuration. A nil configuration sets no limits.
func NewDecoderConfig(props []byte, cfg *DecoderConfig) (*Decoder, error) {
	var h Header
	if err := h.parseProperties(props); err != nil {
		return nil, err
	}
	if cfg != nil && cfg.DictCap > 0 && h.DictSize > cfg.DictCap {
		return nil, fmt.Errorf("%w: %d > %d", ErrDictCap, h.DictSize,
			cfg.DictCap)
	}
	h.Size = -1
	d := &Decoder{h: h}
	d.dictCheck = max(h.DictSize, 1)
	d.win.create(max(d.dictCheck, minWindowSize))
	return d, nil
}

// Header returns the properties and the dictionary size of the decoder.
func (d *Decoder) Header() Header { return d.h }

// Train fills the dictionary with the trailing bytes of r. The next
// stream decoded may reference them. Streams encoded with a train size
// need the same reference data.
func (d *Decoder) Train(r io.Reader) error {
	d.solid = true
	if err := d.win.train(r); err != nil {
		return err
	}
	xlog.Printf(debugLogger(), "trained dictionary with %d bytes", d.win.trainSize)
	return nil
}

// errEOS signals the end-of-stream marker.
var errEOS = errors.New("lzma: end-of-stream marker")

// Decode decompresses the range-coded data from r and writes it to w. If
// size is negative the stream must be terminated by an end-of-stream
// marker; otherwise exactly size bytes are decoded.
func (d *Decoder) Decode(w io.Writer, r io.Reader, size int64) error {
	br := newByteReader(r)
	d.win.init(w, d.solid)
	d.state.init(d.h.Properties)
	if err := d.rd.init(br); err != nil {
		return err
	}
	var nowPos int64
	for size < 0 || nowPos < size {
		seq, err := d.readSeq(nowPos)
		if err != nil {
			if err == errEOS {
				err = d.checkEOS(nowPos, size)
				if err != nil {
					return err
				}
				break
			}
			if size < 0 && errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: %w", ErrNoEOS, err)
			}
			return err
		}
		n := int64(max(seq.MatchLen, 1))
		if size >= 0 && nowPos+n > size {
			return ErrMatchOverrun
		}
		if err = d.win.apply(seq); err != nil {
			return err
		}
		nowPos += n
	}
	// The window keeps its content for solid streams.
	d.solid = false
	return d.win.flush()
}

// checkEOS validates the end-of-stream marker found at position nowPos.
func (d *Decoder) checkEOS(nowPos, size int64) error {
	xlog.Printf(debugLogger(), "end-of-stream marker at %d", nowPos)
	if size >= 0 {
		return ErrUnexpectedEOS
	}
	if !d.rd.possiblyAtEnd() {
		return fmt.Errorf("%w: range decoder not at end",
			ErrUnexpectedEOS)
	}
	return nil
}

// decodeLiteral decodes a literal at position nowPos.
func (d *Decoder) decodeLiteral(nowPos int64) (seq lz.Seq, err error) {
	s := &d.state
	var prev byte
	if nowPos > 0 {
		prev = d.win.getByte(0)
	}
	litState := s.litCodec.litState(uint32(nowPos), prev)
	matched := !s.state.isLiteral()
	var match byte
	if matched {
		match = d.win.getByte(s.rep[0])
	}
	c, err := s.litCodec.Decode(&d.rd, matched, match, litState)
	if err != nil {
		return lz.Seq{}, err
	}
	return lz.Seq{LitLen: 1, Aux: uint32(c)}, nil
}

// readSeq reads a single operation. Each sequence is either a one-byte
// literal (LitLen 1, Aux has the byte) or a match with MatchLen and
// Offset. The distance of every match is checked against the data
// available in the dictionary.
func (d *Decoder) readSeq(nowPos int64) (seq lz.Seq, err error) {
	s := &d.state
	posState := s.posState(uint32(nowPos))
	st2 := state2(s.state, posState)

	b, err := d.rd.decodeBit(&s.isMatch[st2])
	if err != nil {
		return lz.Seq{}, err
	}
	if b == 0 {
		seq, err = d.decodeLiteral(nowPos)
		if err != nil {
			return lz.Seq{}, err
		}
		s.state.updateLiteral()
		return seq, nil
	}
	if nowPos == 0 {
		return lz.Seq{}, ErrFirstSymbol
	}

	var n uint32
	b, err = d.rd.decodeBit(&s.isRep[s.state])
	if err != nil {
		return lz.Seq{}, err
	}
	if b == 0 {
		// simple match
		copy(s.rep[1:], s.rep[:3])
		if n, err = s.lenCodec.Decode(&d.rd, posState); err != nil {
			return lz.Seq{}, err
		}
		s.state.updateMatch()
		if s.rep[0], err = s.distCodec.Decode(&d.rd, n); err != nil {
			return lz.Seq{}, err
		}
	} else {
		b, err = d.rd.decodeBit(&s.isRepG0[s.state])
		if err != nil {
			return lz.Seq{}, err
		}
		if b == 0 {
			b, err = d.rd.decodeBit(&s.isRep0Long[st2])
			if err != nil {
				return lz.Seq{}, err
			}
			if b == 0 {
				s.state.updateShortRep()
				if err = d.checkDist(s.rep[0], nowPos); err != nil {
					return lz.Seq{}, err
				}
				return lz.Seq{MatchLen: 1, Offset: s.rep[0] + 1}, nil
			}
		} else {
			var dist uint32
			b, err = d.rd.decodeBit(&s.isRepG1[s.state])
			if err != nil {
				return lz.Seq{}, err
			}
			if b == 0 {
				dist = s.rep[1]
			} else {
				b, err = d.rd.decodeBit(&s.isRepG2[s.state])
				if err != nil {
					return lz.Seq{}, err
				}
				if b == 0 {
					dist = s.rep[2]
				} else {
					dist = s.rep[3]
					s.rep[3] = s.rep[2]
				}
				s.rep[2] = s.rep[1]
			}
			s.rep[1] = s.rep[0]
			s.rep[0] = dist
		}
		if n, err = s.repLenCodec.Decode(&d.rd, posState); err != nil {
			return lz.Seq{}, err
		}
		s.state.updateRep()
	}
	if err = d.checkDist(s.rep[0], nowPos); err != nil {
		return lz.Seq{}, err
	}
	return lz.Seq{MatchLen: n + minMatchLen, Offset: s.rep[0] + 1}, nil
}

// checkDist checks whether the distance offset dist references data in
// the dictionary. The eos distance results in errEOS.
func (d *Decoder) checkDist(dist uint32, nowPos int64) error {
	if int64(dist) >= int64(d.win.trainSize)+nowPos || dist >= d.dictCheck {
		if dist == eosDist {
			return errEOS
		}
		return ErrDistance
	}
	return nil
}
