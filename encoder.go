// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/lzma/xlog"
)

// numOpts is the size of the lattice used by the optimal parser. The
// input window keeps numOpts bytes before the current position.
const numOpts = 1 << 12

// blockSize is the number of input bytes after which codeOneBlock
// returns to report progress.
const blockSize = 1 << 12

// literalBack marks a literal in the back value of the optimal parser.
const literalBack = 1<<32 - 1

// Encoder compresses data into a raw LZMA stream without header. The
// properties must be transmitted separately.
type Encoder struct {
	cfg   EncoderConfig
	state codecState
	mf    matchFinder
	re    rangeEncoder

	lenPrices    lengthPrices
	repLenPrices lengthPrices
	distPrices   distPrices

	opt       [numOpts]optimal
	matchDist [2*maxMatchLen + 2]uint32
	reps      [4]uint32
	repLens   [4]uint32

	prevByte         byte
	additionalOffset uint32
	optEnd           uint32
	optCur           uint32

	longestMatchFound bool
	longestMatchLen   uint32
	numDistPairs      int

	nowPos    int64
	trainSize uint32
}

// NewEncoder creates an encoder for the given configuration. A nil
// configuration selects the defaults.
func NewEncoder(cfg *EncoderConfig) (*Encoder, error) {
	var c EncoderConfig
	if cfg != nil {
		c = *cfg
	}
	c.SetDefaults()
	if err := c.Verify(); err != nil {
		return nil, err
	}
	mf, err := newMatchFinder(c.MatchFinder, c.DictSize, numOpts,
		uint32(c.FastBytes), maxMatchLen+1)
	if err != nil {
		return nil, err
	}
	e := &Encoder{cfg: c, mf: mf}
	e.distPrices.tableSize = distTableSize(c.DictSize)
	return e, nil
}

// Config returns the configuration used by the encoder.
func (e *Encoder) Config() EncoderConfig { return e.cfg }

// Properties returns the header of the encoded stream. The size is set to
// -1.
func (e *Encoder) Properties() Header {
	return Header{
		Properties: e.cfg.Properties,
		DictSize:   e.cfg.DictSize,
		Size:       -1,
	}
}

// WriteProperties writes the five bytes of the properties.
func (e *Encoder) WriteProperties(w io.Writer) error {
	return e.Properties().WriteProperties(w)
}

// SetTrainSize declares that the first n bytes of the input of the next
// Encode call have been used to train the decoder. They are inserted into
// the dictionary but not encoded.
func (e *Encoder) SetTrainSize(n uint32) {
	e.trainSize = n
}

// Encode compresses the data read from r and writes the range-coded data
// to w. The function progress, if not nil, is called regularly with the
// number of bytes read and written so far.
func (e *Encoder) Encode(w io.Writer, r io.Reader,
	progress func(inSize, outSize int64),
) error {
	bw, ok := w.(io.ByteWriter)
	var buf *bufio.Writer
	if !ok {
		buf = bufio.NewWriter(w)
		bw = buf
	}
	e.start(bw, r)
	for {
		finished, err := e.codeOneBlock()
		if err != nil {
			return err
		}
		if finished {
			break
		}
		if progress != nil {
			progress(e.nowPos, e.re.processed())
		}
	}
	xlog.Printf(debugLogger(), "encoded %d bytes into %d bytes", e.nowPos, e.re.n)
	if buf != nil {
		return buf.Flush()
	}
	return nil
}

// start resets the encoder for a new stream.
func (e *Encoder) start(bw io.ByteWriter, r io.Reader) {
	s := &e.state
	s.init(e.cfg.Properties)
	e.re.init(bw)
	e.prevByte = 0
	e.longestMatchFound = false
	e.optEnd = 0
	e.optCur = 0
	e.additionalOffset = 0
	e.nowPos = 0

	e.distPrices.updateDist(&s.distCodec)
	e.distPrices.updateAlign(&s.distCodec)
	posStates := 1 << uint(e.cfg.PB)
	tableSize := e.cfg.FastBytes + 1 - minMatchLen
	e.lenPrices.init(&s.lenCodec, tableSize, posStates)
	e.repLenPrices.init(&s.repLenCodec, tableSize, posStates)

	e.mf.init(r)
	for n := e.trainSize; n > 0; {
		a := e.mf.available()
		if a == 0 {
			break
		}
		k := min(n, a)
		e.mf.skip(k)
		n -= k
	}
	e.trainSize = 0
}

// readMatchDistances reads the matches for the next position. A match
// reaching the fast bytes limit is extended up to maxMatchLen.
func (e *Encoder) readMatchDistances() (lenRes uint32, n int) {
	n = e.mf.getMatches(e.matchDist[:])
	if n > 0 {
		lenRes = e.matchDist[n-2]
		if lenRes == uint32(e.cfg.FastBytes) {
			lenRes += e.mf.matchLen(int(lenRes)-1, e.matchDist[n-1],
				maxMatchLen-lenRes)
		}
	}
	e.additionalOffset++
	return lenRes, n
}

// movePos skips n positions of the match finder.
func (e *Encoder) movePos(n uint32) {
	if n > 0 {
		e.mf.skip(n)
		e.additionalOffset += n
	}
}

// codeOneBlock encodes about blockSize bytes. It returns finished when all
// data has been encoded and the stream has been flushed.
func (e *Encoder) codeOneBlock() (finished bool, err error) {
	s := &e.state
	start := e.nowPos
	if e.nowPos == 0 {
		if e.mf.available() == 0 {
			return true, e.flush(0)
		}
		e.readMatchDistances()
		if err = e.re.encodeBit(&s.isMatch[state2(s.state, 0)], 0); err != nil {
			return false, err
		}
		s.state.updateLiteral()
		c := e.mf.indexByte(-int(e.additionalOffset))
		litState := s.litCodec.litState(0, e.prevByte)
		if err = s.litCodec.Encode(&e.re, c, false, 0, litState); err != nil {
			return false, err
		}
		e.prevByte = c
		e.additionalOffset--
		e.nowPos++
	}
	if e.mf.available() == 0 {
		return true, e.flush(uint32(e.nowPos))
	}

	for {
		n, back := e.getOptimum(uint32(e.nowPos))
		if n == 1 && back == literalBack {
			err = e.encodeLiteral()
		} else if back < 4 {
			err = e.encodeRep(back, n)
		} else {
			err = e.encodeMatch(back-4, n)
		}
		if err != nil {
			return false, err
		}
		e.additionalOffset -= n
		e.nowPos += int64(n)
		if e.additionalOffset != 0 {
			continue
		}
		if e.distPrices.matchCount >= 1<<7 {
			e.distPrices.updateDist(&s.distCodec)
		}
		if e.distPrices.alignCount >= alignSize {
			e.distPrices.updateAlign(&s.distCodec)
		}
		if e.mf.available() == 0 {
			return true, e.flush(uint32(e.nowPos))
		}
		if e.nowPos-start >= blockSize {
			return false, nil
		}
	}
}

// encodeLiteral encodes the byte at the current position.
func (e *Encoder) encodeLiteral() error {
	s := &e.state
	pos := uint32(e.nowPos)
	posState := s.posState(pos)
	if err := e.re.encodeBit(&s.isMatch[state2(s.state, posState)], 0); err != nil {
		return err
	}
	c := e.mf.indexByte(-int(e.additionalOffset))
	litState := s.litCodec.litState(pos, e.prevByte)
	matched := !s.state.isLiteral()
	var match byte
	if matched {
		match = e.mf.indexByte(-int(s.rep[0]) - 1 - int(e.additionalOffset))
	}
	if err := s.litCodec.Encode(&e.re, c, matched, match, litState); err != nil {
		return err
	}
	e.prevByte = c
	s.state.updateLiteral()
	return nil
}

// encodeRep encodes a repetition of rep[i] with length n. A repetition of
// rep[0] with length 1 is a short repetition.
func (e *Encoder) encodeRep(i uint32, n uint32) (err error) {
	s := &e.state
	posState := s.posState(uint32(e.nowPos))
	st2 := state2(s.state, posState)
	if err = e.re.encodeBit(&s.isMatch[st2], 1); err != nil {
		return err
	}
	if err = e.re.encodeBit(&s.isRep[s.state], 1); err != nil {
		return err
	}
	if i == 0 {
		if err = e.re.encodeBit(&s.isRepG0[s.state], 0); err != nil {
			return err
		}
		var b uint32
		if n != 1 {
			b = 1
		}
		if err = e.re.encodeBit(&s.isRep0Long[st2], b); err != nil {
			return err
		}
	} else {
		if err = e.re.encodeBit(&s.isRepG0[s.state], 1); err != nil {
			return err
		}
		if i == 1 {
			err = e.re.encodeBit(&s.isRepG1[s.state], 0)
		} else {
			if err = e.re.encodeBit(&s.isRepG1[s.state], 1); err != nil {
				return err
			}
			err = e.re.encodeBit(&s.isRepG2[s.state], i-2)
		}
		if err != nil {
			return err
		}
	}
	if n == 1 {
		s.state.updateShortRep()
	} else {
		err = s.repLenCodec.Encode(&e.re, n-minMatchLen, posState)
		if err != nil {
			return err
		}
		e.repLenPrices.encoded(&s.repLenCodec, posState)
		s.state.updateRep()
	}
	if i != 0 {
		d := s.rep[i]
		copy(s.rep[1:i+1], s.rep[:i])
		s.rep[0] = d
	}
	e.prevByte = e.mf.indexByte(int(n) - 1 - int(e.additionalOffset))
	return nil
}

// encodeMatch encodes a match with distance offset dist and length n.
func (e *Encoder) encodeMatch(dist uint32, n uint32) (err error) {
	s := &e.state
	posState := s.posState(uint32(e.nowPos))
	if err = e.encodeMatchPrefix(posState, n); err != nil {
		return err
	}
	if err = s.distCodec.Encode(&e.re, dist, n-minMatchLen); err != nil {
		return err
	}
	if posSlot(dist) >= endPosModel {
		e.distPrices.alignCount++
	}
	copy(s.rep[1:], s.rep[:3])
	s.rep[0] = dist
	e.distPrices.matchCount++
	e.prevByte = e.mf.indexByte(int(n) - 1 - int(e.additionalOffset))
	return nil
}

// encodeMatchPrefix encodes the bits for a simple match and the length.
func (e *Encoder) encodeMatchPrefix(posState uint32, n uint32) (err error) {
	s := &e.state
	if err = e.re.encodeBit(&s.isMatch[state2(s.state, posState)], 1); err != nil {
		return err
	}
	if err = e.re.encodeBit(&s.isRep[s.state], 0); err != nil {
		return err
	}
	s.state.updateMatch()
	if err = s.lenCodec.Encode(&e.re, n-minMatchLen, posState); err != nil {
		return err
	}
	e.lenPrices.encoded(&s.lenCodec, posState)
	return nil
}

// errInput wraps errors of the input reader.
var errInput = errors.New("lzma: input error")

// flush writes the optional end-of-stream marker and the remaining bytes
// of the range encoder. Input errors are reported before anything is
// written.
func (e *Encoder) flush(nowPos uint32) error {
	if err := e.mf.readErr(); err != nil {
		return fmt.Errorf("%w: %w", errInput, err)
	}
	if e.cfg.EOS {
		xlog.Printf(debugLogger(), "writing end-of-stream marker at %d", nowPos)
		posState := e.state.posState(nowPos)
		if err := e.encodeMatchPrefix(posState, minMatchLen); err != nil {
			return err
		}
		err := e.state.distCodec.Encode(&e.re, eosDist, 0)
		if err != nil {
			return err
		}
	}
	return e.re.flush()
}
