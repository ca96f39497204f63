// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// minLC and maxLC define the range for LC values.
const (
	minLC = 0
	maxLC = 8
)

// minLP and maxLP define the range for LP values.
const (
	minLP = 0
	maxLP = 4
)

// literalCodec supports the encoding of literal. It provides 768 probability
// values per literal state. The upper 512 probabilities are used with the
// context of a match bit.
type literalCodec struct {
	probs  []prob
	lc     uint
	lpMask uint32
}

// init initializes the literal codec.
func (c *literalCodec) init(lc, lp int) {
	switch {
	case !(minLC <= lc && lc <= maxLC):
		panic("lc out of range")
	case !(minLP <= lp && lp <= maxLP):
		panic("lp out of range")
	}
	n := 0x300 << uint(lc+lp)
	if cap(c.probs) >= n {
		c.probs = c.probs[:n]
	} else {
		c.probs = make([]prob, n)
	}
	initProbs(c.probs)
	c.lc = uint(lc)
	c.lpMask = 1<<uint(lp) - 1
}

// litState computes the literal state from the position and the previous
// byte.
func (c *literalCodec) litState(pos uint32, prev byte) uint32 {
	return (pos&c.lpMask)<<c.lc | uint32(prev)>>(8-c.lc)
}

// subProbs returns the probabilities for the given literal state.
func (c *literalCodec) subProbs(litState uint32) []prob {
	k := litState * 0x300
	return c.probs[k : k+0x300]
}

// Encode encodes the byte s using a range encoder. If matched is set the
// bits of the match byte are used as additional context until the first
// difference.
func (c *literalCodec) Encode(e *rangeEncoder, s byte, matched bool,
	match byte, litState uint32,
) (err error) {
	probs := c.subProbs(litState)
	symbol := uint32(1)
	r := uint32(s)
	if matched {
		m := uint32(match)
		for {
			matchBit := (m >> 7) & 1
			m <<= 1
			bit := (r >> 7) & 1
			r <<= 1
			i := ((1 + matchBit) << 8) | symbol
			if err = e.encodeBit(&probs[i], bit); err != nil {
				return err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit || symbol >= 0x100 {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit := (r >> 7) & 1
		r <<= 1
		if err = e.encodeBit(&probs[symbol], bit); err != nil {
			return err
		}
		symbol = (symbol << 1) | bit
	}
	return nil
}

// Decode decodes a literal byte using the range decoder. The match byte is
// only used if matched is true.
func (c *literalCodec) Decode(d *rangeDecoder, matched bool, match byte,
	litState uint32,
) (s byte, err error) {
	probs := c.subProbs(litState)
	symbol := uint32(1)
	if matched {
		m := uint32(match)
		for {
			matchBit := (m >> 7) & 1
			m <<= 1
			i := ((1 + matchBit) << 8) | symbol
			bit, err := d.decodeBit(&probs[i])
			if err != nil {
				return 0, err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit || symbol >= 0x100 {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit, err := d.decodeBit(&probs[symbol])
		if err != nil {
			return 0, err
		}
		symbol = (symbol << 1) | bit
	}
	return byte(symbol - 0x100), nil
}

// price computes the price of encoding the byte s with the given literal
// state.
func (c *literalCodec) price(s byte, matched bool, match byte,
	litState uint32,
) uint32 {
	probs := c.subProbs(litState)
	var p uint32
	symbol := uint32(1)
	i := 7
	if matched {
		for ; i >= 0; i-- {
			matchBit := uint32(match>>uint(i)) & 1
			bit := uint32(s>>uint(i)) & 1
			p += probs[(1+matchBit)<<8+symbol].price(bit)
			symbol = symbol<<1 | bit
			if matchBit != bit {
				i--
				break
			}
		}
	}
	for ; i >= 0; i-- {
		bit := uint32(s>>uint(i)) & 1
		p += probs[symbol].price(bit)
		symbol = symbol<<1 | bit
	}
	return p
}
