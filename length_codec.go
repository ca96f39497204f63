// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "errors"

// maxPosBits defines the number of bits of the position value that are used to
// to compute the posState value. The value is used to select the tree codec
// for length encoding and decoding.
const maxPosBits = 4

// maxPosStates gives the maximum number of position states.
const maxPosStates = 1 << maxPosBits

// minMatchLen and maxMatchLen give the minimum and maximum values for
// encoding and decoding length values. minMatchLen is also used as base
// for the encoded length values.
const (
	minMatchLen = 2
	maxMatchLen = minMatchLen + 16 + 256 - 1
)

// lenSymbols gives the number of length symbols.
const lenSymbols = maxMatchLen - minMatchLen + 1

// lengthCodec support the encoding of the length value.
type lengthCodec struct {
	choice [2]prob
	low    [maxPosStates]treeCodec
	mid    [maxPosStates]treeCodec
	high   treeCodec
}

// init initializes a new length codec.
func (lc *lengthCodec) init() {
	initProbs(lc.choice[:])
	for i := range lc.low {
		lc.low[i] = makeTreeCodec(3)
	}
	for i := range lc.mid {
		lc.mid[i] = makeTreeCodec(3)
	}
	lc.high = makeTreeCodec(8)
}

var errLenRange = errors.New("lzma: length offset out of range")

// Encode encodes the length offset. The length offset l can be compute by
// subtracting minMatchLen (2) from the actual length.
//
//	l = length - minMatchLen
func (lc *lengthCodec) Encode(e *rangeEncoder, l uint32, posState uint32,
) (err error) {
	if l > maxMatchLen-minMatchLen {
		return errLenRange
	}
	if l < 8 {
		if err = e.encodeBit(&lc.choice[0], 0); err != nil {
			return err
		}
		return lc.low[posState].Encode(e, l)
	}
	if err = e.encodeBit(&lc.choice[0], 1); err != nil {
		return err
	}
	if l < 16 {
		if err = e.encodeBit(&lc.choice[1], 0); err != nil {
			return err
		}
		return lc.mid[posState].Encode(e, l-8)
	}
	if err = e.encodeBit(&lc.choice[1], 1); err != nil {
		return err
	}
	return lc.high.Encode(e, l-16)
}

// Decode reads the length offset. Add minMatchLen to compute the actual length
// to the length offset l.
func (lc *lengthCodec) Decode(d *rangeDecoder, posState uint32,
) (l uint32, err error) {
	var b uint32
	if b, err = d.decodeBit(&lc.choice[0]); err != nil {
		return 0, err
	}
	if b == 0 {
		return lc.low[posState].Decode(d)
	}
	if b, err = d.decodeBit(&lc.choice[1]); err != nil {
		return 0, err
	}
	if b == 0 {
		l, err = lc.mid[posState].Decode(d)
		return l + 8, err
	}
	l, err = lc.high.Decode(d)
	return l + 16, err
}

// setPrices computes the prices for the first n length offsets of the
// given position state.
func (lc *lengthCodec) setPrices(prices []uint32, posState uint32, n int) {
	a0 := lc.choice[0].price0()
	a1 := lc.choice[0].price1()
	b0 := a1 + lc.choice[1].price0()
	b1 := a1 + lc.choice[1].price1()
	i := 0
	for ; i < 8; i++ {
		if i >= n {
			return
		}
		prices[i] = a0 + lc.low[posState].price(uint32(i))
	}
	for ; i < 16; i++ {
		if i >= n {
			return
		}
		prices[i] = b0 + lc.mid[posState].price(uint32(i-8))
	}
	for ; i < n; i++ {
		prices[i] = b1 + lc.high.price(uint32(i-16))
	}
}

// lengthPrices caches the prices of a length codec. The table for a
// position state is recomputed after tableSize encodings.
type lengthPrices struct {
	prices    [maxPosStates][lenSymbols]uint32
	counters  [maxPosStates]int
	tableSize int
}

// init sets the table size and computes all tables for the position
// states in use.
func (lp *lengthPrices) init(lc *lengthCodec, tableSize int, posStates int) {
	lp.tableSize = tableSize
	for posState := 0; posState < posStates; posState++ {
		lp.update(lc, uint32(posState))
	}
}

// update recomputes the price table for the position state.
func (lp *lengthPrices) update(lc *lengthCodec, posState uint32) {
	lc.setPrices(lp.prices[posState][:], posState, lp.tableSize)
	lp.counters[posState] = lp.tableSize
}

// encoded must be called after each length encoding.
func (lp *lengthPrices) encoded(lc *lengthCodec, posState uint32) {
	lp.counters[posState]--
	if lp.counters[posState] == 0 {
		lp.update(lc, posState)
	}
}

// price returns the price of the length offset l.
func (lp *lengthPrices) price(l uint32, posState uint32) uint32 {
	return lp.prices[posState][l]
}
