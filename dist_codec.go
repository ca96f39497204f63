// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "math/bits"

// Constants used by the distance codec.
const (
	// maximum supported distance, value is used for the eos marker.
	eosDist = 1<<32 - 1
	// number of the supported len states
	lenStates = 4
	// start for the position models
	startPosModel = 4
	// first index with align bits support
	endPosModel = 14
	// bits for the position slots
	posSlotBits = 6
	// number of align bits
	alignBits = 4
	// size of the align table
	alignSize = 1 << alignBits
	// distances below fullDistances are coded without direct bits
	fullDistances = 1 << (endPosModel >> 1)
)

// fastPos maps distances below 2^11 to their position slot.
var fastPos = computeFastPos()

func computeFastPos() []byte {
	const fastSlots = 22
	t := make([]byte, 1<<11)
	t[0], t[1] = 0, 1
	c := 2
	for slot := 2; slot < fastSlots; slot++ {
		k := 1 << uint((slot>>1)-1)
		for j := 0; j < k; j++ {
			t[c] = byte(slot)
			c++
		}
	}
	return t
}

// posSlot returns the position slot for the distance offset.
func posSlot(dist uint32) uint32 {
	switch {
	case dist < 1<<11:
		return uint32(fastPos[dist])
	case dist < 1<<21:
		return uint32(fastPos[dist>>10]) + 20
	case dist < 1<<31:
		return uint32(fastPos[dist>>20]) + 40
	}
	// distances beyond the table like the eos marker
	n := uint32(31 - bits.LeadingZeros32(dist))
	return n<<1 | (dist>>(n-1))&1
}

// posSlot2 returns the position slot for distances of at least
// fullDistances.
func posSlot2(dist uint32) uint32 {
	switch {
	case dist < 1<<17:
		return uint32(fastPos[dist>>6]) + 12
	case dist < 1<<27:
		return uint32(fastPos[dist>>16]) + 32
	}
	return uint32(fastPos[dist>>26]) + 52
}

// lenState converts the length offset l to a supported lenState value.
func lenState(l uint32) uint32 {
	if l >= lenStates {
		l = lenStates - 1
	}
	return l
}

// distCodec provides encoding and decoding of distance values.
type distCodec struct {
	posSlotCodecs [lenStates]treeCodec
	posModel      [endPosModel - startPosModel]treeReverseCodec
	alignCodec    treeReverseCodec
}

// init initializes the distance codec.
func (dc *distCodec) init() {
	for i := range dc.posSlotCodecs {
		dc.posSlotCodecs[i] = makeTreeCodec(posSlotBits)
	}
	for i := range dc.posModel {
		slot := startPosModel + i
		bits := (slot >> 1) - 1
		dc.posModel[i] = makeTreeReverseCodec(bits)
	}
	dc.alignCodec = makeTreeReverseCodec(alignBits)
}

// Encode encodes the distance offset using the length offset l. The
// distance offset is the actual match distance decreased by one. A
// distance offset of 0xffffffff (eos) indicates the end of the stream.
func (dc *distCodec) Encode(e *rangeEncoder, dist uint32, l uint32) (err error) {
	slot := posSlot(dist)
	if err = dc.posSlotCodecs[lenState(l)].Encode(e, slot); err != nil {
		return err
	}
	if slot < startPosModel {
		return nil
	}
	bits := (slot >> 1) - 1
	base := (2 | (slot & 1)) << bits
	reduced := dist - base
	if slot < endPosModel {
		return dc.posModel[slot-startPosModel].Encode(e, reduced)
	}
	err = e.directEncodeBits(reduced>>alignBits, int(bits-alignBits))
	if err != nil {
		return err
	}
	return dc.alignCodec.Encode(e, reduced&(alignSize-1))
}

// Decode decodes the distance offset using the length offset l. The dist
// value 0xffffffff (eos) indicates the end of the stream. Add one to the
// distance offset to get the actual match distance.
func (dc *distCodec) Decode(d *rangeDecoder, l uint32) (dist uint32, err error) {
	slot, err := dc.posSlotCodecs[lenState(l)].Decode(d)
	if err != nil {
		return 0, err
	}

	// posSlot equals distance
	if slot < startPosModel {
		return slot, nil
	}

	// posSlot uses the individual models
	bits := (slot >> 1) - 1
	dist = (2 | (slot & 1)) << bits
	var u uint32
	if slot < endPosModel {
		tc := &dc.posModel[slot-startPosModel]
		if u, err = tc.Decode(d); err != nil {
			return 0, err
		}
		return dist + u, nil
	}

	// posSlots use direct encoding and a single model for the four align
	// bits.
	if u, err = d.directDecodeBits(int(bits - alignBits)); err != nil {
		return 0, err
	}
	dist += u << alignBits
	if u, err = dc.alignCodec.Decode(d); err != nil {
		return 0, err
	}
	return dist + u, nil
}

// distPrices caches the prices for distance encoding. The tables are
// refreshed by the encoder after a number of matches.
type distPrices struct {
	posSlot    [lenStates][1 << posSlotBits]uint32
	dist       [lenStates][fullDistances]uint32
	align      [alignSize]uint32
	tableSize  uint32
	matchCount int
	alignCount int
}

// distTableSize computes the number of position slots required for the
// dictionary size.
func distTableSize(dictSize uint32) uint32 {
	const maxLog = 30
	var n uint32
	for n = 0; n < maxLog; n++ {
		if dictSize <= 1<<n {
			break
		}
	}
	return 2 * n
}

// updateDist recomputes the slot and full-distance tables.
func (dp *distPrices) updateDist(dc *distCodec) {
	var temp [fullDistances]uint32
	for i := uint32(startPosModel); i < fullDistances; i++ {
		slot := posSlot(i)
		bits := (slot >> 1) - 1
		base := (2 | (slot & 1)) << bits
		temp[i] = dc.posModel[slot-startPosModel].price(i - base)
	}
	for ls := 0; ls < lenStates; ls++ {
		tc := &dc.posSlotCodecs[ls]
		sp := &dp.posSlot[ls]
		for slot := uint32(0); slot < dp.tableSize; slot++ {
			sp[slot] = tc.price(slot)
		}
		for slot := uint32(endPosModel); slot < dp.tableSize; slot++ {
			sp[slot] += ((slot >> 1) - 1 - alignBits) << priceShiftBits
		}
		dist := &dp.dist[ls]
		i := uint32(0)
		for ; i < startPosModel; i++ {
			dist[i] = sp[i]
		}
		for ; i < fullDistances; i++ {
			dist[i] = sp[posSlot(i)] + temp[i]
		}
	}
	dp.matchCount = 0
}

// updateAlign recomputes the align table.
func (dp *distPrices) updateAlign(dc *distCodec) {
	for i := range dp.align {
		dp.align[i] = dc.alignCodec.price(uint32(i))
	}
	dp.alignCount = 0
}

// price returns the price for the distance offset dist using the length
// offset l.
func (dp *distPrices) price(dist uint32, l uint32) uint32 {
	ls := lenState(l)
	if dist < fullDistances {
		return dp.dist[ls][dist]
	}
	return dp.posSlot[ls][posSlot2(dist)] + dp.align[dist&(alignSize-1)]
}
