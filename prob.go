// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// movebits defines the number of bits used for the updates of probability
// values.
const movebits = 5

// probbits defines the number of bits of a probability value.
const probbits = 11

// probInit defines 0.5 as initial value for prob values.
const probInit prob = 1 << (probbits - 1)

// Constants for the price computation. Prices are measured in 1/64 bits.
const (
	moveReducingBits = 2
	priceShiftBits   = 6
	infinityPrice    = 1<<32 - 1
)

// Type prob represents probabilities. It gives the probability of a zero
// bit scaled to 2^probbits.
type prob uint16

// Dec decreases the probability. The decrease is proportional to the
// probability value.
func (p *prob) dec() {
	*p -= *p >> movebits
}

// Inc increases the probability. The Increase is proportional to the
// difference of 1 and the probability value.
func (p *prob) inc() {
	*p += ((1 << probbits) - *p) >> movebits
}

// update adjusts the probability for the bit b.
func (p *prob) update(b uint32) {
	if b == 0 {
		p.inc()
	} else {
		p.dec()
	}
}

// Computes the new bound for a given range using the probability value.
func (p prob) bound(r uint32) uint32 {
	return (r >> probbits) * uint32(p)
}

// probPrices maps a probability reduced by moveReducingBits to the
// approximated code length of a zero bit.
var probPrices = computeProbPrices()

func computeProbPrices() []uint32 {
	const n = probbits - moveReducingBits
	prices := make([]uint32, 1<<n)
	for i := n - 1; i >= 0; i-- {
		start := uint32(1) << (n - i - 1)
		end := uint32(1) << (n - i)
		for j := start; j < end; j++ {
			prices[j] = uint32(i)<<priceShiftBits +
				((end-j)<<priceShiftBits)>>(n-i-1)
		}
	}
	return prices
}

// price0 returns the price for encoding a zero bit.
func (p prob) price0() uint32 {
	return probPrices[p>>moveReducingBits]
}

// price1 returns the price for encoding a one bit.
func (p prob) price1() uint32 {
	return probPrices[((1<<probbits)-uint32(p))>>moveReducingBits]
}

// price returns the price for the least-significant bit of b.
func (p prob) price(b uint32) uint32 {
	b &= 1
	i := ((uint32(p) - b) ^ (0 - b)) & (1<<probbits - 1)
	return probPrices[i>>moveReducingBits]
}

// initProbs sets all probabilities to probInit.
func initProbs(p []prob) {
	for i := range p {
		p[i] = probInit
	}
}
