// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchgen generates the reproducible data used by the lzmago
// benchmark and computes its speed ratings.
package benchgen

// mwc is a multiply-with-carry generator combining two 16-bit lag-1
// generators.
type mwc struct {
	a1, a2 uint32
}

func (r *mwc) init() {
	r.a1 = 362436069
	r.a2 = 521288629
}

func (r *mwc) next() uint32 {
	r.a1 = 36969*(r.a1&0xffff) + r.a1>>16
	r.a2 = 18000*(r.a2&0xffff) + r.a2>>16
	return r.a1<<16 ^ r.a2
}

// BitGenerator returns random values of a given number of bits. Unused
// bits of a 32-bit value are kept for the next call.
type BitGenerator struct {
	r       mwc
	value   uint32
	numBits int
}

// NewBitGenerator returns a generator in its initial state.
func NewBitGenerator() *BitGenerator {
	g := new(BitGenerator)
	g.Init()
	return g
}

// Init resets the generator.
func (g *BitGenerator) Init() {
	g.r.init()
	g.value = 0
	g.numBits = 0
}

// Bits returns a value with n random bits. The argument n must not
// exceed 31.
func (g *BitGenerator) Bits(n int) uint32 {
	var v uint32
	if g.numBits > n {
		v = g.value & (1<<uint(n) - 1)
		g.value >>= uint(n)
		g.numBits -= n
		return v
	}
	n -= g.numBits
	v = g.value << uint(n)
	g.value = g.r.next()
	v |= g.value & (1<<uint(n) - 1)
	g.value >>= uint(n)
	g.numBits = 32 - n
	return v
}

// Generator creates data with the statistics of LZ-compressed input:
// literals mixed with repetitions of recent distances and matches with
// random offsets.
type Generator struct {
	g    BitGenerator
	rep0 uint32
}

func (g *Generator) logRandBits(n int) uint32 {
	k := g.g.Bits(n)
	return g.g.Bits(int(k))
}

func (g *Generator) offset() uint32 {
	if g.g.Bits(1) == 0 {
		return g.logRandBits(4)
	}
	return g.logRandBits(4)<<10 | g.g.Bits(10)
}

func (g *Generator) len1() uint32 {
	return g.g.Bits(1 + int(g.g.Bits(2)))
}

func (g *Generator) len2() uint32 {
	return g.g.Bits(2 + int(g.g.Bits(2)))
}

// Fill fills p with generated data. The content depends only on the
// length of p.
func (g *Generator) Fill(p []byte) {
	g.g.Init()
	g.rep0 = 1
	n := uint32(len(p))
	for pos := uint32(0); pos < n; {
		if g.g.Bits(1) == 0 || pos < 1 {
			p[pos] = byte(g.g.Bits(8))
			pos++
			continue
		}
		var k uint32
		if g.g.Bits(3) == 0 {
			k = 1 + g.len1()
		} else {
			for {
				g.rep0 = g.offset()
				if g.rep0 < pos {
					break
				}
			}
			g.rep0++
			k = 2 + g.len2()
		}
		for i := uint32(0); i < k && pos < n; i++ {
			p[pos] = p[pos-g.rep0]
			pos++
		}
	}
}

// Generate returns a new buffer of the given size filled with generated
// data.
func Generate(size int) []byte {
	p := make([]byte, size)
	var g Generator
	g.Fill(p)
	return p
}
