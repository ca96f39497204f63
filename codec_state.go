// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// codecState holds the probability model shared by encoder and decoder.
// Both sides must apply exactly the same updates.
type codecState struct {
	Properties
	isMatch     [states << maxPosBits]prob
	isRep       [states]prob
	isRepG0     [states]prob
	isRepG1     [states]prob
	isRepG2     [states]prob
	isRep0Long  [states << maxPosBits]prob
	litCodec    literalCodec
	lenCodec    lengthCodec
	repLenCodec lengthCodec
	distCodec   distCodec
	state       lzmaState
	rep         [4]uint32
	posMask     uint32
}

// init resets the model for the given properties.
func (s *codecState) init(p Properties) {
	s.Properties = p
	s.posMask = 1<<uint(p.PB) - 1
	initProbs(s.isMatch[:])
	initProbs(s.isRep[:])
	initProbs(s.isRepG0[:])
	initProbs(s.isRepG1[:])
	initProbs(s.isRepG2[:])
	initProbs(s.isRep0Long[:])
	s.litCodec.init(p.LC, p.LP)
	s.lenCodec.init()
	s.repLenCodec.init()
	s.distCodec.init()
	s.state = 0
	s.rep = [4]uint32{}
}

// posState computes the position state for the position.
func (s *codecState) posState(pos uint32) uint32 {
	return pos & s.posMask
}

// state2 returns the index for the probabilities depending on state and
// position state.
func state2(st lzmaState, posState uint32) uint32 {
	return uint32(st)<<maxPosBits | posState
}
