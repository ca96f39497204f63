// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// optimal is a node of the price lattice of the optimal parser. The node
// at index i describes the cheapest known way to encode the next i bytes.
type optimal struct {
	state lzmaState
	// the node has been reached by a literal following another
	// operation
	prev1IsChar bool
	// the operation before the literal is a rep or match with
	// posPrev2 and backPrev2
	prev2     bool
	posPrev2  uint32
	backPrev2 uint32

	price    uint32
	posPrev  uint32
	backPrev uint32
	backs    [4]uint32
}

func (o *optimal) makeAsChar() {
	o.backPrev = literalBack
	o.prev1IsChar = false
}

func (o *optimal) makeAsShortRep() {
	o.backPrev = 0
	o.prev1IsChar = false
}

func (o *optimal) isShortRep() bool {
	return o.backPrev == 0
}

// repLen1Price returns the price of a short repetition without the
// isMatch and isRep bits.
func (e *Encoder) repLen1Price(st lzmaState, posState uint32) uint32 {
	s := &e.state
	return s.isRepG0[st].price0() + s.isRep0Long[state2(st, posState)].price0()
}

// pureRepPrice returns the price for selecting rep[i].
func (e *Encoder) pureRepPrice(i uint32, st lzmaState, posState uint32) uint32 {
	s := &e.state
	if i == 0 {
		return s.isRepG0[st].price0() +
			s.isRep0Long[state2(st, posState)].price1()
	}
	p := s.isRepG0[st].price1()
	if i == 1 {
		return p + s.isRepG1[st].price0()
	}
	return p + s.isRepG1[st].price1() + s.isRepG2[st].price(i-2)
}

// repPrice returns the price for a repetition of rep[i] with length n.
func (e *Encoder) repPrice(i, n uint32, st lzmaState, posState uint32) uint32 {
	return e.repLenPrices.price(n-minMatchLen, posState) +
		e.pureRepPrice(i, st, posState)
}

// posLenPrice returns the price of a match with distance offset dist and
// length n.
func (e *Encoder) posLenPrice(dist, n uint32, posState uint32) uint32 {
	return e.distPrices.price(dist, n-minMatchLen) +
		e.lenPrices.price(n-minMatchLen, posState)
}

// literalPrice returns the price of the literal c at position pos.
func (e *Encoder) literalPrice(pos uint32, prev byte, matched bool,
	match, c byte,
) uint32 {
	lc := &e.state.litCodec
	return lc.price(c, matched, match, lc.litState(pos, prev))
}

// backward reconstructs the path ending at node cur. The path is stored
// in the posPrev and backPrev fields in forward direction starting at
// node 0. It returns the length and back value of the first operation.
func (e *Encoder) backward(cur uint32) (n uint32, back uint32) {
	opt := &e.opt
	e.optEnd = cur
	posMem := opt[cur].posPrev
	backMem := opt[cur].backPrev
	for {
		if opt[cur].prev1IsChar {
			opt[posMem].makeAsChar()
			opt[posMem].posPrev = posMem - 1
			if opt[cur].prev2 {
				opt[posMem-1].prev1IsChar = false
				opt[posMem-1].posPrev = opt[cur].posPrev2
				opt[posMem-1].backPrev = opt[cur].backPrev2
			}
		}
		posPrev := posMem
		backCur := backMem

		backMem = opt[posPrev].backPrev
		posMem = opt[posPrev].posPrev

		opt[posPrev].backPrev = backCur
		opt[posPrev].posPrev = cur
		cur = posPrev
		if cur == 0 {
			break
		}
	}
	back = opt[0].backPrev
	e.optCur = opt[0].posPrev
	return e.optCur, back
}

// getOptimum returns the length and back value of the next operation. A
// back value below 4 selects rep[back], literalBack a literal and all other
// values a match with distance offset back-4. The position is the number
// of bytes encoded so far.
func (e *Encoder) getOptimum(position uint32) (lenRes uint32, back uint32) {
	opt := &e.opt
	if e.optEnd != e.optCur {
		o := &opt[e.optCur]
		lenRes = o.posPrev - e.optCur
		back = o.backPrev
		e.optCur = o.posPrev
		return lenRes, back
	}
	e.optCur, e.optEnd = 0, 0

	var lenMain uint32
	var numPairs int
	if !e.longestMatchFound {
		lenMain, numPairs = e.readMatchDistances()
	} else {
		lenMain = e.longestMatchLen
		numPairs = e.numDistPairs
		e.longestMatchFound = false
	}

	numAvail := e.mf.available() + 1
	if numAvail < 2 {
		return 1, literalBack
	}

	s := &e.state
	fastBytes := uint32(e.cfg.FastBytes)
	repMaxIndex := uint32(0)
	for i := uint32(0); i < 4; i++ {
		e.reps[i] = s.rep[i]
		e.repLens[i] = e.mf.matchLen(-1, e.reps[i], maxMatchLen)
		if e.repLens[i] > e.repLens[repMaxIndex] {
			repMaxIndex = i
		}
	}
	if e.repLens[repMaxIndex] >= fastBytes {
		lenRes = e.repLens[repMaxIndex]
		e.movePos(lenRes - 1)
		return lenRes, repMaxIndex
	}
	if lenMain >= fastBytes {
		back = e.matchDist[numPairs-1] + 4
		e.movePos(lenMain - 1)
		return lenMain, back
	}

	curByte := e.mf.indexByte(-1)
	matchByte := e.mf.indexByte(-int(s.rep[0]) - 1 - 1)

	if lenMain < 2 && curByte != matchByte && e.repLens[repMaxIndex] < 2 {
		return 1, literalBack
	}

	opt[0].state = s.state
	posState := position & s.posMask

	opt[1].price = s.isMatch[state2(s.state, posState)].price0() +
		e.literalPrice(position, e.prevByte, !s.state.isLiteral(),
			matchByte, curByte)
	opt[1].makeAsChar()

	matchPrice := s.isMatch[state2(s.state, posState)].price1()
	repMatchPrice := matchPrice + s.isRep[s.state].price1()

	if matchByte == curByte {
		shortRepPrice := repMatchPrice + e.repLen1Price(s.state, posState)
		if shortRepPrice < opt[1].price {
			opt[1].price = shortRepPrice
			opt[1].makeAsShortRep()
		}
	}

	lenEnd := max(lenMain, e.repLens[repMaxIndex])
	if lenEnd < 2 {
		return 1, opt[1].backPrev
	}

	opt[1].posPrev = 0
	opt[0].backs = e.reps

	for l := lenEnd; l >= 2; l-- {
		opt[l].price = infinityPrice
	}

	for i := uint32(0); i < 4; i++ {
		repLen := e.repLens[i]
		if repLen < 2 {
			continue
		}
		price := repMatchPrice + e.pureRepPrice(i, s.state, posState)
		for ; repLen >= 2; repLen-- {
			p := price + e.repLenPrices.price(repLen-minMatchLen, posState)
			o := &opt[repLen]
			if p < o.price {
				o.price = p
				o.posPrev = 0
				o.backPrev = i
				o.prev1IsChar = false
			}
		}
	}

	normalMatchPrice := matchPrice + s.isRep[s.state].price0()

	l := uint32(2)
	if e.repLens[0] >= 2 {
		l = e.repLens[0] + 1
	}
	if l <= lenMain {
		offs := 0
		for l > e.matchDist[offs] {
			offs += 2
		}
		for ; ; l++ {
			dist := e.matchDist[offs+1]
			p := normalMatchPrice + e.posLenPrice(dist, l, posState)
			o := &opt[l]
			if p < o.price {
				o.price = p
				o.posPrev = 0
				o.backPrev = dist + 4
				o.prev1IsChar = false
			}
			if l == e.matchDist[offs] {
				offs += 2
				if offs == numPairs {
					break
				}
			}
		}
	}

	cur := uint32(0)
	for {
		cur++
		if cur == lenEnd {
			return e.backward(cur)
		}
		newLen, numPairs := e.readMatchDistances()
		if newLen >= fastBytes {
			e.numDistPairs = numPairs
			e.longestMatchLen = newLen
			e.longestMatchFound = true
			return e.backward(cur)
		}
		position++

		o := &opt[cur]
		posPrev := o.posPrev
		var st lzmaState
		if o.prev1IsChar {
			posPrev--
			if o.prev2 {
				st = opt[o.posPrev2].state
				if o.backPrev2 < 4 {
					st.updateRep()
				} else {
					st.updateMatch()
				}
			} else {
				st = opt[posPrev].state
			}
			st.updateLiteral()
		} else {
			st = opt[posPrev].state
		}

		if posPrev == cur-1 {
			if o.isShortRep() {
				st.updateShortRep()
			} else {
				st.updateLiteral()
			}
		} else {
			var pos uint32
			if o.prev1IsChar && o.prev2 {
				posPrev = o.posPrev2
				pos = o.backPrev2
				st.updateRep()
			} else {
				pos = o.backPrev
				if pos < 4 {
					st.updateRep()
				} else {
					st.updateMatch()
				}
			}
			b := &opt[posPrev].backs
			switch pos {
			case 0:
				e.reps = *b
			case 1:
				e.reps = [4]uint32{b[1], b[0], b[2], b[3]}
			case 2:
				e.reps = [4]uint32{b[2], b[0], b[1], b[3]}
			case 3:
				e.reps = [4]uint32{b[3], b[0], b[1], b[2]}
			default:
				e.reps = [4]uint32{pos - 4, b[0], b[1], b[2]}
			}
		}
		o.state = st
		o.backs = e.reps
		curPrice := o.price

		curByte = e.mf.indexByte(-1)
		matchByte = e.mf.indexByte(-int(e.reps[0]) - 1 - 1)
		posState = position & s.posMask

		curAnd1Price := curPrice +
			s.isMatch[state2(st, posState)].price0() +
			e.literalPrice(position, e.mf.indexByte(-2), !st.isLiteral(),
				matchByte, curByte)

		next := &opt[cur+1]
		nextIsChar := false
		if curAnd1Price < next.price {
			next.price = curAnd1Price
			next.posPrev = cur
			next.makeAsChar()
			nextIsChar = true
		}

		matchPrice = curPrice + s.isMatch[state2(st, posState)].price1()
		repMatchPrice = matchPrice + s.isRep[st].price1()

		if matchByte == curByte && !(next.posPrev < cur && next.backPrev == 0) {
			shortRepPrice := repMatchPrice + e.repLen1Price(st, posState)
			if shortRepPrice <= next.price {
				next.price = shortRepPrice
				next.posPrev = cur
				next.makeAsShortRep()
				nextIsChar = true
			}
		}

		numAvailFull := min(numOpts-1-cur, e.mf.available()+1)
		numAvail = numAvailFull
		if numAvail < 2 {
			continue
		}
		if numAvail > fastBytes {
			numAvail = fastBytes
		}

		if !nextIsChar && matchByte != curByte {
			// literal followed by rep0
			t := min(numAvailFull-1, fastBytes)
			lenTest2 := e.mf.matchLen(0, e.reps[0], t)
			if lenTest2 >= 2 {
				st2 := st
				st2.updateLiteral()
				posStateNext := (position + 1) & s.posMask
				nextRepMatchPrice := curAnd1Price +
					s.isMatch[state2(st2, posStateNext)].price1() +
					s.isRep[st2].price1()
				offset := cur + 1 + lenTest2
				for lenEnd < offset {
					lenEnd++
					opt[lenEnd].price = infinityPrice
				}
				p := nextRepMatchPrice +
					e.repPrice(0, lenTest2, st2, posStateNext)
				o := &opt[offset]
				if p < o.price {
					o.price = p
					o.posPrev = cur + 1
					o.backPrev = 0
					o.prev1IsChar = true
					o.prev2 = false
				}
			}
		}

		startLen := uint32(2)
		for repIndex := uint32(0); repIndex < 4; repIndex++ {
			lenTest := e.mf.matchLen(-1, e.reps[repIndex], numAvail)
			if lenTest < 2 {
				continue
			}
			for k := lenTest; k >= 2; k-- {
				for lenEnd < cur+k {
					lenEnd++
					opt[lenEnd].price = infinityPrice
				}
				p := repMatchPrice + e.repPrice(repIndex, k, st, posState)
				o := &opt[cur+k]
				if p < o.price {
					o.price = p
					o.posPrev = cur
					o.backPrev = repIndex
					o.prev1IsChar = false
				}
			}

			if repIndex == 0 {
				startLen = lenTest + 1
			}

			if lenTest >= numAvailFull {
				continue
			}
			// rep followed by a literal and rep0
			t := min(numAvailFull-1-lenTest, fastBytes)
			lenTest2 := e.mf.matchLen(int(lenTest), e.reps[repIndex], t)
			if lenTest2 < 2 {
				continue
			}
			st2 := st
			st2.updateRep()
			posStateNext := (position + lenTest) & s.posMask
			curAndLenCharPrice := repMatchPrice +
				e.repPrice(repIndex, lenTest, st, posState) +
				s.isMatch[state2(st2, posStateNext)].price0() +
				e.literalPrice(position+lenTest,
					e.mf.indexByte(int(lenTest)-1-1), true,
					e.mf.indexByte(int(lenTest)-1-int(e.reps[repIndex]+1)),
					e.mf.indexByte(int(lenTest)-1))
			st2.updateLiteral()
			posStateNext = (position + lenTest + 1) & s.posMask
			nextMatchPrice := curAndLenCharPrice +
				s.isMatch[state2(st2, posStateNext)].price1()
			nextRepMatchPrice := nextMatchPrice + s.isRep[st2].price1()

			offset := lenTest + 1 + lenTest2
			for lenEnd < cur+offset {
				lenEnd++
				opt[lenEnd].price = infinityPrice
			}
			p := nextRepMatchPrice + e.repPrice(0, lenTest2, st2, posStateNext)
			o := &opt[cur+offset]
			if p < o.price {
				o.price = p
				o.posPrev = cur + lenTest + 1
				o.backPrev = 0
				o.prev1IsChar = true
				o.prev2 = true
				o.posPrev2 = cur
				o.backPrev2 = repIndex
			}
		}

		if newLen > numAvail {
			newLen = numAvail
			numPairs = 0
			for newLen > e.matchDist[numPairs] {
				numPairs += 2
			}
			e.matchDist[numPairs] = newLen
			numPairs += 2
		}
		if newLen < startLen {
			continue
		}

		normalMatchPrice = matchPrice + s.isRep[st].price0()
		for lenEnd < cur+newLen {
			lenEnd++
			opt[lenEnd].price = infinityPrice
		}
		offs := 0
		for startLen > e.matchDist[offs] {
			offs += 2
		}
		for lenTest := startLen; ; lenTest++ {
			curBack := e.matchDist[offs+1]
			p := normalMatchPrice + e.posLenPrice(curBack, lenTest, posState)
			o := &opt[cur+lenTest]
			if p < o.price {
				o.price = p
				o.posPrev = cur
				o.backPrev = curBack + 4
				o.prev1IsChar = false
			}
			if lenTest != e.matchDist[offs] {
				continue
			}
			if lenTest < numAvailFull {
				// match followed by a literal and rep0
				t := min(numAvailFull-1-lenTest, fastBytes)
				lenTest2 := e.mf.matchLen(int(lenTest), curBack, t)
				if lenTest2 >= 2 {
					st2 := st
					st2.updateMatch()
					posStateNext := (position + lenTest) & s.posMask
					curAndLenCharPrice := p +
						s.isMatch[state2(st2, posStateNext)].price0() +
						e.literalPrice(position+lenTest,
							e.mf.indexByte(int(lenTest)-1-1), true,
							e.mf.indexByte(int(lenTest)-int(curBack+1)-1),
							e.mf.indexByte(int(lenTest)-1))
					st2.updateLiteral()
					posStateNext = (position + lenTest + 1) & s.posMask
					nextMatchPrice := curAndLenCharPrice +
						s.isMatch[state2(st2, posStateNext)].price1()
					nextRepMatchPrice := nextMatchPrice +
						s.isRep[st2].price1()

					offset := lenTest + 1 + lenTest2
					for lenEnd < cur+offset {
						lenEnd++
						opt[lenEnd].price = infinityPrice
					}
					p = nextRepMatchPrice +
						e.repPrice(0, lenTest2, st2, posStateNext)
					o := &opt[cur+offset]
					if p < o.price {
						o.price = p
						o.posPrev = cur + lenTest + 1
						o.backPrev = 0
						o.prev1IsChar = true
						o.prev2 = true
						o.posPrev2 = cur
						o.backPrev2 = curBack + 4
					}
				}
			}
			offs += 2
			if offs == numPairs {
				break
			}
		}
	}
}
