// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"hash/crc32"
	"io"

	"github.com/ulikunitz/lzma/xlog"
)

// crcTable mixes the first bytes of a position into the hash values.
var crcTable = crc32.MakeTable(crc32.IEEE)

// Constants for the binary tree match finders.
const (
	hash2Size   = 1 << 10
	hash3Size   = 1 << 16
	bt2HashSize = 1 << 16
	hash3Offset = hash2Size
	// position 0 marks an empty slot
	emptyHashValue = 0
	// positions are normalized before they reach this value
	maxValForNormalize = 1<<31 - 1
)

// matchFinder finds matches for the current position of the input
// window. getMatches returns the number of values written into dist; the
// values are pairs of length and distance offset with increasing lengths.
type matchFinder interface {
	init(r io.Reader)
	getMatches(dist []uint32) int
	skip(n uint32)
	indexByte(index int) byte
	matchLen(index int, dist uint32, limit uint32) uint32
	available() uint32
	readErr() error
}

// newMatchFinder creates the match finder selected by mf.
func newMatchFinder(mf MatchFinder, historySize, keepBefore, matchMaxLen,
	keepAfter uint32,
) (matchFinder, error) {
	switch mf {
	case BT2:
		t := new(bt2)
		err := t.create(2, historySize, keepBefore, matchMaxLen, keepAfter)
		return t, err
	case BT4:
		t := new(bt4)
		err := t.create(4, historySize, keepBefore, matchMaxLen, keepAfter)
		return t, err
	}
	return nil, errors.New("lzma: unsupported match finder")
}

// binTree stores the positions of the dictionary in binary trees sorted
// by the bytes following each position. The nodes are kept in son, which
// is indexed by the cyclic position.
type binTree struct {
	inWindow
	son  []uint32
	hash []uint32

	cyclicPos   uint32
	cyclicSize  uint32
	matchMaxLen uint32
	cutValue    uint32
	hashMask    uint32
	hashSizeSum uint32

	fixHashSize        uint32
	numHashDirectBytes uint32
	minMatchCheck      uint32
}

var errHistorySize = errors.New("lzma: history size too large")

// create allocates the arrays of the binary tree. The argument hashBytes
// must be 2 or 4.
func (t *binTree) create(hashBytes int, historySize, keepBefore,
	matchMaxLen, keepAfter uint32,
) error {
	if historySize > maxValForNormalize-256 {
		return errHistorySize
	}
	if hashBytes > 2 {
		t.numHashDirectBytes = 0
		t.minMatchCheck = 4
		t.fixHashSize = hash2Size + hash3Size
	} else {
		t.numHashDirectBytes = 2
		t.minMatchCheck = 3
		t.fixHashSize = 0
	}
	t.cutValue = 16 + matchMaxLen>>1
	reserve := (historySize+keepBefore+matchMaxLen+keepAfter)/2 + 256
	t.inWindow.create(historySize+keepBefore, matchMaxLen+keepAfter,
		reserve)
	t.matchMaxLen = matchMaxLen

	cyclicSize := historySize + 1
	if t.cyclicSize != cyclicSize || t.son == nil {
		t.cyclicSize = cyclicSize
		t.son = make([]uint32, 2*cyclicSize)
	}

	hs := uint32(bt2HashSize)
	if hashBytes > 2 {
		hs = historySize - 1
		hs |= hs >> 1
		hs |= hs >> 2
		hs |= hs >> 4
		hs |= hs >> 8
		hs >>= 1
		hs |= 0xffff
		if hs > 1<<24 {
			hs >>= 1
		}
		t.hashMask = hs
		hs++
		hs += t.fixHashSize
	}
	if hs != t.hashSizeSum || t.hash == nil {
		t.hashSizeSum = hs
		t.hash = make([]uint32, hs)
	}
	return nil
}

// init resets the tree and starts reading from r.
func (t *binTree) init(r io.Reader) {
	if t.son == nil || t.hash == nil {
		panic("lzma: match finder not created")
	}
	t.inWindow.init(r)
	for i := range t.hash {
		t.hash[i] = emptyHashValue
	}
	t.cyclicPos = 0
	// The first position becomes 1 because 0 marks empty slots.
	t.reduceOffsets(^uint32(0))
}

// movePos advances the position of the window and the cyclic buffer.
func (t *binTree) movePos() {
	t.cyclicPos++
	if t.cyclicPos >= t.cyclicSize {
		t.cyclicPos = 0
	}
	t.inWindow.movePos()
	if t.pos == maxValForNormalize {
		t.normalize()
	}
}

// lenLimit returns the maximum match length for the current position. The
// flag ok is false if too few bytes are available for a match.
func (t *binTree) lenLimit() (limit uint32, ok bool) {
	if t.pos+t.matchMaxLen <= t.streamPos {
		return t.matchMaxLen, true
	}
	limit = t.streamPos - t.pos
	return limit, limit >= t.minMatchCheck
}

// matchMinPos returns the oldest position still in the dictionary.
func (t *binTree) matchMinPos() uint32 {
	if t.pos > t.cyclicSize {
		return t.pos - t.cyclicSize
	}
	return 0
}

// insert links the current position into the tree that starts at
// curMatch. If dist is not nil, every match longer than maxLen found on
// the way is appended at dist[n:]. The new value for n is returned.
func (t *binTree) insert(curMatch, lenLimit, maxLen uint32, dist []uint32,
	n int,
) int {
	matchMinPos := t.matchMinPos()
	cur := int(t.bufOffset + t.pos)
	ptr0 := t.cyclicPos<<1 + 1
	ptr1 := t.cyclicPos << 1
	len0, len1 := t.numHashDirectBytes, t.numHashDirectBytes
	for count := t.cutValue; ; count-- {
		if curMatch <= matchMinPos || count == 0 {
			t.son[ptr0] = emptyHashValue
			t.son[ptr1] = emptyHashValue
			return n
		}
		delta := t.pos - curMatch
		var cp uint32
		if delta <= t.cyclicPos {
			cp = (t.cyclicPos - delta) << 1
		} else {
			cp = (t.cyclicPos - delta + t.cyclicSize) << 1
		}
		pby1 := int(t.bufOffset + curMatch)
		l := min(len0, len1)
		if t.buf[pby1+int(l)] == t.buf[cur+int(l)] {
			for l++; l != lenLimit; l++ {
				if t.buf[pby1+int(l)] != t.buf[cur+int(l)] {
					break
				}
			}
			if dist != nil && maxLen < l {
				maxLen = l
				dist[n] = l
				dist[n+1] = delta - 1
				n += 2
			}
			if l == lenLimit {
				t.son[ptr1] = t.son[cp]
				t.son[ptr0] = t.son[cp+1]
				return n
			}
		}
		if t.buf[pby1+int(l)] < t.buf[cur+int(l)] {
			t.son[ptr1] = curMatch
			ptr1 = cp + 1
			curMatch = t.son[ptr1]
			len1 = l
		} else {
			t.son[ptr0] = curMatch
			ptr0 = cp
			curMatch = t.son[ptr0]
			len0 = l
		}
	}
}

// normalizeLinks reduces all positions by sub. Positions that would drop
// out of the dictionary become empty.
func normalizeLinks(items []uint32, sub uint32) {
	for i, v := range items {
		if v <= sub {
			items[i] = emptyHashValue
		} else {
			items[i] = v - sub
		}
	}
}

// normalize reduces all positions to prevent overflows.
func (t *binTree) normalize() {
	sub := t.pos - t.cyclicSize
	normalizeLinks(t.son[:2*t.cyclicSize], sub)
	normalizeLinks(t.hash[:t.hashSizeSum], sub)
	t.reduceOffsets(sub)
	xlog.Printf(debugLogger(), "match finder normalized by %d", sub)
}

// bt4 is the binary tree match finder using hashes over 2, 3 and 4
// bytes.
type bt4 struct {
	binTree
}

// hashes computes the hash values for the current position.
func (t *bt4) hashes(cur int) (h2, h3, hv uint32) {
	temp := crcTable[t.buf[cur]] ^ uint32(t.buf[cur+1])
	h2 = temp & (hash2Size - 1)
	temp ^= uint32(t.buf[cur+2]) << 8
	h3 = temp & (hash3Size - 1)
	hv = (temp ^ crcTable[t.buf[cur+3]]<<5) & t.hashMask
	return h2, h3, hv
}

func (t *bt4) getMatches(dist []uint32) int {
	lenLimit, ok := t.lenLimit()
	if !ok {
		t.movePos()
		return 0
	}
	matchMinPos := t.matchMinPos()
	cur := int(t.bufOffset + t.pos)
	h2, h3, hv := t.hashes(cur)

	n := 0
	maxLen := uint32(1)
	curMatch := t.hash[t.fixHashSize+hv]
	curMatch2 := t.hash[h2]
	curMatch3 := t.hash[hash3Offset+h3]
	t.hash[h2] = t.pos
	t.hash[hash3Offset+h3] = t.pos
	if curMatch2 > matchMinPos &&
		t.buf[int(t.bufOffset+curMatch2)] == t.buf[cur] {
		maxLen = 2
		dist[n] = 2
		dist[n+1] = t.pos - curMatch2 - 1
		n += 2
	}
	if curMatch3 > matchMinPos &&
		t.buf[int(t.bufOffset+curMatch3)] == t.buf[cur] {
		if curMatch3 == curMatch2 && n > 1 {
			n -= 2
		}
		maxLen = 3
		dist[n] = 3
		dist[n+1] = t.pos - curMatch3 - 1
		n += 2
		curMatch2 = curMatch3
	}
	if n > 1 && curMatch2 == curMatch {
		n -= 2
		maxLen = 1
	}
	t.hash[t.fixHashSize+hv] = t.pos

	n = t.insert(curMatch, lenLimit, maxLen, dist, n)
	t.movePos()
	return n
}

func (t *bt4) skip(num uint32) {
	if num == 0 {
		panic("lzma: skip of zero bytes")
	}
	for ; num > 0; num-- {
		lenLimit, ok := t.lenLimit()
		if !ok {
			t.movePos()
			continue
		}
		h2, h3, hv := t.hashes(int(t.bufOffset + t.pos))
		t.hash[h2] = t.pos
		t.hash[hash3Offset+h3] = t.pos
		curMatch := t.hash[t.fixHashSize+hv]
		t.hash[t.fixHashSize+hv] = t.pos
		t.insert(curMatch, lenLimit, 0, nil, 0)
		t.movePos()
	}
}

// bt2 is the binary tree match finder using a direct hash over 2 bytes.
type bt2 struct {
	binTree
}

func (t *bt2) hash2(cur int) uint32 {
	return uint32(t.buf[cur]) ^ uint32(t.buf[cur+1])<<8
}

func (t *bt2) getMatches(dist []uint32) int {
	lenLimit, ok := t.lenLimit()
	if !ok {
		t.movePos()
		return 0
	}
	matchMinPos := t.matchMinPos()
	cur := int(t.bufOffset + t.pos)
	hv := t.hash2(cur)
	curMatch := t.hash[hv]
	t.hash[hv] = t.pos

	n := 0
	maxLen := uint32(1)
	// The first two bytes are equal; a different third byte gives a
	// match of length 2 that the tree walk would not report.
	k := int(t.numHashDirectBytes)
	if curMatch > matchMinPos &&
		t.buf[int(t.bufOffset+curMatch)+k] != t.buf[cur+k] {
		maxLen = t.numHashDirectBytes
		dist[0] = maxLen
		dist[1] = t.pos - curMatch - 1
		n = 2
	}

	n = t.insert(curMatch, lenLimit, maxLen, dist, n)
	t.movePos()
	return n
}

func (t *bt2) skip(num uint32) {
	if num == 0 {
		panic("lzma: skip of zero bytes")
	}
	for ; num > 0; num-- {
		lenLimit, ok := t.lenLimit()
		if !ok {
			t.movePos()
			continue
		}
		hv := t.hash2(int(t.bufOffset + t.pos))
		curMatch := t.hash[hv]
		t.hash[hv] = t.pos
		t.insert(curMatch, lenLimit, 0, nil, 0)
		t.movePos()
	}
}
