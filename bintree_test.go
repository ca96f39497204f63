// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"testing"
)

func TestMatchFinders(t *testing.T) {
	data := bytes.Repeat([]byte("abcd"), 20)
	for _, mf := range []MatchFinder{BT2, BT4} {
		f, err := newMatchFinder(mf, 1<<16, 16, 32, 32)
		if err != nil {
			t.Fatalf("newMatchFinder error %s", err)
		}
		f.init(bytes.NewReader(data))
		if a := f.available(); a != uint32(len(data)) {
			t.Fatalf("%s: available %d; want %d", mf, a, len(data))
		}
		dist := make([]uint32, 2*maxMatchLen+2)
		if n := f.getMatches(dist); n != 0 {
			t.Fatalf("%s: %d values at position 0; want 0", mf, n)
		}
		f.skip(3)
		n := f.getMatches(dist)
		if n != 2 {
			t.Fatalf("%s: getMatches returned %d values; want 2",
				mf, n)
		}
		if dist[0] != 32 || dist[1] != 3 {
			t.Fatalf("%s: match (%d, %d); want (32, 3)", mf,
				dist[0], dist[1])
		}
		if c := f.indexByte(-1); c != 'a' {
			t.Fatalf("%s: indexByte(-1) %q; want %q", mf, c, 'a')
		}
		// The match length is limited by the end of the data.
		if k := f.matchLen(-1, 3, 100); k != 76 {
			t.Fatalf("%s: matchLen %d; want 76", mf, k)
		}
		if err = f.readErr(); err != nil {
			t.Fatalf("%s: readErr %s", mf, err)
		}
	}
}

func TestMatchFinderShortMatch(t *testing.T) {
	f, err := newMatchFinder(BT2, 1<<12, 16, 32, 32)
	if err != nil {
		t.Fatalf("newMatchFinder error %s", err)
	}
	data := []byte("abXYZabQRSTUVWXYZ")
	f.init(bytes.NewReader(data))
	f.skip(5)
	dist := make([]uint32, 2*maxMatchLen+2)
	// Too few bytes are available for the limit of 32, but enough for a
	// match.
	n := f.getMatches(dist)
	if n != 2 || dist[0] != 2 || dist[1] != 4 {
		t.Fatalf("getMatches returned %v; want [2 4]", dist[:n])
	}
}

func TestMatchFinderSkipZero(t *testing.T) {
	f, err := newMatchFinder(BT4, 1<<12, 16, 32, 32)
	if err != nil {
		t.Fatalf("newMatchFinder error %s", err)
	}
	f.init(bytes.NewReader([]byte("abc")))
	defer func() {
		if recover() == nil {
			t.Fatalf("skip(0) didn't panic")
		}
	}()
	f.skip(0)
}

func TestMatchFinderNotCreated(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("init without create didn't panic")
		}
	}()
	var t4 bt4
	t4.init(bytes.NewReader(nil))
}

func TestNormalizeLinks(t *testing.T) {
	items := []uint32{0, 5, 10, 11, 100}
	normalizeLinks(items, 10)
	want := []uint32{0, 0, 0, 1, 90}
	for i, v := range items {
		if v != want[i] {
			t.Fatalf("normalizeLinks returned %v; want %v", items,
				want)
		}
	}
}

func TestNormalize(t *testing.T) {
	var t4 bt4
	if err := t4.create(4, 16, 4, 8, 8); err != nil {
		t.Fatalf("create error %s", err)
	}
	data := bytes.Repeat([]byte("xyz"), 20)
	t4.init(bytes.NewReader(data))
	t4.skip(30)
	pos := t4.pos
	t4.normalize()
	sub := pos - t4.cyclicSize
	if t4.pos != pos-sub {
		t.Fatalf("pos %d after normalize; want %d", t4.pos, pos-sub)
	}
	dist := make([]uint32, 2*maxMatchLen+2)
	n := t4.getMatches(dist)
	if n == 0 || dist[n-1] != 2 {
		t.Fatalf("getMatches after normalize returned %v", dist[:n])
	}
}

func TestHistorySize(t *testing.T) {
	if _, err := newMatchFinder(BT4, 1<<31, 16, 32, 32); err != errHistorySize {
		t.Fatalf("newMatchFinder returned %v; want %v", err,
			errHistorySize)
	}
	if _, err := newMatchFinder(MatchFinder(3), 1<<12, 16, 32, 32); err == nil {
		t.Fatalf("newMatchFinder accepted unknown match finder")
	}
}
