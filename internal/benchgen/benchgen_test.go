// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgen

import (
	"bytes"
	"encoding/hex"
	"hash/crc32"
	"testing"
	"time"
)

func TestMWC(t *testing.T) {
	var r mwc
	r.init()
	want := []uint32{0x30e145a2, 0x64f31f06}
	for i, w := range want {
		if v := r.next(); v != w {
			t.Fatalf("value %d: got %#08x; want %#08x", i, v, w)
		}
	}
}

func TestBitGenerator(t *testing.T) {
	g := NewBitGenerator()
	var v uint32
	for i := 0; i < 4; i++ {
		v |= g.Bits(8) << (8 * uint(i))
	}
	if v != 0x30e145a2 {
		t.Fatalf("got %#08x; want %#08x", v, 0x30e145a2)
	}
	if b := g.Bits(0); b != 0 {
		t.Fatalf("Bits(0) returned %d", b)
	}
	g.Init()
	if b := g.Bits(4); b != 0x2 {
		t.Fatalf("Bits(4) after Init returned %#x; want %#x", b, 0x2)
	}
}

func TestGenerate(t *testing.T) {
	p := Generate(1 << 16)
	const head = "d1511c36f8cc1c36f8cc1c36f8cc1c36"
	if s := hex.EncodeToString(p[:16]); s != head {
		t.Fatalf("head %s; want %s", s, head)
	}
	if c := crc32.ChecksumIEEE(p); c != 0x813a10ce {
		t.Fatalf("crc32 %#08x; want %#08x", c, 0x813a10ce)
	}
	var g Generator
	q := make([]byte, 1<<16)
	g.Fill(q)
	if !bytes.Equal(p, q) {
		t.Fatalf("Fill and Generate differ")
	}
}

func TestLogSize(t *testing.T) {
	tests := []struct {
		size uint32
		want uint32
	}{
		{1, 8 << subBits},
		{1 << 18, 18 << subBits},
		{3 << 20, 5504},
		{1 << 22, 22 << subBits},
		{1<<32 - 1, 32 << subBits},
	}
	for _, tc := range tests {
		if n := LogSize(tc.size); n != tc.want {
			t.Errorf("LogSize(%d) %d; want %d", tc.size, n, tc.want)
		}
	}
}

func TestRatings(t *testing.T) {
	if s := Speed(1<<20, time.Second); s != 1<<20 {
		t.Errorf("Speed %d; want %d", s, 1<<20)
	}
	if r := DecompressRating(time.Second, 1000, 100); r != 42000 {
		t.Errorf("DecompressRating %d; want %d", r, 42000)
	}
	if r := CompressRating(1<<18, time.Second, 1000); r != 1060000 {
		t.Errorf("CompressRating %d; want %d", r, 1060000)
	}
	if r := CompressRating(1<<22, time.Second, 1000); r != 1220000 {
		t.Errorf("CompressRating %d; want %d", r, 1220000)
	}
	if s := Speed(1000, 0); s != 1000*976562 {
		t.Errorf("Speed for zero duration %d; want %d", s, 1000*976562)
	}
}
