// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

var testStrings = []string{
	"S",
	"HalloBallo",
	"funny",
	"Die Nummer Eins der Welt sind wir!",
}

func TestDirectEncoding(t *testing.T) {
	for _, s := range testStrings {
		var buf bytes.Buffer
		var e rangeEncoder
		e.init(&buf)
		b := []byte(s)
		for _, x := range b {
			if err := e.directEncodeBits(uint32(x), 8); err != nil {
				t.Fatalf("directEncodeBits error %s", err)
			}
		}
		if err := e.flush(); err != nil {
			t.Fatalf("flush error %s", err)
		}
		var d rangeDecoder
		if err := d.init(&buf); err != nil {
			t.Fatalf("rangeDecoder.init error %s", err)
		}
		var out []byte
		for range b {
			x, err := d.directDecodeBits(8)
			if err != nil {
				t.Fatalf("directDecodeBits error %s", err)
			}
			out = append(out, byte(x))
		}
		if !d.possiblyAtEnd() {
			t.Fatal("decoder not at end")
		}
		if !bytes.Equal(out, b) {
			t.Errorf("got %q; want %q", out, b)
		}
	}
}

func TestTreeEncoding(t *testing.T) {
	for _, s := range testStrings {
		var buf bytes.Buffer
		var e rangeEncoder
		e.init(&buf)
		te := makeTreeCodec(8)
		tr := makeTreeReverseCodec(8)
		b := []byte(s)
		for _, x := range b {
			if err := te.Encode(&e, uint32(x)); err != nil {
				t.Fatalf("te.Encode error %s", err)
			}
			if err := tr.Encode(&e, uint32(x)); err != nil {
				t.Fatalf("tr.Encode error %s", err)
			}
		}
		if err := e.flush(); err != nil {
			t.Fatalf("flush error %s", err)
		}
		var d rangeDecoder
		if err := d.init(&buf); err != nil {
			t.Fatalf("rangeDecoder.init error %s", err)
		}
		td := makeTreeCodec(8)
		trd := makeTreeReverseCodec(8)
		for i, x := range b {
			y, err := td.Decode(&d)
			if err != nil {
				t.Fatalf("td.Decode error %s", err)
			}
			z, err := trd.Decode(&d)
			if err != nil {
				t.Fatalf("trd.Decode error %s", err)
			}
			if byte(y) != x || byte(z) != x {
				t.Fatalf("byte %d: got %q and %q; want %q", i, y, z, x)
			}
		}
		if te.probs[1] != td.probs[1] {
			t.Fatalf("tree probabilities differ")
		}
	}
}

func TestEmptyRangeStream(t *testing.T) {
	var buf bytes.Buffer
	var e rangeEncoder
	e.init(&buf)
	if err := e.flush(); err != nil {
		t.Fatalf("flush error %s", err)
	}
	want := []byte{0, 0, 0, 0, 0}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got % x; want % x", buf.Bytes(), want)
	}
}

func TestRangeDecoderInit(t *testing.T) {
	var d rangeDecoder
	err := d.init(bytes.NewReader([]byte{1, 0, 0, 0, 0}))
	if !errors.Is(err, errRangeInit) {
		t.Fatalf("init with first byte 1 returned %v; want %v",
			err, errRangeInit)
	}
	err = d.init(bytes.NewReader([]byte{0, 0, 0}))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("init of short stream returned %v; want %v",
			err, io.ErrUnexpectedEOF)
	}
}

func TestPrices(t *testing.T) {
	p := probInit
	if p.price0() != p.price1() {
		t.Fatalf("price0 %d and price1 %d differ for probInit",
			p.price0(), p.price1())
	}
	if p.price0() != 1<<priceShiftBits {
		t.Fatalf("price for probability 1/2 is %d; want %d",
			p.price0(), 1<<priceShiftBits)
	}
	p.inc()
	if p.price0() >= p.price1() {
		t.Fatalf("price0 %d not less than price1 %d after inc",
			p.price0(), p.price1())
	}
}

// FuzzProbSymmetry checks that encoder and decoder probabilities stay
// identical for every bit sequence.
func FuzzProbSymmetry(f *testing.F) {
	f.Add([]byte{0})
	f.Add([]byte("HalloBallo"))
	f.Add(bytes.Repeat([]byte{0xff}, 100))
	f.Fuzz(func(t *testing.T, data []byte) {
		var buf bytes.Buffer
		var e rangeEncoder
		e.init(&buf)
		pe := make([]prob, 4)
		initProbs(pe)
		for _, c := range data {
			for i := 0; i < 8; i++ {
				err := e.encodeBit(&pe[i&3], uint32(c>>uint(i)))
				if err != nil {
					t.Fatalf("encodeBit error %s", err)
				}
			}
		}
		if err := e.flush(); err != nil {
			t.Fatalf("flush error %s", err)
		}
		var d rangeDecoder
		if err := d.init(&buf); err != nil {
			t.Fatalf("rangeDecoder.init error %s", err)
		}
		pd := make([]prob, 4)
		initProbs(pd)
		initProbs(pe)
		for k, c := range data {
			for i := 0; i < 8; i++ {
				b, err := d.decodeBit(&pd[i&3])
				if err != nil {
					t.Fatalf("decodeBit error %s", err)
				}
				want := uint32(c>>uint(i)) & 1
				if b != want {
					t.Fatalf("byte %d bit %d: got %d; want %d",
						k, i, b, want)
				}
				pe[i&3].update(want)
				if pd[i&3] != pe[i&3] {
					t.Fatalf("byte %d bit %d: prob %d; want %d",
						k, i, pd[i&3], pe[i&3])
				}
			}
		}
		if !d.possiblyAtEnd() {
			t.Fatalf("decoder not at end")
		}
	})
}

func TestByteReader(t *testing.T) {
	r := bytes.NewReader([]byte("abc"))
	br := newByteReader(struct{ io.Reader }{r})
	c, err := br.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte error %s", err)
	}
	if c != 'a' {
		t.Fatalf("ReadByte returned %q; want %q", c, 'a')
	}
	if r.Len() != 2 {
		t.Fatalf("underlying reader has %d bytes left; want 2", r.Len())
	}
	if got := newByteReader(r); got != io.ByteReader(r) {
		t.Fatalf("newByteReader wrapped an io.ByteReader")
	}
	if _, err = newByteReader(zeroReader{}).ReadByte(); err != io.ErrNoProgress {
		t.Fatalf("ReadByte returned %v; want %v", err, io.ErrNoProgress)
	}
}
