// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/kr/pretty"
)

func TestHeaderRoundTrip(t *testing.T) {
	tests := []Header{
		{Properties: Properties{3, 0, 2}, DictSize: 8 * 1024 * 1024,
			Size: -1},
		{Properties: Properties{4, 3, 3}, DictSize: 4096,
			Size: 10},
		{Properties: Properties{8, 4, 4}, DictSize: 1, Size: 0},
	}
	for _, h := range tests {
		var buf bytes.Buffer
		if err := h.Write(&buf); err != nil {
			t.Fatalf("Write error %s", err)
		}
		if buf.Len() != headerLen {
			t.Fatalf("header length %d; want %d", buf.Len(),
				headerLen)
		}
		g, err := ReadHeader(&buf)
		if err != nil {
			t.Fatalf("ReadHeader error %s", err)
		}
		if diff := pretty.Diff(g, h); len(diff) > 0 {
			t.Errorf("header differs: %v", diff)
		}
	}
}

func TestHeaderGolden(t *testing.T) {
	h := Header{Properties: Properties{3, 0, 2}, DictSize: 1 << 23,
		Size: -1}
	var buf bytes.Buffer
	if err := h.Write(&buf); err != nil {
		t.Fatalf("Write error %s", err)
	}
	want := []byte{0x5d, 0, 0, 0x80, 0,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("header % x; want % x", buf.Bytes(), want)
	}

	buf.Reset()
	if err := h.WriteProperties(&buf); err != nil {
		t.Fatalf("WriteProperties error %s", err)
	}
	g, err := ReadProperties(&buf)
	if err != nil {
		t.Fatalf("ReadProperties error %s", err)
	}
	if g != h {
		t.Fatalf("ReadProperties returned %#v; want %#v", g, h)
	}
}

func TestHeaderErrors(t *testing.T) {
	// pb = 5
	p := []byte{5 * 5 * 9, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := ReadHeader(bytes.NewReader(p)); !errors.Is(err, ErrHeader) {
		t.Fatalf("ReadHeader with pb=5 returned %v; want %v", err,
			ErrHeader)
	}
	p = []byte{0x5d, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0x80}
	if _, err := ReadHeader(bytes.NewReader(p)); !errors.Is(err, ErrHeader) {
		t.Fatalf("ReadHeader with size 2^63 returned %v; want %v",
			err, ErrHeader)
	}
	_, err := ReadHeader(bytes.NewReader(p[:7]))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadHeader of short header returned %v; want %v",
			err, io.ErrUnexpectedEOF)
	}
	if _, err = ReadProperties(bytes.NewReader(nil)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadProperties of empty input returned %v; want %v",
			err, io.ErrUnexpectedEOF)
	}
}

func TestPropertiesByte(t *testing.T) {
	for lc := minLC; lc <= maxLC; lc++ {
		for lp := minLP; lp <= maxLP; lp++ {
			for pb := MinPB; pb <= MaxPB; pb++ {
				p := Properties{lc, lp, pb}
				if err := p.Verify(); err != nil {
					t.Fatalf("Verify(%v) error %s", p, err)
				}
				var q Properties
				if err := q.fromByte(p.byte()); err != nil {
					t.Fatalf("fromByte error %s", err)
				}
				if q != p {
					t.Fatalf("fromByte returned %v; want %v",
						q, p)
				}
			}
		}
	}
	for _, p := range []Properties{{9, 0, 0}, {0, 5, 0}, {0, 0, 5},
		{-1, 0, 0}} {
		if err := p.Verify(); err == nil {
			t.Errorf("Verify(%v) returned no error", p)
		}
	}
}
