// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package corpus

import (
	"testing"
	"testing/fstest"

	"github.com/ulikunitz/lzma"
	"github.com/ulikunitz/zdata"
)

func TestFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt":     {Data: []byte("HalloBallo")},
		"dir/b.txt": {Data: []byte("funny")},
	}
	files, err := Files(fsys, 4)
	if err != nil {
		t.Fatalf("Files error %s", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files; want 2", len(files))
	}
	if n := Size(files); n != 8 {
		t.Fatalf("Size %d; want 8", n)
	}
	for _, f := range files {
		if _, err = RoundTrip(f, &lzma.EncoderConfig{DictSize: 4096}); err != nil {
			t.Fatalf("RoundTrip error %s", err)
		}
	}
}

func TestSilesia(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Silesia corpus in short mode")
	}
	configs := []struct {
		name string
		cfg  lzma.EncoderConfig
	}{
		{"bt4", lzma.EncoderConfig{DictSize: 1 << 20}},
		{"bt2", lzma.EncoderConfig{DictSize: 1 << 20,
			MatchFinder: lzma.BT2, EOS: true}},
	}

	files, err := Files(zdata.Silesia, 1<<18)
	if err != nil {
		t.Fatalf("Files(zdata.Silesia) error %s", err)
	}

	for _, c := range configs {
		for _, f := range files {
			t.Run(c.name+":"+f.Name, func(t *testing.T) {
				n, err := RoundTrip(f, &c.cfg)
				if err != nil {
					t.Fatalf("RoundTrip error %s", err)
				}
				t.Logf("%s: %d -> %d bytes", f.Name, len(f.Data), n)
			})
		}
	}
	n, err := Compress(files, &configs[0].cfg)
	if err != nil {
		t.Fatalf("Compress error %s", err)
	}
	if size := Size(files); n >= size {
		t.Errorf("compressed size %d; uncompressed %d", n, size)
	}
}
