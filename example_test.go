// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma_test

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ulikunitz/lzma"
)

func Example() {
	const text = "The quick brown fox jumps over the lazy dog."
	var buf bytes.Buffer
	w, err := lzma.NewWriterConfig(&buf, &lzma.EncoderConfig{
		DictSize: 1 << 12,
	})
	if err != nil {
		log.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err = io.WriteString(w, text); err != nil {
		log.Fatalf("WriteString error %s", err)
	}
	if err = w.Close(); err != nil {
		log.Fatalf("Close error %s", err)
	}
	r, err := lzma.NewReader(&buf)
	if err != nil {
		log.Fatalf("NewReader error %s", err)
	}
	fmt.Println(r.Size, r.DictSize)
	if _, err = io.Copy(os.Stdout, r); err != nil {
		log.Fatalf("Copy error %s", err)
	}
	fmt.Println()
	// Output:
	// 44 4096
	// The quick brown fox jumps over the lazy dog.
}

func ExampleCompress() {
	var buf bytes.Buffer
	err := lzma.Compress(&buf, bytes.NewReader([]byte("a")), nil)
	if err != nil {
		log.Fatalf("Compress error %s", err)
	}
	fmt.Printf("% x\n", buf.Bytes())
	// Output:
	// 5d 00 00 80 00 01 00 00 00 00 00 00 00 00 30 7f fc 00 00
}
