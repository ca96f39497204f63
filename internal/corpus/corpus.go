// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corpus loads test corpora and measures the compression of
// their files.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ulikunitz/lzma"
)

// File is a file of a corpus held in memory.
type File struct {
	Name string
	Data []byte
}

// Files reads all regular files of the corpus. The argument limit
// truncates the data of each file if it is positive.
func Files(corpus fs.FS, limit int) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			if limit > 0 && len(data) > limit {
				data = data[:limit]
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	return files, err
}

// Size returns the total size of all files.
func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.n += int64(n)
	return n, nil
}

// Compress returns the total size of the compressed files.
func Compress(files []File, cfg *lzma.EncoderConfig) (compressedSize int64, err error) {
	for _, f := range files {
		cw := &countWriter{}
		err = lzma.Compress(cw, bytes.NewReader(f.Data), cfg)
		compressedSize += cw.n
		if err != nil {
			return compressedSize, fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return compressedSize, nil
}

// ErrMismatch indicates that decompressed data differs from the
// original file.
var ErrMismatch = errors.New("corpus: decompressed data differs")

// RoundTrip compresses and decompresses the file and checks the result.
// It returns the compressed size.
func RoundTrip(f File, cfg *lzma.EncoderConfig) (compressedSize int64, err error) {
	var buf bytes.Buffer
	if err = lzma.Compress(&buf, bytes.NewReader(f.Data), cfg); err != nil {
		return 0, fmt.Errorf("%s: %w", f.Name, err)
	}
	compressedSize = int64(buf.Len())
	var out bytes.Buffer
	out.Grow(len(f.Data))
	if err = lzma.Decompress(&out, &buf); err != nil {
		return compressedSize, fmt.Errorf("%s: %w", f.Name, err)
	}
	if !bytes.Equal(out.Bytes(), f.Data) {
		return compressedSize, fmt.Errorf("%s: %w", f.Name, ErrMismatch)
	}
	return compressedSize, nil
}
