// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"time"

	"github.com/ulikunitz/lzma"
	"github.com/ulikunitz/lzma/internal/benchgen"
	"github.com/urfave/cli/v2"
)

// additionalSize is added to the dictionary size to get the size of the
// benchmark data.
const additionalSize = 6 << 20

// minBenchDictExp is the smallest supported dictionary size exponent.
const minBenchDictExp = 18

func benchmarkAction(c *cli.Context) error {
	d, err := checkRange(c, "d", 0, 29)
	if err != nil {
		return err
	}
	if d < minBenchDictExp {
		return fmt.Errorf(
			"dictionary size for benchmark must be >= %d (256 KiB)",
			minBenchDictExp)
	}
	n := c.Int("i")
	if n <= 0 {
		return nil
	}
	return runBenchmark(c.App.Writer, n, 1<<uint(d), additionalSize)
}

// progressInfo records the time when the encoder has read the first
// dictSize bytes. The time before is not measured.
type progressInfo struct {
	approvedStart int64
	inSize        int64
	start         time.Time
}

func (p *progressInfo) init() { p.inSize = 0 }

func (p *progressInfo) setProgress(inSize, _ int64) {
	if inSize >= p.approvedStart && p.inSize == 0 {
		p.start = time.Now()
		p.inSize = inSize
	}
}

// errCRC indicates that the decompressed benchmark data differs from the
// generated data.
var errCRC = errors.New("CRC error")

// runBenchmark compresses dictSize+extra generated bytes and
// decompresses them twice per iteration. The results are written to w.
func runBenchmark(w io.Writer, iterations int, dictSize uint32, extra int) error {
	enc, err := lzma.NewEncoder(&lzma.EncoderConfig{DictSize: dictSize})
	if err != nil {
		return err
	}
	var props bytes.Buffer
	if err = enc.WriteProperties(&props); err != nil {
		return err
	}
	size := int(dictSize) + extra
	data := benchgen.Generate(size)
	crc := crc32.ChecksumIEEE(data)

	fmt.Fprint(w, "\n       Compressing                Decompressing\n\n")
	progress := progressInfo{approvedStart: int64(dictSize)}
	var compressed bytes.Buffer
	compressed.Grow(size/2 + 1<<10)
	var totalBench, totalCompressed uint64
	var totalEncode, totalDecode time.Duration
	for i := 0; i < iterations; i++ {
		progress.init()
		compressed.Reset()
		err = enc.Encode(&compressed, bytes.NewReader(data),
			progress.setProgress)
		if err != nil {
			return err
		}
		if progress.inSize == 0 {
			return errors.New("benchmark data too small")
		}
		encodeTime := time.Since(progress.start)

		var decodeTime time.Duration
		for j := 0; j < 2; j++ {
			dec, err := lzma.NewDecoder(props.Bytes())
			if err != nil {
				return err
			}
			h := crc32.NewIEEE()
			start := time.Now()
			err = dec.Decode(h, bytes.NewReader(compressed.Bytes()),
				int64(size))
			if err != nil {
				return err
			}
			decodeTime = time.Since(start)
			if h.Sum32() != crc {
				return errCRC
			}
		}

		benchSize := uint64(int64(size) - progress.inSize)
		compressedSize := uint64(compressed.Len())
		printResults(w, dictSize, encodeTime, benchSize, false, 0)
		fmt.Fprint(w, "     ")
		printResults(w, dictSize, decodeTime, uint64(size), true,
			compressedSize)
		fmt.Fprintln(w)

		totalBench += benchSize
		totalEncode += encodeTime
		totalDecode += decodeTime
		totalCompressed += compressedSize
	}
	fmt.Fprintln(w, "---------------------------------------------------")
	printResults(w, dictSize, totalEncode, totalBench, false, 0)
	fmt.Fprint(w, "     ")
	printResults(w, dictSize, totalDecode, uint64(size)*uint64(iterations),
		true, totalCompressed)
	fmt.Fprintln(w, "    Average")
	return nil
}

func printResults(w io.Writer, dictSize uint32, elapsed time.Duration,
	size uint64, decompress bool, secondSize uint64,
) {
	fmt.Fprintf(w, "%6d KB/s  ", benchgen.Speed(size, elapsed)/1024)
	var rating uint64
	if decompress {
		rating = benchgen.DecompressRating(elapsed, size, secondSize)
	} else {
		rating = benchgen.CompressRating(dictSize, elapsed, size)
	}
	fmt.Fprintf(w, "%6d MIPS", rating/1000000)
}
