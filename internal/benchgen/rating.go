// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchgen

import "time"

// subBits is the number of fractional bits of LogSize.
const subBits = 8

// LogSize returns the binary logarithm of size with subBits fractional
// bits, rounded up.
func LogSize(size uint32) uint32 {
	for i := subBits; i < 32; i++ {
		for j := uint32(0); j < 1<<subBits; j++ {
			if uint64(size) <= 1<<uint(i)+uint64(j)<<uint(i-subBits) {
				return uint32(i)<<subBits + j
			}
		}
	}
	return 32 << subBits
}

// multDiv computes value per second for the elapsed time. The frequency
// is reduced to keep the product within 64 bits.
func multDiv(value uint64, elapsed time.Duration) uint64 {
	freq := uint64(time.Second)
	t := uint64(max(elapsed, 0))
	for freq > 1000000 {
		freq >>= 1
		t >>= 1
	}
	if t == 0 {
		t = 1
	}
	return value * freq / t
}

// Speed returns the bytes per second.
func Speed(size uint64, elapsed time.Duration) uint64 {
	return multDiv(size, elapsed)
}

// CompressRating estimates the instructions per second of the encoder.
// The number of instructions per byte grows with the dictionary size.
func CompressRating(dictSize uint32, elapsed time.Duration,
	size uint64,
) uint64 {
	t := uint64(LogSize(dictSize)) - 18<<subBits
	perByte := 1060 + (t*t*10)>>(2*subBits)
	return multDiv(size*perByte, elapsed)
}

// DecompressRating estimates the instructions per second of the decoder
// for outSize uncompressed and inSize compressed bytes.
func DecompressRating(elapsed time.Duration, outSize, inSize uint64) uint64 {
	return multDiv(inSize*220+outSize*20, elapsed)
}
