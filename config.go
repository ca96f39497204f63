// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"
	"fmt"
	"strings"
)

// MatchFinder selects the binary-tree match finder used by the encoder.
type MatchFinder int

// Supported match finders.
const (
	// BT4 uses hashes over 2, 3 and 4 bytes.
	BT4 MatchFinder = iota
	// BT2 uses a direct hash over 2 bytes.
	BT2
)

// String returns the lower-case name of the match finder.
func (mf MatchFinder) String() string {
	switch mf {
	case BT2:
		return "bt2"
	case BT4:
		return "bt4"
	}
	return fmt.Sprintf("MatchFinder(%d)", int(mf))
}

// ParseMatchFinder converts the name of a match finder. The comparison
// ignores case.
func ParseMatchFinder(s string) (MatchFinder, error) {
	switch strings.ToLower(s) {
	case "bt2":
		return BT2, nil
	case "bt4":
		return BT4, nil
	}
	return 0, fmt.Errorf("lzma: unsupported match finder %q", s)
}

// Limits and defaults for the fast bytes value.
const (
	MinFastBytes     = 5
	MaxFastBytes     = maxMatchLen
	defaultFastBytes = 128
	defaultDictSize  = 1 << 23
)

// EncoderConfig defines the parameters of the encoder.
type EncoderConfig struct {
	Properties
	// ZeroProperties indicates that LC, LP and PB are indeed zero.
	ZeroProperties bool
	// DictSize is the size of the dictionary in bytes.
	DictSize uint32
	// FastBytes is the match length at which the encoder stops searching
	// for better matches. Values above MaxFastBytes are clamped.
	FastBytes int
	MatchFinder MatchFinder
	// EOS requests an end-of-stream marker.
	EOS bool
}

// SetDefaults replaces zero values by the defaults. The properties are
// only set if all of them are zero and ZeroProperties is false.
func (cfg *EncoderConfig) SetDefaults() {
	if cfg.Properties == (Properties{}) && !cfg.ZeroProperties {
		cfg.Properties = Properties{LC: 3, LP: 0, PB: 2}
	}
	if cfg.DictSize == 0 {
		cfg.DictSize = defaultDictSize
	}
	if cfg.FastBytes == 0 {
		cfg.FastBytes = defaultFastBytes
	}
	if cfg.FastBytes > MaxFastBytes {
		cfg.FastBytes = MaxFastBytes
	}
}

// Verify checks the configuration for errors.
func (cfg *EncoderConfig) Verify() error {
	if cfg == nil {
		return errors.New("lzma: encoder configuration is nil")
	}
	if err := cfg.Properties.Verify(); err != nil {
		return err
	}
	if !(MinDictSize <= cfg.DictSize && cfg.DictSize <= MaxDictSize) {
		return fmt.Errorf("lzma: dictionary size %d out of range",
			cfg.DictSize)
	}
	if cfg.FastBytes < MinFastBytes {
		return fmt.Errorf("lzma: fast bytes %d less than %d",
			cfg.FastBytes, MinFastBytes)
	}
	switch cfg.MatchFinder {
	case BT2, BT4:
	default:
		return fmt.Errorf("lzma: unsupported match finder %v",
			cfg.MatchFinder)
	}
	return nil
}

// DecoderConfig defines the parameters of the decoder.
type DecoderConfig struct {
	// DictCap is the largest dictionary size accepted from a header.
	// Zero accepts every size. The dictionary buffer is allocated with
	// the size given in the header.
	DictCap uint32
}
