// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kr/pretty"
	"github.com/spf13/afero"
	"github.com/ulikunitz/lzma"
	"github.com/urfave/cli/v2"
)

// checkRange verifies that the value of an integer flag is inside the
// range [lo, hi].
func checkRange(c *cli.Context, name string, lo, hi int) (int, error) {
	v := c.Int(name)
	if !(lo <= v && v <= hi) {
		return 0, fmt.Errorf("-%s %d: value must be between %d and %d",
			name, v, lo, hi)
	}
	return v, nil
}

// paths returns the input and output arguments.
func paths(c *cli.Context) (in, out string, err error) {
	if c.NArg() != 2 {
		return "", "", errors.New("INPUT and OUTPUT file required")
	}
	return c.Args().Get(0), c.Args().Get(1), nil
}

// encoderConfig converts the flags of the encode command.
func encoderConfig(c *cli.Context) (cfg lzma.EncoderConfig, err error) {
	d, err := checkRange(c, "d", 0, 29)
	if err != nil {
		return cfg, err
	}
	cfg.DictSize = 1 << uint(d)
	if cfg.FastBytes, err = checkRange(c, "fb", lzma.MinFastBytes,
		lzma.MaxFastBytes); err != nil {
		return cfg, err
	}
	if cfg.LC, err = checkRange(c, "lc", 0, 8); err != nil {
		return cfg, err
	}
	if cfg.LP, err = checkRange(c, "lp", 0, 4); err != nil {
		return cfg, err
	}
	if cfg.PB, err = checkRange(c, "pb", 0, 4); err != nil {
		return cfg, err
	}
	cfg.ZeroProperties = cfg.Properties == (lzma.Properties{})
	if cfg.MatchFinder, err = lzma.ParseMatchFinder(c.String("mf")); err != nil {
		return cfg, err
	}
	cfg.EOS = c.Bool("eos")
	return cfg, cfg.Verify()
}

func verbose(c *cli.Context) {
	if c.Bool("v") {
		lzma.SetDebugOutput(c.App.ErrWriter)
	}
}

// create creates the output file including missing directories.
func create(fs afero.Fs, path string) (afero.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return fs.Create(path)
}

func encodeAction(c *cli.Context, fs afero.Fs) error {
	inPath, outPath, err := paths(c)
	if err != nil {
		return err
	}
	cfg, err := encoderConfig(c)
	if err != nil {
		return err
	}
	verbose(c)
	defer lzma.SetDebugOutput(nil)
	if c.Bool("v") {
		pretty.Fprintf(c.App.ErrWriter, "%# v\n", cfg)
	}
	enc, err := lzma.NewEncoder(&cfg)
	if err != nil {
		return err
	}

	in, err := fs.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	h := enc.Properties()
	if !cfg.EOS {
		fi, err := in.Stat()
		if err != nil {
			return err
		}
		h.Size = fi.Size()
	}

	out, err := create(fs, outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	if err = h.Write(bw); err != nil {
		return err
	}
	if err = enc.Encode(bw, bufio.NewReader(in), nil); err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	return out.Close()
}

func decodeAction(c *cli.Context, fs afero.Fs) error {
	inPath, outPath, err := paths(c)
	if err != nil {
		return err
	}
	maxd, err := checkRange(c, "maxd", 0, 32)
	if err != nil {
		return err
	}
	var cfg lzma.DecoderConfig
	if maxd < 32 {
		cfg.DictCap = 1 << uint(maxd)
	}
	verbose(c)
	defer lzma.SetDebugOutput(nil)

	in, err := fs.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := create(fs, outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	if err = lzma.DecompressConfig(bw, bufio.NewReader(in), &cfg); err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	return out.Close()
}
