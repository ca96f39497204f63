// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lzmago compresses and decompresses files in the classic .lzma
// format and runs the LZMA benchmark.
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// newApp creates the command line application. All files are accessed
// through fs.
func newApp(fs afero.Fs, stdout, stderr io.Writer) *cli.App {
	dictFlag := &cli.IntFlag{
		Name:  "d",
		Usage: "set dictionary size to 2^`N` - [0, 29]",
		Value: 23,
	}
	fastBytesFlag := &cli.IntFlag{
		Name:  "fb",
		Usage: "set number of fast bytes - [5, 273]",
		Value: 128,
	}
	lcFlag := &cli.IntFlag{
		Name:  "lc",
		Usage: "set number of literal context bits - [0, 8]",
		Value: 3,
	}
	lpFlag := &cli.IntFlag{
		Name:  "lp",
		Usage: "set number of literal pos bits - [0, 4]",
		Value: 0,
	}
	pbFlag := &cli.IntFlag{
		Name:  "pb",
		Usage: "set number of pos bits - [0, 4]",
		Value: 2,
	}
	mfFlag := &cli.StringFlag{
		Name:  "mf",
		Usage: "set match finder: [bt2, bt4]",
		Value: "bt4",
	}
	eosFlag := &cli.BoolFlag{
		Name:  "eos",
		Usage: "write end-of-stream marker",
	}
	verboseFlag := &cli.BoolFlag{
		Name:  "v",
		Usage: "print configuration and debug information",
	}
	maxDictFlag := &cli.IntFlag{
		Name:  "maxd",
		Usage: "reject dictionaries larger than 2^`N` - [0, 32], 32 for no limit",
		Value: 32,
	}
	iterationsFlag := &cli.IntFlag{
		Name:  "i",
		Usage: "number of benchmark iterations",
		Value: 10,
	}
	return &cli.App{
		Name:      "lzmago",
		Usage:     "compress and decompress .lzma files",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Aliases:   []string{"e"},
				Usage:     "compress INPUT into OUTPUT",
				ArgsUsage: "INPUT OUTPUT",
				Flags: []cli.Flag{dictFlag, fastBytesFlag, lcFlag,
					lpFlag, pbFlag, mfFlag, eosFlag, verboseFlag},
				Action: func(c *cli.Context) error {
					return encodeAction(c, fs)
				},
			},
			{
				Name:      "decode",
				Aliases:   []string{"d"},
				Usage:     "decompress INPUT into OUTPUT",
				ArgsUsage: "INPUT OUTPUT",
				Flags:     []cli.Flag{maxDictFlag, verboseFlag},
				Action: func(c *cli.Context) error {
					return decodeAction(c, fs)
				},
			},
			{
				Name:    "benchmark",
				Aliases: []string{"b"},
				Usage:   "measure compression and decompression speed",
				Flags:   []cli.Flag{dictFlag, iterationsFlag},
				Action:  benchmarkAction,
			},
		},
	}
}

func main() {
	log.SetPrefix("lzmago: ")
	log.SetFlags(0)

	app := newApp(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
