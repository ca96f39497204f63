// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// setSize replaces the size field of a classic header.
func setSize(data []byte, size int64) []byte {
	p := append([]byte{}, data...)
	putLE64(p[propertiesLen:], uint64(size))
	return p
}

func decompressErr(data []byte) error {
	return Decompress(io.Discard, bytes.NewReader(data))
}

func TestDecoderFirstSymbol(t *testing.T) {
	r := require.New(t)
	var buf bytes.Buffer
	var e rangeEncoder
	e.init(&buf)
	p := probInit
	r.NoError(e.encodeBit(&p, 1))
	r.NoError(e.flush())

	d, err := NewDecoder([]byte{0x5d, 0, 0x10, 0, 0})
	r.NoError(err)
	err = d.Decode(io.Discard, &buf, 10)
	r.ErrorIs(err, ErrFirstSymbol)
}

func TestDecoderDistance(t *testing.T) {
	r := require.New(t)

	// A match references data the decoder hasn't seen.
	first := randomBytes(11, 4096)
	enc, err := NewEncoder(&EncoderConfig{DictSize: 1 << 16})
	r.NoError(err)
	var buf bytes.Buffer
	enc.SetTrainSize(uint32(len(first)))
	err = enc.Encode(&buf, io.MultiReader(bytes.NewReader(first),
		bytes.NewReader(first)), nil)
	r.NoError(err)
	var props bytes.Buffer
	r.NoError(enc.WriteProperties(&props))
	d, err := NewDecoder(props.Bytes())
	r.NoError(err)
	err = d.Decode(io.Discard, &buf, int64(len(first)))
	r.ErrorIs(err, ErrDistance)

	// A match exceeds the dictionary size given in the header.
	data := randomBytes(12, 40000)
	data = append(data, data[:1000]...)
	compressed := compress(t, data, &EncoderConfig{DictSize: 1 << 16})
	r.Equal(data, decompress(t, compressed))
	putLE32(compressed[1:], 4096)
	r.ErrorIs(decompressErr(compressed), ErrDistance)
}

func TestDecoderSizeMismatch(t *testing.T) {
	r := require.New(t)
	data := bytes.Repeat([]byte{'a'}, 1000)
	compressed := compress(t, data, &EncoderConfig{DictSize: 1 << 12,
		EOS: true})
	r.Equal(data, decompress(t, compressed))

	// end-of-stream marker before the size has been reached
	err := decompressErr(setSize(compressed, int64(len(data)+10)))
	r.ErrorIs(err, ErrUnexpectedEOS)

	// match beyond the size
	err = decompressErr(setSize(compressed, 100))
	r.ErrorIs(err, ErrMatchOverrun)

	// the exact size allows the marker to be ignored
	var out bytes.Buffer
	err = Decompress(&out, bytes.NewReader(setSize(compressed,
		int64(len(data)))))
	r.NoError(err)
	r.Equal(data, out.Bytes())
}

func TestDecoderTruncated(t *testing.T) {
	r := require.New(t)
	data := fakeText(13, 20000)
	compressed := compress(t, data, &EncoderConfig{DictSize: 1 << 16})
	n := len(compressed) / 2
	err := decompressErr(compressed[:n])
	r.ErrorIs(err, io.ErrUnexpectedEOF)

	err = decompressErr(compressed[:headerLen+2])
	r.ErrorIs(err, io.ErrUnexpectedEOF)

	compressed = compress(t, data, &EncoderConfig{DictSize: 1 << 16,
		EOS: true})
	err = decompressErr(compressed[:n])
	r.ErrorIs(err, ErrNoEOS)
	r.ErrorIs(err, io.ErrUnexpectedEOF)
}

func TestDecoderNoEOS(t *testing.T) {
	r := require.New(t)
	data := fakeText(14, 1000)
	compressed := compress(t, data, &EncoderConfig{DictSize: 1 << 12})
	// Without size the stream needs an end-of-stream marker.
	err := decompressErr(setSize(compressed, -1))
	r.Error(err)
	r.True(errors.Is(err, ErrNoEOS) || errors.Is(err, ErrDistance) ||
		errors.Is(err, ErrUnexpectedEOS),
		"unexpected error %v", err)
}

func TestDecoderReuse(t *testing.T) {
	r := require.New(t)
	data := fakeText(15, 30000)
	cfg := &EncoderConfig{DictSize: 1 << 14}
	enc, err := NewEncoder(cfg)
	r.NoError(err)
	var buf bytes.Buffer
	r.NoError(enc.Encode(&buf, bytes.NewReader(data), nil))
	var props bytes.Buffer
	r.NoError(enc.WriteProperties(&props))

	d, err := NewDecoder(props.Bytes())
	r.NoError(err)
	r.Equal(cfg.DictSize, d.Header().DictSize)
	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		err = d.Decode(&out, bytes.NewReader(buf.Bytes()),
			int64(len(data)))
		r.NoError(err)
		r.Equal(data, out.Bytes())
	}
}

func TestNewDecoderErrors(t *testing.T) {
	r := require.New(t)
	_, err := NewDecoder([]byte{0x5d, 0})
	r.ErrorIs(err, ErrHeader)
	_, err = NewDecoder([]byte{255, 0, 0, 0, 0})
	r.ErrorIs(err, ErrHeader)
	// Any dictionary size is accepted.
	d, err := NewDecoder([]byte{0x5d, 0, 0, 0, 0})
	r.NoError(err)
	r.Equal(uint32(0), d.Header().DictSize)
}

func TestDecoderDictCap(t *testing.T) {
	r := require.New(t)
	cfg := &DecoderConfig{DictCap: 1 << 20}
	_, err := NewDecoderConfig([]byte{0x5d, 0xff, 0xff, 0xff, 0xff}, cfg)
	r.ErrorIs(err, ErrDictCap)

	d, err := NewDecoderConfig([]byte{0x5d, 0, 0, 0x10, 0}, cfg)
	r.NoError(err)
	r.Equal(uint32(1<<20), d.Header().DictSize)

	data := []byte("dictionary cap")
	var buf bytes.Buffer
	r.NoError(Compress(&buf, bytes.NewReader(data),
		&EncoderConfig{DictSize: 1<<20 + 1}))
	compressed := buf.Bytes()

	err = DecompressConfig(io.Discard, bytes.NewReader(compressed), cfg)
	r.ErrorIs(err, ErrDictCap)
	_, err = NewReaderConfig(bytes.NewReader(compressed), cfg)
	r.ErrorIs(err, ErrDictCap)

	var out bytes.Buffer
	r.NoError(DecompressConfig(&out, bytes.NewReader(compressed),
		&DecoderConfig{}))
	r.Equal(data, out.Bytes())
}
