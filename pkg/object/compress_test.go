package object

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("blob 6\x00hello\n"),
		bytes.Repeat([]byte("abcdefgh"), 4096),
	}
	for _, in := range inputs {
		compressed, err := Compress(in)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		out, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("round trip mismatch for %d bytes", len(in))
		}
	}
}

func TestCompressIsStandardZlib(t *testing.T) {
	in := []byte("tree 0\x00")
	compressed, err := Compress(in)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("stdlib zlib.NewReader: %v", err)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("stdlib zlib read: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("stdlib inflate = %q, want %q", out, in)
	}
}

func TestDecompressCorrupt(t *testing.T) {
	compressed, err := Compress(bytes.Repeat([]byte("0123456789"), 100))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	flipped := append([]byte{}, compressed...)
	flipped[len(flipped)-1] ^= 0xff

	cases := map[string][]byte{
		"empty":     nil,
		"garbage":   []byte("not zlib at all"),
		"truncated": compressed[:len(compressed)/2],
		"checksum":  flipped,
		"trailing":  append(append([]byte{}, compressed...), 'x'),
	}
	for name, data := range cases {
		if _, err := Decompress(data); !errors.Is(err, ErrCorruptObject) {
			t.Errorf("%s: Decompress error = %v, want ErrCorruptObject", name, err)
		}
	}
}
