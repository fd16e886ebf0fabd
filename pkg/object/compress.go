package object

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compress deflates data into a zlib stream, the on-disk form of every
// loose object.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream. A bad header, a truncated stream, a
// checksum mismatch or bytes trailing the stream yield ErrCorruptObject.
func Decompress(data []byte) ([]byte, error) {
	src := bytes.NewReader(data)
	zr, err := zlib.NewReader(src)
	if err != nil {
		return nil, corruptf(-1, "zlib header: %v", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, corruptf(-1, "zlib stream: %v", err)
	}
	if src.Len() > 0 {
		return nil, corruptf(len(data)-src.Len(), "%d trailing bytes after zlib stream", src.Len())
	}
	return out, nil
}
