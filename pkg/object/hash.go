package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// HashSize is the length in bytes of a raw object digest.
const HashSize = sha1.Size

// HashBytes computes the raw SHA-1 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := sha1.Sum(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the SHA-1 of the envelope "type len\0content",
// the same digest git assigns to a loose object.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha1.New()
	h.Write(frameHeader(objType, len(data)))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// ParseHash validates s as a full 40-character lowercase hex digest.
func ParseHash(s string) (Hash, error) {
	if len(s) != 2*HashSize {
		return "", fmt.Errorf("parse hash %q: want %d hex characters, got %d", s, 2*HashSize, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("parse hash %q: invalid character %q at %d", s, c, i)
		}
	}
	return Hash(s), nil
}

// HashFromRaw renders a raw 20-byte digest as a Hash.
func HashFromRaw(raw []byte) (Hash, error) {
	if len(raw) != HashSize {
		return "", fmt.Errorf("raw hash is %d bytes, want %d", len(raw), HashSize)
	}
	return Hash(hex.EncodeToString(raw)), nil
}

// Raw decodes h into its 20-byte binary form, as stored inside tree payloads.
func (h Hash) Raw() ([HashSize]byte, error) {
	var out [HashSize]byte
	if _, err := ParseHash(string(h)); err != nil {
		return out, err
	}
	if _, err := hex.Decode(out[:], []byte(h)); err != nil {
		return out, fmt.Errorf("decode hash %q: %w", h, err)
	}
	return out, nil
}
