package object

import (
	"bytes"
)

// KVLM is the key-value-list-with-message format used by commit
// payloads:
//
//	tree H
//	parent H     (repeatable)
//	author A
//	gpgsig -----BEGIN ...
//	 folded continuation line
//
//	message
//
// Keys keep their first-seen order and may carry several values. The
// free-text message after the blank line is kept in Message.
type KVLM struct {
	keys    []string
	values  map[string][][]byte
	Message []byte
}

// Keys returns the header keys in first-seen order.
func (k *KVLM) Keys() []string {
	out := make([]string, len(k.keys))
	copy(out, k.keys)
	return out
}

// Get returns the first value stored under key.
func (k *KVLM) Get(key string) ([]byte, bool) {
	vals := k.values[key]
	if len(vals) == 0 {
		return nil, false
	}
	return vals[0], true
}

// GetAll returns every value stored under key, in stored order.
func (k *KVLM) GetAll(key string) [][]byte {
	return k.values[key]
}

// Add appends value under key. A new key is placed after all existing
// keys.
func (k *KVLM) Add(key string, value []byte) {
	if k.values == nil {
		k.values = make(map[string][][]byte)
	}
	if _, ok := k.values[key]; !ok {
		k.keys = append(k.keys, key)
	}
	k.values[key] = append(k.values[key], value)
}

// Set replaces all values under key with value, keeping the key's
// position if it already exists.
func (k *KVLM) Set(key string, value []byte) {
	if k.values == nil {
		k.values = make(map[string][][]byte)
	}
	if _, ok := k.values[key]; !ok {
		k.keys = append(k.keys, key)
	}
	k.values[key] = [][]byte{value}
}

// ParseKVLM parses a KVLM payload. Header lines are "key SP value\n",
// where lines starting with a space continue the previous value; the
// first empty line ends the header and everything after it is the
// message.
func ParseKVLM(data []byte) (*KVLM, error) {
	k := &KVLM{values: make(map[string][][]byte)}
	pos := 0
	for {
		if pos >= len(data) {
			return nil, corruptf(pos, "kvlm: missing blank line before message")
		}
		rest := data[pos:]
		spc := bytes.IndexByte(rest, ' ')
		nl := bytes.IndexByte(rest, '\n')

		if spc < 0 || (nl >= 0 && nl < spc) {
			if nl != 0 {
				return nil, corruptf(pos, "kvlm: header line without key separator")
			}
			k.Message = append([]byte{}, rest[1:]...)
			return k, nil
		}

		if spc == 0 {
			return nil, corruptf(pos, "kvlm: empty key")
		}
		key := string(rest[:spc])

		// Extend end over every line whose successor is a fold
		// continuation.
		end := spc
		for {
			next := bytes.IndexByte(rest[end+1:], '\n')
			if next < 0 {
				return nil, corruptf(pos+spc, "kvlm: unterminated value for key %q", key)
			}
			end += 1 + next
			if end+1 >= len(rest) || rest[end+1] != ' ' {
				break
			}
		}

		value := bytes.ReplaceAll(rest[spc+1:end], []byte("\n "), []byte("\n"))
		k.Add(key, value)
		pos += end + 1
	}
}

// Serialize renders the KVLM back into its wire form, re-folding
// embedded newlines.
func (k *KVLM) Serialize() []byte {
	var buf bytes.Buffer
	for _, key := range k.keys {
		for _, v := range k.values[key] {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.Write(bytes.ReplaceAll(v, []byte("\n"), []byte("\n ")))
			buf.WriteByte('\n')
		}
	}
	buf.WriteByte('\n')
	buf.Write(k.Message)
	return buf.Bytes()
}
