package object

import (
	"bytes"
	"strconv"
)

func frameHeader(objType ObjectType, n int) []byte {
	header := make([]byte, 0, len(objType)+24)
	header = append(header, string(objType)...)
	header = append(header, ' ')
	header = strconv.AppendInt(header, int64(n), 10)
	return append(header, 0)
}

// Frame wraps payload in the loose-object envelope "type len\0payload".
func Frame(objType ObjectType, payload []byte) []byte {
	header := frameHeader(objType, len(payload))
	raw := make([]byte, 0, len(header)+len(payload))
	raw = append(raw, header...)
	return append(raw, payload...)
}

// Unframe splits an envelope into its kind and payload. The declared
// length must equal the payload length exactly.
func Unframe(raw []byte) (ObjectType, []byte, error) {
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, corruptf(len(raw), "invalid header (no NUL)")
	}
	spIdx := bytes.IndexByte(raw[:nulIdx], ' ')
	if spIdx < 0 {
		return "", nil, corruptf(0, "invalid header %q (no space)", raw[:nulIdx])
	}

	lengthField := raw[spIdx+1 : nulIdx]
	length, ok := parseDecimal(lengthField)
	if !ok {
		return "", nil, corruptf(spIdx+1, "invalid length %q", lengthField)
	}
	payload := raw[nulIdx+1:]
	if uint64(len(payload)) != length {
		return "", nil, corruptf(nulIdx+1, "length mismatch (header=%d, actual=%d)", length, len(payload))
	}

	objType, err := ParseObjectType(string(raw[:spIdx]))
	if err != nil {
		return "", nil, err
	}
	return objType, payload, nil
}

// parseDecimal accepts only a non-empty run of ASCII digits.
func parseDecimal(b []byte) (uint64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
