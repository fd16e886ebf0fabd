package object

import (
	"bytes"
	"fmt"
	"strings"
)

// Unmarshal is the single dispatch point from a kind tag to its
// variant.
func Unmarshal(objType ObjectType, data []byte) (Object, error) {
	switch objType {
	case TypeBlob:
		return UnmarshalBlob(data)
	case TypeTree:
		return UnmarshalTree(data)
	case TypeCommit:
		return UnmarshalCommit(data)
	default:
		return nil, &ObjectError{Offset: -1, Err: ErrUnknownObjectKind, Detail: "kind " + quoteKind(string(objType))}
	}
}

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

func (b *Blob) Serialize() ([]byte, error) {
	return MarshalBlob(b), nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

// MarshalTree serializes a Tree in stored order. Each entry is
//
//	<mode> SP <name> NUL <20-byte raw hash>
//
// with no separator between entries. The mode is emitted at the width
// it was read.
func MarshalTree(tr *Tree) ([]byte, error) {
	var buf bytes.Buffer
	for i, e := range tr.Entries {
		if err := checkMode(e.Mode, buf.Len()); err != nil {
			return nil, fmt.Errorf("marshal tree entry %d: %w", i, err)
		}
		if err := checkEntryName(e.Name, buf.Len()); err != nil {
			return nil, fmt.Errorf("marshal tree entry %d: %w", i, err)
		}
		raw, err := e.Hash.Raw()
		if err != nil {
			return nil, fmt.Errorf("marshal tree entry %d (%s): %w", i, e.Name, err)
		}
		buf.WriteString(e.Mode)
		buf.WriteByte(' ')
		buf.WriteString(e.Name)
		buf.WriteByte(0)
		buf.Write(raw[:])
	}
	return buf.Bytes(), nil
}

// UnmarshalTree parses a Tree from its binary form.
func UnmarshalTree(data []byte) (*Tree, error) {
	tr := &Tree{}
	pos := 0
	for pos < len(data) {
		entry, next, err := parseTreeEntry(data, pos)
		if err != nil {
			return nil, err
		}
		tr.Entries = append(tr.Entries, entry)
		pos = next
	}
	return tr, nil
}

func (tr *Tree) Serialize() ([]byte, error) {
	return MarshalTree(tr)
}

func parseTreeEntry(data []byte, start int) (TreeEntry, int, error) {
	sp := bytes.IndexByte(data[start:], ' ')
	if sp < 0 {
		return TreeEntry{}, 0, corruptf(start, "tree entry without mode separator")
	}
	mode := string(data[start : start+sp])
	if err := checkMode(mode, start); err != nil {
		return TreeEntry{}, 0, err
	}

	nameStart := start + sp + 1
	nul := bytes.IndexByte(data[nameStart:], 0)
	if nul < 0 {
		return TreeEntry{}, 0, corruptf(nameStart, "tree entry name without NUL terminator")
	}
	name := string(data[nameStart : nameStart+nul])
	if err := checkEntryName(name, nameStart); err != nil {
		return TreeEntry{}, 0, err
	}

	hashStart := nameStart + nul + 1
	hashEnd := hashStart + HashSize
	if hashEnd > len(data) {
		return TreeEntry{}, 0, corruptf(hashStart, "truncated tree entry hash (%d of %d bytes)", len(data)-hashStart, HashSize)
	}
	h, err := HashFromRaw(data[hashStart:hashEnd])
	if err != nil {
		return TreeEntry{}, 0, corruptf(hashStart, "%v", err)
	}
	return TreeEntry{Mode: mode, Name: name, Hash: h}, hashEnd, nil
}

func checkMode(mode string, offset int) error {
	if len(mode) != 5 && len(mode) != 6 {
		return &ModeWidthError{Mode: mode, Offset: offset}
	}
	for i := 0; i < len(mode); i++ {
		if mode[i] < '0' || mode[i] > '9' {
			return &ModeWidthError{Mode: mode, Offset: offset}
		}
	}
	return nil
}

// checkEntryName rejects names that could not be materialized as a
// single path component.
func checkEntryName(name string, offset int) error {
	switch {
	case name == "":
		return corruptf(offset, "empty tree entry name")
	case name == "." || name == "..":
		return corruptf(offset, "tree entry name %q", name)
	case strings.ContainsAny(name, "/\x00"):
		return corruptf(offset, "tree entry name %q contains a separator", name)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// MarshalCommit serializes a Commit's fields and message.
func MarshalCommit(c *Commit) []byte {
	return c.KVLM.Serialize()
}

// UnmarshalCommit parses a Commit from its KVLM form.
func UnmarshalCommit(data []byte) (*Commit, error) {
	kvlm, err := ParseKVLM(data)
	if err != nil {
		return nil, err
	}
	return &Commit{KVLM: *kvlm}, nil
}

func (c *Commit) Serialize() ([]byte, error) {
	return MarshalCommit(c), nil
}
