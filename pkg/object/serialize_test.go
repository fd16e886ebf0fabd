package object

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const (
	testHashA = Hash("ce013625030ba8dba906f756967f9e9ca394464a")
	testHashB = Hash("00112233445566778899aabbccddeeff00112233")
	testHashC = Hash("0000000000000000000000000000000000000001")
)

func TestMarshalUnmarshalBlob(t *testing.T) {
	orig := &Blob{Data: []byte("hello world\nline two\x00binary")}
	data := MarshalBlob(orig)
	got, err := UnmarshalBlob(data)
	if err != nil {
		t.Fatalf("UnmarshalBlob: %v", err)
	}
	if !bytes.Equal(got.Data, orig.Data) {
		t.Errorf("Blob round-trip mismatch: got %q, want %q", got.Data, orig.Data)
	}
}

func TestMarshalUnmarshalTree(t *testing.T) {
	orig := &Tree{Entries: []TreeEntry{
		{Mode: TreeModeFile, Name: "zeta.txt", Hash: testHashA},
		{Mode: TreeModeDir, Name: "alpha", Hash: testHashB},
		{Mode: TreeModeExecutable, Name: "run.sh", Hash: testHashC},
	}}
	data, err := MarshalTree(orig)
	require.NoError(t, err)

	got, err := UnmarshalTree(data)
	require.NoError(t, err)
	if diff := cmp.Diff(orig.Entries, got.Entries); diff != "" {
		t.Fatalf("tree round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := MarshalTree(got)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestMarshalTreeWireFormat(t *testing.T) {
	tr := &Tree{Entries: []TreeEntry{{Mode: "100644", Name: "greeting.txt", Hash: testHashC}}}
	data, err := MarshalTree(tr)
	require.NoError(t, err)

	want := append([]byte("100644 greeting.txt\x00"), make([]byte, 19)...)
	want = append(want, 0x01)
	require.Equal(t, want, data)
}

func TestUnmarshalTreeKeepsModeWidth(t *testing.T) {
	raw, err := testHashA.Raw()
	require.NoError(t, err)

	var data []byte
	data = append(data, "40000 sub\x00"...)
	data = append(data, raw[:]...)
	data = append(data, "040000 legacy\x00"...)
	data = append(data, raw[:]...)

	tr, err := UnmarshalTree(data)
	require.NoError(t, err)
	require.Len(t, tr.Entries, 2)
	require.Equal(t, "40000", tr.Entries[0].Mode)
	require.Equal(t, "040000", tr.Entries[1].Mode)
	require.Equal(t, "040000", tr.Entries[0].PaddedMode())
	require.True(t, tr.Entries[0].IsDir())
	require.True(t, tr.Entries[1].IsDir())

	out, err := MarshalTree(tr)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestUnmarshalTreeLeadingZeroDigest(t *testing.T) {
	raw, err := testHashC.Raw()
	require.NoError(t, err)
	data := append([]byte("100644 f\x00"), raw[:]...)

	tr, err := UnmarshalTree(data)
	require.NoError(t, err)
	require.Equal(t, testHashC, tr.Entries[0].Hash)
}

func TestUnmarshalTreeEmpty(t *testing.T) {
	tr, err := UnmarshalTree(nil)
	require.NoError(t, err)
	require.Empty(t, tr.Entries)
}

func TestUnmarshalTreeErrors(t *testing.T) {
	raw, err := testHashA.Raw()
	require.NoError(t, err)
	entry := func(prefix string) []byte {
		return append([]byte(prefix), raw[:]...)
	}

	tests := []struct {
		name      string
		data      []byte
		modeWidth bool
	}{
		{name: "short mode", data: entry("1006 a\x00"), modeWidth: true},
		{name: "long mode", data: entry("1000644 a\x00"), modeWidth: true},
		{name: "non-digit mode", data: entry("10064x a\x00"), modeWidth: true},
		{name: "no space", data: []byte("100644"), modeWidth: false},
		{name: "no NUL", data: []byte("100644 name-without-terminator"), modeWidth: false},
		{name: "truncated hash", data: append([]byte("100644 a\x00"), raw[:10]...), modeWidth: false},
		{name: "slash in name", data: entry("100644 a/b\x00"), modeWidth: false},
		{name: "dot-dot name", data: entry("40000 ..\x00"), modeWidth: false},
		{name: "empty name", data: entry("100644 \x00"), modeWidth: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalTree(tc.data)
			require.ErrorIs(t, err, ErrCorruptObject)
			require.Equal(t, tc.modeWidth, errors.Is(err, ErrInvalidModeWidth))
		})
	}
}

func TestMarshalTreeRejectsInvalidEntries(t *testing.T) {
	_, err := MarshalTree(&Tree{Entries: []TreeEntry{{Mode: "644", Name: "a", Hash: testHashA}}})
	require.ErrorIs(t, err, ErrInvalidModeWidth)

	_, err = MarshalTree(&Tree{Entries: []TreeEntry{{Mode: TreeModeFile, Name: "a", Hash: "not-a-hash"}}})
	require.Error(t, err)
}

func TestUnmarshalCommitRoundTrip(t *testing.T) {
	raw := []byte("tree 29ff16c9c14e2652b22f8b78bb08a5a07930c147\n" +
		"parent 206941306e8a8af65b66eaaaea388a7ae24d49a0\n" +
		"author Thibault Polge <thibault@thb.lt> 1527025023 +0200\n" +
		"committer Thibault Polge <thibault@thb.lt> 1527025044 +0200\n" +
		"gpgsig -----BEGIN PGP SIGNATURE-----\n" +
		" \n" +
		" iQIzBAABCAAdFiEExwXquOM8bWb4Q2zVGxM2FxoLkGQFAlsEjZQACgkQGxM2FxoL\n" +
		" -----END PGP SIGNATURE-----\n" +
		"\n" +
		"Create first draft")

	c, err := UnmarshalCommit(raw)
	require.NoError(t, err)

	treeHash, ok := c.TreeHash()
	require.True(t, ok)
	require.Equal(t, Hash("29ff16c9c14e2652b22f8b78bb08a5a07930c147"), treeHash)
	require.Equal(t, []Hash{"206941306e8a8af65b66eaaaea388a7ae24d49a0"}, c.Parents())

	sig, ok := c.Get("gpgsig")
	require.True(t, ok)
	require.Equal(t, "-----BEGIN PGP SIGNATURE-----\n\niQIzBAABCAAdFiEExwXquOM8bWb4Q2zVGxM2FxoLkGQFAlsEjZQACgkQGxM2FxoL\n-----END PGP SIGNATURE-----", string(sig))

	out, err := c.Serialize()
	require.NoError(t, err)
	require.Equal(t, string(raw), string(out))
}

func TestUnmarshalDispatch(t *testing.T) {
	obj, err := Unmarshal(TypeBlob, []byte("x"))
	require.NoError(t, err)
	require.Equal(t, TypeBlob, obj.Type())

	obj, err = Unmarshal(TypeTree, nil)
	require.NoError(t, err)
	require.Equal(t, TypeTree, obj.Type())

	obj, err = Unmarshal(TypeCommit, []byte("\nmsg"))
	require.NoError(t, err)
	require.Equal(t, TypeCommit, obj.Type())

	_, err = Unmarshal(ObjectType("tag"), []byte("x"))
	require.ErrorIs(t, err, ErrUnknownObjectKind)
}

func TestHashRawRoundTrip(t *testing.T) {
	raw, err := testHashB.Raw()
	require.NoError(t, err)
	h, err := HashFromRaw(raw[:])
	require.NoError(t, err)
	require.Equal(t, testHashB, h)

	_, err = ParseHash("CE013625030BA8DBA906F756967F9E9CA394464A")
	require.Error(t, err)
	_, err = HashFromRaw(raw[:19])
	require.Error(t, err)
}
