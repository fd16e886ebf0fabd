package object

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const emptyTreeHash = Hash("4b825dc642cb6eb9a060e54bf8d69288fbee4904")

// writeCommitLoose stores a commit under an arbitrary hash so tests can
// build graphs that content addressing alone cannot produce (cycles).
func writeCommitLoose(t *testing.T, s *Store, h Hash, parents ...Hash) {
	t.Helper()
	var k KVLM
	k.Add("tree", []byte(emptyTreeHash))
	for _, p := range parents {
		k.Add("parent", []byte(p))
	}
	k.Message = []byte("commit " + string(h) + "\n")
	compressed, err := Compress(Frame(TypeCommit, k.Serialize()))
	require.NoError(t, err)
	writeLoose(t, s, h, compressed)
}

func TestAncestryEdgesLinear(t *testing.T) {
	s := tempStore(t)

	var root KVLM
	root.Add("tree", []byte(emptyTreeHash))
	root.Message = []byte("root\n")
	rootHash, err := s.Write(&Commit{KVLM: root})
	require.NoError(t, err)

	var child KVLM
	child.Add("tree", []byte(emptyTreeHash))
	child.Add("parent", []byte(rootHash))
	child.Message = []byte("child\n")
	childHash, err := s.Write(&Commit{KVLM: child})
	require.NoError(t, err)

	edges, err := s.AncestryEdges(childHash)
	require.NoError(t, err)
	require.Equal(t, []Edge{{Child: childHash, Parent: rootHash}}, edges)

	edges, err = s.AncestryEdges(rootHash)
	require.NoError(t, err)
	require.Empty(t, edges)
}

func TestAncestryEdgesCycle(t *testing.T) {
	s := tempStore(t)
	a := Hash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	b := Hash("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	writeCommitLoose(t, s, a, b)
	writeCommitLoose(t, s, b, a)

	edges, err := s.AncestryEdges(a)
	require.NoError(t, err)
	require.Equal(t, []Edge{{Child: a, Parent: b}, {Child: b, Parent: a}}, edges)
}

func TestAncestryEdgesMergeOrder(t *testing.T) {
	// m has parents x then y; x and y share base r.
	s := tempStore(t)
	m := Hash("1000000000000000000000000000000000000000")
	x := Hash("2000000000000000000000000000000000000000")
	y := Hash("3000000000000000000000000000000000000000")
	r := Hash("4000000000000000000000000000000000000000")
	writeCommitLoose(t, s, m, x, y)
	writeCommitLoose(t, s, x, r)
	writeCommitLoose(t, s, y, r)
	writeCommitLoose(t, s, r)

	edges, err := s.AncestryEdges(m)
	require.NoError(t, err)
	require.Equal(t, []Edge{
		{Child: m, Parent: x},
		{Child: x, Parent: r},
		{Child: m, Parent: y},
		{Child: y, Parent: r},
	}, edges)
}

func TestWalkAncestrySharedSeenSet(t *testing.T) {
	s := tempStore(t)
	x := Hash("2000000000000000000000000000000000000000")
	r := Hash("4000000000000000000000000000000000000000")
	writeCommitLoose(t, s, x, r)
	writeCommitLoose(t, s, r)

	seen := map[Hash]struct{}{x: {}}
	edges, err := s.WalkAncestry(x, seen)
	require.NoError(t, err)
	require.Empty(t, edges)

	seen = make(map[Hash]struct{})
	_, err = s.WalkAncestry(x, seen)
	require.NoError(t, err)
	require.Contains(t, seen, r)
}

func TestAncestryEdgesMissingParent(t *testing.T) {
	s := tempStore(t)
	a := Hash("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	writeCommitLoose(t, s, a, Hash("cccccccccccccccccccccccccccccccccccccccc"))

	_, err := s.AncestryEdges(a)
	require.ErrorIs(t, err, ErrObjectNotFound)
}

func TestAncestryEdgesRejectsNonCommit(t *testing.T) {
	s := tempStore(t)
	h, err := s.Write(&Blob{Data: []byte("not a commit")})
	require.NoError(t, err)

	_, err = s.AncestryEdges(h)
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
}
