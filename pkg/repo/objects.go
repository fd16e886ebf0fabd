package repo

import (
	"fmt"
	"io"

	"github.com/odvcencio/wyag/pkg/object"
)

// CatFile reads id, checks that it is of the expected type and returns
// its payload bytes.
func CatFile(s *object.Store, id object.Hash, expected object.ObjectType) ([]byte, error) {
	objType, payload, err := s.ReadRaw(id)
	if err != nil {
		return nil, fmt.Errorf("cat-file: %w", err)
	}
	if objType != expected {
		return nil, fmt.Errorf("cat-file: %w", &object.ObjectError{
			Hash:   id,
			Offset: -1,
			Err:    object.ErrTypeMismatch,
			Detail: fmt.Sprintf("got %q, want %q", objType, expected),
		})
	}
	// Reject payloads that do not parse as their declared variant.
	if _, err := object.Unmarshal(objType, payload); err != nil {
		return nil, fmt.Errorf("cat-file %s: %w", id, err)
	}
	return payload, nil
}

// HashObject parses data as an object of type objType and returns its
// hash. When s is non-nil the object is also written to s.
func HashObject(s *object.Store, objType object.ObjectType, data []byte) (object.Hash, error) {
	obj, err := object.Unmarshal(objType, data)
	if err != nil {
		return "", fmt.Errorf("hash-object: %w", err)
	}
	if s == nil {
		h, _, err := object.Compute(obj)
		if err != nil {
			return "", fmt.Errorf("hash-object: %w", err)
		}
		return h, nil
	}
	h, err := s.Write(obj)
	if err != nil {
		return "", fmt.Errorf("hash-object: %w", err)
	}
	return h, nil
}

// TreeRow is one line of ls-tree output.
type TreeRow struct {
	Mode string // padded to six digits
	Type object.ObjectType
	Hash object.Hash
	Path string
}

// ListTree returns one row per entry of the tree named by id. A commit
// id lists the commit's tree.
func ListTree(s *object.Store, id object.Hash) ([]TreeRow, error) {
	tree, _, err := readTreeish(s, id)
	if err != nil {
		return nil, fmt.Errorf("ls-tree: %w", err)
	}

	rows := make([]TreeRow, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		objType, _, err := s.ReadRaw(e.Hash)
		if err != nil {
			return nil, fmt.Errorf("ls-tree %s: entry %q: %w", id, e.Name, err)
		}
		rows = append(rows, TreeRow{
			Mode: e.PaddedMode(),
			Type: objType,
			Hash: e.Hash,
			Path: e.Name,
		})
	}
	return rows, nil
}

// WriteTreeRows renders rows as "<mode> <type> <hash>\t<path>" lines.
func WriteTreeRows(w io.Writer, rows []TreeRow) error {
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s %s %s\t%s\n", row.Mode, row.Type, row.Hash, row.Path); err != nil {
			return err
		}
	}
	return nil
}

// LogGraph returns the ancestry edges reachable from start.
func LogGraph(s *object.Store, start object.Hash) ([]object.Edge, error) {
	edges, err := s.AncestryEdges(start)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return edges, nil
}

// WriteGraphviz renders edges as a Graphviz digraph named wyaglog.
func WriteGraphviz(w io.Writer, edges []object.Edge) error {
	if _, err := io.WriteString(w, "digraph wyaglog{\n"); err != nil {
		return err
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "c_%s -> c_%s;\n", e.Child, e.Parent); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

// readTreeish reads id as a tree, dereferencing a commit to its tree.
// The returned hash is the tree's.
func readTreeish(s *object.Store, id object.Hash) (*object.Tree, object.Hash, error) {
	obj, err := s.Read(id)
	if err != nil {
		return nil, "", err
	}
	switch o := obj.(type) {
	case *object.Tree:
		return o, id, nil
	case *object.Commit:
		treeHash, ok := o.TreeHash()
		if !ok {
			return nil, "", &object.ObjectError{Hash: id, Offset: -1, Err: object.ErrCorruptObject, Detail: "commit has no tree field"}
		}
		tree, err := s.ReadTree(treeHash)
		if err != nil {
			return nil, "", err
		}
		return tree, treeHash, nil
	default:
		return nil, "", &object.ObjectError{
			Hash:   id,
			Offset: -1,
			Err:    object.ErrTypeMismatch,
			Detail: fmt.Sprintf("%s is not a tree or commit", obj.Type()),
		}
	}
}
