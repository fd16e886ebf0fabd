package object

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// Store is a content-addressed loose-object store with a 2-character
// fan-out directory layout: objects/ab/cdef0123...
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The objects/
// subdirectory is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory holding objects/.
func (s *Store) Root() string {
	return s.root
}

// objectPath returns the filesystem path for a given hash. Names that
// are not full lowercase hex digests have no path.
func (s *Store) objectPath(h Hash) (string, bool) {
	if _, err := ParseHash(string(h)); err != nil {
		return "", false
	}
	return filepath.Join(s.root, "objects", string(h[:2]), string(h[2:])), true
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	p, ok := s.objectPath(h)
	if !ok {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// Compute serializes obj and returns its hash and framed bytes without
// touching the filesystem.
func Compute(obj Object) (Hash, []byte, error) {
	payload, err := obj.Serialize()
	if err != nil {
		return "", nil, fmt.Errorf("serialize %s: %w", obj.Type(), err)
	}
	raw := Frame(obj.Type(), payload)
	return HashBytes(raw), raw, nil
}

// Write serializes and stores obj, returning its content hash.
func (s *Store) Write(obj Object) (Hash, error) {
	h, raw, err := Compute(obj)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := s.persist(h, raw); err != nil {
		return "", err
	}
	return h, nil
}

// WriteRaw stores payload under objType after checking that it parses
// as that variant.
func (s *Store) WriteRaw(objType ObjectType, payload []byte) (Hash, error) {
	obj, err := Unmarshal(objType, payload)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}
	return s.Write(obj)
}

// persist compresses the framed bytes and writes them atomically: data
// is written to a temp file and then renamed into place.
func (s *Store) persist(h Hash, raw []byte) (err error) {
	// Fast path: already exists.
	if s.Has(h) {
		return nil
	}

	compressed, err := Compress(raw)
	if err != nil {
		return fmt.Errorf("object write compress: %w", err)
	}

	dir := filepath.Join(s.root, "objects", string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreNotExist(os.Remove(tmpName)))
		}
	}()

	if _, err := tmp.Write(compressed); err != nil {
		return multierr.Append(fmt.Errorf("object write: %w", err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("object write close: %w", err)
	}

	dest := filepath.Join(dir, string(h[2:]))
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("object write rename: %w", err)
	}
	return nil
}

// ReadRaw retrieves an object by hash, returning its type and payload.
func (s *Store) ReadRaw(h Hash) (ObjectType, []byte, error) {
	p, ok := s.objectPath(h)
	if !ok {
		return "", nil, &ObjectError{Hash: h, Offset: -1, Err: ErrObjectNotFound, Detail: "not a full object name"}
	}
	compressed, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, &ObjectError{Hash: h, Offset: -1, Err: ErrObjectNotFound}
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	raw, err := Decompress(compressed)
	if err != nil {
		return "", nil, withHash(h, err)
	}
	objType, payload, err := Unframe(raw)
	if err != nil {
		return "", nil, withHash(h, err)
	}
	return objType, payload, nil
}

// Read retrieves an object by hash and parses it into its variant.
func (s *Store) Read(h Hash) (Object, error) {
	objType, payload, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	obj, err := Unmarshal(objType, payload)
	if err != nil {
		return nil, withHash(h, err)
	}
	return obj, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// ReadBlob reads and deserializes a Blob.
func (s *Store) ReadBlob(h Hash) (*Blob, error) {
	obj, err := s.readTyped(h, TypeBlob)
	if err != nil {
		return nil, err
	}
	return obj.(*Blob), nil
}

// ReadTree reads and deserializes a Tree.
func (s *Store) ReadTree(h Hash) (*Tree, error) {
	obj, err := s.readTyped(h, TypeTree)
	if err != nil {
		return nil, err
	}
	return obj.(*Tree), nil
}

// ReadCommit reads and deserializes a Commit.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	obj, err := s.readTyped(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	return obj.(*Commit), nil
}

func (s *Store) readTyped(h Hash, want ObjectType) (Object, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if obj.Type() != want {
		return nil, &ObjectError{
			Hash:   h,
			Offset: -1,
			Err:    ErrTypeMismatch,
			Detail: fmt.Sprintf("got %q, want %q", obj.Type(), want),
		}
	}
	return obj, nil
}

func ignoreNotExist(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
