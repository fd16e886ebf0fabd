package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/odvcencio/wyag/pkg/object"
)

// ErrPreconditionFailed is returned when a checkout target exists and is
// not an empty directory.
var ErrPreconditionFailed = errors.New("checkout precondition failed")

// Checkout materializes the tree named by id into target. id may name a
// commit, whose tree is used, or a tree.
//
// Algorithm:
//  1. Read id; dereference a commit to its tree.
//  2. Require target to be absent or an empty directory, then create it.
//     Nothing is written before this check passes.
//  3. For every entry in stored order: a blob becomes a file holding the
//     exact payload, a tree becomes a directory and is recursed into.
func Checkout(s *object.Store, id object.Hash, target string) error {
	tree, _, err := readTreeish(s, id)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if err := prepareCheckoutDir(target); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("checkout: abs path: %w", err)
	}
	if err := materializeTree(s, tree, abs); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	return nil
}

// Checkout resolves name and materializes it into target.
func (r *Repo) Checkout(name, target string) error {
	id, err := r.ResolveName(name)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	r.logger.Debug("checkout", zap.String("object", string(id)), zap.String("target", target))
	return Checkout(r.Store, id, target)
}

func prepareCheckoutDir(target string) error {
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", target, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrPreconditionFailed, target)
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", target, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s is not empty", ErrPreconditionFailed, target)
	}
	return nil
}

func materializeTree(s *object.Store, tree *object.Tree, dir string) error {
	for _, e := range tree.Entries {
		dest := filepath.Join(dir, e.Name)

		obj, err := s.Read(e.Hash)
		if err != nil {
			return fmt.Errorf("entry %q: %w", dest, err)
		}
		switch o := obj.(type) {
		case *object.Tree:
			if err := os.Mkdir(dest, 0o755); err != nil {
				return fmt.Errorf("mkdir %q: %w", dest, err)
			}
			if err := materializeTree(s, o, dest); err != nil {
				return err
			}
		case *object.Blob:
			if err := writeBlobFile(dest, o.Data, filePermFromMode(e.Mode)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("entry %q: %w", dest, &object.ObjectError{
				Hash:   e.Hash,
				Offset: -1,
				Err:    object.ErrCorruptObject,
				Detail: fmt.Sprintf("%s cannot be a tree entry", obj.Type()),
			})
		}
	}
	return nil
}

func writeBlobFile(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
