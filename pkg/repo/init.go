package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/odvcencio/wyag/pkg/object"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// Init creates a new wyag repository at path. The worktree is created if
// missing; an existing worktree must be a directory without a .wyag/
// entry. The .wyag/ layout is: branches/, objects/, refs/tags/,
// refs/heads/, description, HEAD and config.
func Init(path string, opts ...Option) (*Repo, error) {
	o := applyOptions(opts)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	wyagDir := filepath.Join(abs, DirName)

	info, err := os.Stat(abs)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("init: %s is not a directory", abs)
	case err == nil:
		if _, err := os.Lstat(wyagDir); err == nil {
			return nil, fmt.Errorf("init: repository already exists at %s", wyagDir)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("init: stat %s: %w", abs, err)
	}

	// Create directory structure.
	dirs := []string{
		filepath.Join(wyagDir, "branches"),
		filepath.Join(wyagDir, "objects"),
		filepath.Join(wyagDir, "refs", "tags"),
		filepath.Join(wyagDir, "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	files := []struct {
		name    string
		content string
	}{
		{"description", defaultDescription},
		{"HEAD", "ref: refs/heads/master\n"},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(wyagDir, f.name), []byte(f.content), 0o644); err != nil {
			return nil, fmt.Errorf("init: write %s: %w", f.name, err)
		}
	}

	cfg := DefaultConfig()
	if err := WriteConfig(wyagDir, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	o.logger.Debug("initialized repository", zap.String("dir", wyagDir))
	return &Repo{
		RootDir: abs,
		WyagDir: wyagDir,
		Store:   object.NewStore(wyagDir),
		Config:  cfg,
		logger:  o.logger,
	}, nil
}

// Open searches upward from path for a .wyag/ directory and opens the
// repository. Returns an error if no .wyag/ directory is found or its
// config is missing or of an unsupported version.
func Open(path string, opts ...Option) (*Repo, error) {
	o := applyOptions(opts)

	// Resolve to absolute path for consistent traversal.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		wyagDir := filepath.Join(cur, DirName)
		info, err := os.Stat(wyagDir)
		if err == nil && info.IsDir() {
			cfg, err := ReadConfig(wyagDir)
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", wyagDir, err)
			}
			store := object.NewStore(wyagDir)
			o.logger.Debug("opened repository",
				zap.String("dir", wyagDir),
				zap.String("from", abs),
				zap.String("objects", store.Root()))
			return &Repo{
				RootDir: cur,
				WyagDir: wyagDir,
				Store:   store,
				Config:  cfg,
				logger:  o.logger,
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .wyag/.
			return nil, fmt.Errorf("open: not a wyag repository (or any parent up to /)")
		}
		cur = parent
	}
}
