package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

// RepositoryFormatVersion is the only on-disk format version understood.
const RepositoryFormatVersion = 0

// Config mirrors .wyag/config.
type Config struct {
	Core CoreConfig `toml:"core"`
}

// CoreConfig is the [core] section.
type CoreConfig struct {
	RepositoryFormatVersion int  `toml:"repositoryformatversion"`
	FileMode                bool `toml:"filemode"`
	Bare                    bool `toml:"bare"`
}

// DefaultConfig returns the configuration written by Init.
func DefaultConfig() *Config {
	return &Config{Core: CoreConfig{
		RepositoryFormatVersion: RepositoryFormatVersion,
		FileMode:                false,
		Bare:                    false,
	}}
}

func configPath(wyagDir string) string {
	return filepath.Join(wyagDir, "config")
}

// ReadConfig reads and validates .wyag/config.
func ReadConfig(wyagDir string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(configPath(wyagDir), &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: configuration file missing in %s", wyagDir)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if !md.IsDefined("core", "repositoryformatversion") {
		return nil, fmt.Errorf("read config: core.repositoryformatversion not set")
	}
	if v := cfg.Core.RepositoryFormatVersion; v != RepositoryFormatVersion {
		return nil, fmt.Errorf("read config: unsupported repositoryformatversion %d", v)
	}
	return &cfg, nil
}

// WriteConfig atomically writes .wyag/config.
func WriteConfig(wyagDir string, cfg *Config) (err error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tmp, err := os.CreateTemp(wyagDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmpName))
		}
	}()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		return multierr.Append(fmt.Errorf("write config: encode: %w", err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, configPath(wyagDir)); err != nil {
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}
