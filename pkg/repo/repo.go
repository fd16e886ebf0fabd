package repo

import (
	"go.uber.org/zap"

	"github.com/odvcencio/wyag/pkg/object"
)

// DirName is the repository metadata directory inside a worktree.
const DirName = ".wyag"

// Repo represents an opened wyag repository.
type Repo struct {
	RootDir string        // working directory root
	WyagDir string        // .wyag/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config
	logger  *zap.Logger
}

// Option configures Init and Open.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for repository bootstrap messages.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ResolveName maps a user-supplied object name to a hash. Names are
// taken literally: no short-hash expansion, ref or HEAD lookup is done,
// and the result is not validated.
func (r *Repo) ResolveName(name string) (object.Hash, error) {
	return ResolveName(name)
}

// ResolveName is the repository-independent form of Repo.ResolveName.
func ResolveName(name string) (object.Hash, error) {
	return object.Hash(name), nil
}
