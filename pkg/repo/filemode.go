package repo

import (
	"os"

	"github.com/odvcencio/wyag/pkg/object"
)

// filePermFromMode maps a tree entry mode to the permission bits of the
// file written at checkout. Only the executable bit survives.
func filePermFromMode(mode string) os.FileMode {
	if mode == object.TreeModeExecutable {
		return 0o755
	}
	return 0o644
}
