// Package fsops performs sandboxed file I/O for the file tools.
//
// Roots come from MAACHET_READ_ROOT and MAACHET_WRITE_ROOT, defaulting to the
// working directory, and are resolved once per process.
package fsops

import (
	"os"
	"sync"

	"github.com/goetz-markgraf/maach-et/internal/safety"
)

var (
	rootsOnce    sync.Once
	absReadRoot  string
	absWriteRoot string
	initRootsErr error
)

func initRoots() {
	absReadRoot, absWriteRoot, initRootsErr = safety.InitSandboxRoot(
		os.Getenv("MAACHET_READ_ROOT"),
		os.Getenv("MAACHET_WRITE_ROOT"),
	)
}

func getRoots() (string, string, error) {
	rootsOnce.Do(initRoots)
	return absReadRoot, absWriteRoot, initRootsErr
}
