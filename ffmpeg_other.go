//go:build !darwin && !linux

package renderers

import (
	"fmt"
	"runtime"
)

func loadFFmpeg() (*FFmpegLibrary, error) {
	return nil, fmt.Errorf("%w: unsupported platform %s", ErrLibraryNotFound, runtime.GOOS)
}
