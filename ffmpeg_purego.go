//go:build darwin || linux

// libavcodec loading via purego.

package renderers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	ffmpegOnce    sync.Once
	ffmpegLoaded  *FFmpegLibrary
	ffmpegInitErr error
)

// libavcodec function pointers
var (
	avcodecVersion           func() uint32
	avcodecLicense           func() uintptr
	avcodecFindDecoderByName func(name string) uintptr
)

// Shared-object sonames tried after the unversioned name, newest first.
var ffmpegSonames = []string{"61", "60", "59", "58"}

func loadFFmpeg() (*FFmpegLibrary, error) {
	ffmpegOnce.Do(func() {
		ffmpegLoaded, ffmpegInitErr = loadFFmpegLib(ffmpegLibPaths())
	})
	return ffmpegLoaded, ffmpegInitErr
}

func loadFFmpegLib(paths []string) (*FFmpegLibrary, error) {
	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		if err := loadFFmpegSymbols(handle); err != nil {
			purego.Dlclose(handle)
			lastErr = err
			continue
		}
		return &FFmpegLibrary{
			Path:        path,
			Version:     avcodecVersion(),
			License:     goStringFromPtr(avcodecLicense()),
			findDecoder: ffmpegHasDecoder,
		}, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryNotFound, lastErr)
	}
	return nil, fmt.Errorf("%w: no search paths", ErrLibraryNotFound)
}

// ffmpegHasDecoder reports whether avcodec_find_decoder_by_name returns a
// codec for name.
func ffmpegHasDecoder(name string) bool {
	return avcodecFindDecoderByName(name) != 0
}

func loadFFmpegSymbols(handle uintptr) error {
	for _, sym := range []struct {
		fptr any
		name string
	}{
		{&avcodecVersion, "avcodec_version"},
		{&avcodecLicense, "avcodec_license"},
		{&avcodecFindDecoderByName, "avcodec_find_decoder_by_name"},
	} {
		addr, err := purego.Dlsym(handle, sym.name)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", sym.name, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	return nil
}

func ffmpegLibNames() []string {
	if runtime.GOOS == "darwin" {
		names := []string{"libavcodec.dylib"}
		for _, v := range ffmpegSonames {
			names = append(names, "libavcodec."+v+".dylib")
		}
		return names
	}
	names := []string{"libavcodec.so"}
	for _, v := range ffmpegSonames {
		names = append(names, "libavcodec.so."+v)
	}
	return names
}

func ffmpegLibPaths() []string {
	var paths []string
	names := ffmpegLibNames()

	// Environment variable overrides (highest priority)
	if envPath := os.Getenv("FFMPEG_LIB_PATH"); envPath != "" {
		paths = append(paths, envPath)
	}
	if envDir := os.Getenv("MEDIA_SDK_LIB_PATH"); envDir != "" {
		for _, name := range names {
			paths = append(paths, filepath.Join(envDir, name))
		}
	}

	// Bundled next to the executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		for _, name := range names {
			paths = append(paths,
				filepath.Join(exeDir, name),
				filepath.Join(exeDir, "..", "lib", name),
			)
		}
	}

	// Development builds
	if moduleRoot := findModuleRoot(); moduleRoot != "" {
		for _, name := range names {
			paths = append(paths, filepath.Join(moduleRoot, "build", name))
		}
	}

	// System paths (lowest priority)
	var dirs []string
	switch runtime.GOOS {
	case "darwin":
		dirs = []string{"/usr/local/lib", "/opt/homebrew/lib"}
	case "linux":
		dirs = []string{"/usr/local/lib", "/usr/lib", "/usr/lib/x86_64-linux-gnu", "/usr/lib/aarch64-linux-gnu"}
	}
	for _, name := range names {
		paths = append(paths, name)
		for _, dir := range dirs {
			paths = append(paths, filepath.Join(dir, name))
		}
	}

	return paths
}
