package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a file system over an archive. path may be an extracted
// archive directory or a zipped .olm/.zip file. The returned closer must be
// closed once the run is done with the file system.
func Open(path string) (fs.FS, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}

	if info.IsDir() {
		return os.DirFS(path), nopCloser{}, nil
	}

	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".olm") && !strings.HasSuffix(lower, ".zip") {
		return nil, nil, fmt.Errorf("archive %s is neither a directory nor an .olm/.zip file", path)
	}

	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read zipped archive %s: %w", path, err)
	}
	return rc, rc, nil
}
