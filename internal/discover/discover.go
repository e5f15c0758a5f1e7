// Package discover finds input files under a data directory.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemError is returned when the root directory can't be traversed.
type FilesystemError struct {
	Root string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("reading %q: %v", e.Root, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Files returns the absolute paths of every file under root whose name ends
// with ext, in lexical order. An empty tree yields an empty slice.
func Files(root string, ext string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &FilesystemError{Root: root, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &FilesystemError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &FilesystemError{Root: root, Err: fmt.Errorf("not a directory")}
	}

	ext = strings.ToLower(ext)
	files := []string{}
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &FilesystemError{Root: root, Err: err}
	}

	return files, nil
}
