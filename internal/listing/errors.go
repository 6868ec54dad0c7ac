package listing

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel filesystem errors. Wrapped errors from List match these with
// errors.Is.
var (
	ErrNotFound     = errors.New("path not found")
	ErrPermission   = errors.New("permission denied")
	ErrNotDirectory = errors.New("not a directory")
)

func classify(err error, path string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", path, ErrPermission)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

func notDirError(path string) error {
	return fmt.Errorf("%s: %w", path, ErrNotDirectory)
}
