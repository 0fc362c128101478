// Package security confines files exported from a vault to a target
// directory. Names stored inside a vault are untrusted input: a crafted
// vault could carry names such as "../../.bashrc".
package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrPathEscapes  = errors.New("path escapes export directory")
	ErrAbsolutePath = errors.New("absolute paths are not allowed")
	ErrEmptyPath    = errors.New("empty path not allowed")
	ErrFileExists   = errors.New("file already exists")
)

// PathValidator validates names and performs file operations confined to
// a root directory using the os.Root API.
type PathValidator struct {
	root     *os.Root
	rootPath string
}

// New creates a PathValidator for the directory at rootPath
func New(rootPath string) (*PathValidator, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open export directory: %w", err)
	}

	return &PathValidator{
		root:     root,
		rootPath: absPath,
	}, nil
}

// Close releases resources held by the PathValidator
func (pv *PathValidator) Close() error {
	if pv.root != nil {
		return pv.root.Close()
	}
	return nil
}

// Root returns the absolute path of the root directory
func (pv *PathValidator) Root() string {
	return pv.rootPath
}

// ValidateAndNormalize validates a name and returns it as a clean relative
// path with forward slashes. It rejects:
// - Empty names
// - Absolute paths
// - Names that escape the root (using ..)
// - Names that are not local (Windows reserved names and the like)
func (pv *PathValidator) ValidateAndNormalize(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyPath
	}

	if !filepath.IsLocal(name) {
		if filepath.IsAbs(name) {
			return "", fmt.Errorf("%w: %s", ErrAbsolutePath, name)
		}
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, name)
	}

	cleanPath := filepath.Clean(name)
	if !filepath.IsLocal(cleanPath) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, cleanPath)
	}

	relPath, err := filepath.Rel(pv.rootPath, filepath.Join(pv.rootPath, cleanPath))
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if strings.HasPrefix(relPath, "..") || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, name)
	}

	return filepath.ToSlash(relPath), nil
}

// CreateFile writes data to a new file under the root. Missing parent
// directories are created; an existing file is never overwritten.
// It returns the absolute path written.
func (pv *PathValidator) CreateFile(name string, data []byte, perm os.FileMode) (string, error) {
	rel, err := pv.ValidateAndNormalize(name)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	platformPath := filepath.FromSlash(rel)

	if dir := filepath.Dir(platformPath); dir != "." {
		if err := pv.root.MkdirAll(dir, 0700); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := pv.root.OpenFile(platformPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrFileExists, rel)
		}
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		pv.root.Remove(platformPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return filepath.Join(pv.rootPath, platformPath), nil
}

// StatInRoot stats a file under the root
func (pv *PathValidator) StatInRoot(name string) (os.FileInfo, error) {
	rel, err := pv.ValidateAndNormalize(name)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	return pv.root.Stat(filepath.FromSlash(rel))
}
