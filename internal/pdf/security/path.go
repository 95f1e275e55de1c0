// Package security guards file access for the detection service. Every path
// a tool client hands in must resolve inside the PDF directory the server
// was started with, so a request can never read documents elsewhere on the
// host, not through relative segments and not through symlinks.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator rejects paths that escape the directory it is scoped to
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator scoped to root. The directory does
// not need to exist yet; enforcement starts once it does.
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}
	return &PathValidator{root: root}, nil
}

// GetConfiguredDirectory returns the directory the validator is scoped to
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.root
}

// ValidatePath checks that path stays inside the scoped directory
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// A scope directory that does not exist yet cannot contain anything,
	// so there is nothing to enforce until it is created
	if _, err := os.Stat(v.root); os.IsNotExist(err) {
		return nil
	}

	target, err := resolve(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	scope, err := resolve(v.root)
	if err != nil {
		return fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	if target != scope && !strings.HasPrefix(target, scope+string(filepath.Separator)) {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// resolve makes the path absolute, strips . and .. segments, and follows
// symlinks when the target exists. Comparing resolved paths means a symlink
// planted inside the scope cannot point detection at a file outside it.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)

	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
