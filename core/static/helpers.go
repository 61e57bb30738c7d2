package static

import (
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultContentType is used when the file extension has no registered MIME type.
const DefaultContentType = "application/octet-stream"

// resolvePath maps a slash-separated request path onto root.
// The path is cleaned as if rooted, so ".." segments cannot climb above root.
func resolvePath(root, rel string) (string, error) {
	clean := path.Clean("/" + rel)
	full := filepath.Join(root, filepath.FromSlash(clean))
	if err := validatePathSecurity(root, full); err != nil {
		return "", err
	}
	return full, nil
}

// validatePathSecurity ensures the requested path is within the root directory.
func validatePathSecurity(root, requestPath string) error {
	cleanPath := filepath.Clean(requestPath)
	cleanRoot := filepath.Clean(root)

	if !strings.HasPrefix(cleanPath, cleanRoot+string(filepath.Separator)) && cleanPath != cleanRoot {
		return ErrOutsideRoot
	}

	return nil
}

// validateRoot checks that the root exists and is a directory.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", root)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return nil
}

// contentType guesses the MIME type from the file extension.
func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return DefaultContentType
}
