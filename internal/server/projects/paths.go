package projects

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Resolve maps a slash separated path relative to stylesDir to a file name,
// rejecting absolute paths and paths escaping stylesDir.
func Resolve(stylesDir, rel string) (string, error) {
	if rel == "" || strings.HasPrefix(rel, "/") || strings.Contains(rel, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, rel)
	}
	return filepath.Join(stylesDir, filepath.FromSlash(clean)), nil
}

// Join builds the slash separated path of file inside the project folder
// base; "" and "." stand for the styles directory itself.
func Join(base, file string) string {
	if base == "" || base == "." {
		return file
	}
	return base + "/" + file
}
