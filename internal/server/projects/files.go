package projects

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iudanet/cartosync/internal/models"
)

// Checker validates a document before it replaces the file on disk.
type Checker func(data []byte) error

// CheckMML accepts data that decodes as a project document.
func CheckMML(data []byte) error {
	var doc models.ProjectDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// CheckJSON accepts any JSON object.
func CheckJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// WriteChecked reads r, validates it with check and atomically replaces
// fileName through a temporary file in the same directory. On any error the
// existing file stays untouched.
func WriteChecked(fileName string, r io.Reader, check Checker) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if err := check(data); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fileName), filepath.Base(fileName)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	// временный файл удаляется в любом случае
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fileName); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(fileName), err)
	}
	return nil
}

// Inspect decodes the project document at mmlPath and returns the files a
// rendering of it depends on: the document itself and its style files. mss
// overrides the document's Stylesheet list when not empty. Relative style
// names are resolved against the document's folder.
func Inspect(mmlPath string, mss []string) ([]string, error) {
	data, err := os.ReadFile(mmlPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, filepath.Base(mmlPath))
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(mmlPath), err)
	}

	var doc models.ProjectDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(filepath.Base(mmlPath), data, err)
	}

	styles := mss
	if len(styles) == 0 {
		styles = doc.Stylesheet
	}

	dir := filepath.Dir(mmlPath)
	files := []string{mmlPath}
	var missing []string
	for _, name := range styles {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, filepath.FromSlash(name))
		}
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, name)
			continue
		}
		files = append(files, p)
	}
	if len(missing) > 0 {
		return files, &MissingFilesError{Files: missing}
	}
	return files, nil
}
