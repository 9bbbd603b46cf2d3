package projects

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPath is returned for project paths outside the styles directory.
	ErrInvalidPath = errors.New("invalid project path")
	// ErrProjectNotFound is returned when the project document does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidDocument is returned by checkers for rejected documents.
	ErrInvalidDocument = errors.New("invalid document")
)

// ParseError reports a project document that could not be decoded. Line and
// Column are 1-based and zero when the position is unknown.
type ParseError struct {
	Err      error
	Filename string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Filename, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError переводит смещение ошибки json в строку и колонку
func newParseError(filename string, data []byte, err error) *ParseError {
	pe := &ParseError{Err: err, Filename: filename}

	var offset int64 = -1
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	if offset < 0 || offset > int64(len(data)) {
		return pe
	}

	head := data[:offset]
	pe.Line = bytes.Count(head, []byte("\n")) + 1
	pe.Column = int(offset) - (bytes.LastIndexByte(head, '\n') + 1)
	if pe.Column < 1 {
		pe.Column = 1
	}
	return pe
}

// MissingFilesError reports style files referenced by a project that do not exist.
type MissingFilesError struct {
	Files []string
}

func (e *MissingFilesError) Error() string {
	return "missing files: " + strings.Join(e.Files, ", ")
}
