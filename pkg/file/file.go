// Package file defines the in-memory file value exchanged with the text
// engine and the file validation rules.
package file

import (
	"path/filepath"
	"strings"
)

// File is a named byte payload.
type File struct {
	// Name is the file name, optionally including a directory.
	Name string

	// Content is the raw file content.
	Content []byte
}

// New returns a File with the given name and content.
func New(name string, content []byte) *File {
	return &File{Name: name, Content: content}
}

// IsEmpty reports whether f is nil or has no content.
func (f *File) IsEmpty() bool {
	return f == nil || len(f.Content) == 0
}

// Extension returns the lower-cased extension of the file name, including
// the leading dot, or "" when there is none.
func (f *File) Extension() string {
	if f == nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(f.Name))
}

// BaseName returns the last element of the file name.
func (f *File) BaseName() string {
	if f == nil || f.Name == "" {
		return ""
	}
	return filepath.Base(f.Name)
}

// Size returns the content length in bytes.
func (f *File) Size() int {
	if f == nil {
		return 0
	}
	return len(f.Content)
}
