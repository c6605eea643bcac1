package textfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ginjaninja78/recordkit/pkg/file"
)

// flushEvery is the number of lines buffered between flushes by the writers.
const flushEvery = 1000

// ReadItems splits content into lines, splits each line by the field
// separator and maps the fields to an item. SkipHeader drops the first line.
func ReadItems[T any](content []byte, mapFn func(fields []string) T, opts ...Option) ([]T, error) {
	if mapFn == nil {
		panic("textfile: map function is required")
	}
	o := newOptions(opts)

	lines, err := ReadLines(content, opts...)
	if err != nil {
		return nil, err
	}
	if o.skipHeader && len(lines) > 0 {
		lines = lines[1:]
	}

	sep := string(o.fieldSeparator)
	items := make([]T, 0, len(lines))
	for _, line := range lines {
		items = append(items, mapFn(strings.Split(line, sep)))
	}
	return items, nil
}

// WriteItems writes an optional header line followed by one line per item.
// Output is encoded with WithEncoding and lines end with WithSeparator
// ("\n" by default).
func WriteItems[T any](w io.Writer, items []T, itemMap func(T) string, header string, opts ...Option) error {
	if itemMap == nil {
		panic("textfile: item map function is required")
	}
	o := newOptions(opts)
	sep := o.separator
	if sep == "" {
		sep = "\n"
	}

	ew, closeEncoder := encodingWriter(w, o.enc)
	bw := bufio.NewWriter(ew)

	writeLine := func(line string) error {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		_, err := bw.WriteString(sep)
		return err
	}

	if header != "" {
		if err := writeLine(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, item := range items {
		if err := writeLine(itemMap(item)); err != nil {
			return fmt.Errorf("failed to write line %d: %w", i+1, err)
		}
		if (i+1)%flushEvery == 0 {
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("failed to flush: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return closeEncoder()
}

// CreateFromItems renders items into an in-memory File named name.
func CreateFromItems[T any](name string, items []T, itemMap func(T) string, header string, opts ...Option) (*file.File, error) {
	var buf bytes.Buffer
	if err := WriteItems(&buf, items, itemMap, header, opts...); err != nil {
		return nil, err
	}
	return file.New(name, buf.Bytes()), nil
}

// AppendItemsToFile writes items to the file at path. A new file starts with
// header; an existing file is appended to without repeating it.
func AppendItemsToFile[T any](path string, items []T, itemMap func(T) string, header string, opts ...Option) error {
	_, err := os.Stat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if exists {
		header = ""
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	if err := WriteItems(f, items, itemMap, header, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
