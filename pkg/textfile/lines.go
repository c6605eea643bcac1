package textfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ginjaninja78/recordkit/pkg/batch"
)

// =============================================================================
// LINE READER
// =============================================================================

// LineReader reads decoded lines one at a time, honoring From/To bounds.
// It is forward-only; create a new reader to start over.
//
// USAGE:
//
//	lr := textfile.NewLineReader(f, textfile.From(2))
//	for lr.Next() {
//	    fmt.Println(lr.LineNumber(), lr.Line())
//	}
//	if err := lr.Err(); err != nil {
//	    return err
//	}
type LineReader struct {
	scanner *bufio.Scanner
	from    int
	to      int
	number  int
	line    string
	done    bool
	err     error
}

// maxLineLength bounds the length of a single line.
const maxLineLength = 16 * 1024 * 1024

// NewLineReader returns a reader over r. Only the From, To, WithEncoding
// and WithSeparator options apply. Without WithSeparator, "\n", "\r\n" and
// a lone "\r" all end a line.
func NewLineReader(r io.Reader, opts ...Option) *LineReader {
	o := newOptions(opts)

	scanner := bufio.NewScanner(decodingReader(r, o.enc))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	if o.separator == "" {
		scanner.Split(scanLines)
	} else {
		scanner.Split(scanSeparator([]byte(o.separator)))
	}

	return &LineReader{
		scanner: scanner,
		from:    o.from,
		to:      o.to,
	}
}

// Next advances to the next line within bounds. It returns false at end of
// input, after the To bound, or on a read error.
func (lr *LineReader) Next() bool {
	for !lr.done && lr.err == nil {
		line, ok := lr.readLine()
		if !ok {
			return false
		}
		lr.number++

		if lr.to > 0 && lr.number > lr.to {
			lr.done = true
			return false
		}
		if lr.from > 0 && lr.number < lr.from {
			continue
		}

		lr.line = line
		return true
	}
	return false
}

// readLine reads one line without its terminator.
func (lr *LineReader) readLine() (string, bool) {
	if lr.scanner.Scan() {
		return lr.scanner.Text(), true
	}
	lr.done = true
	if err := lr.scanner.Err(); err != nil {
		lr.err = fmt.Errorf("failed to read line %d: %w", lr.number+1, err)
	}
	return "", false
}

// scanLines splits on "\n", "\r\n" or a lone "\r".
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		// A trailing "\r" may be the first half of "\r\n".
		if !atEOF {
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// scanSeparator splits on sep.
func scanSeparator(sep []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.Index(data, sep); i >= 0 {
			return i + len(sep), data[:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// Line returns the current line.
func (lr *LineReader) Line() string {
	return lr.line
}

// LineNumber returns the 1-based number of the current line, counted from
// the start of the input.
func (lr *LineReader) LineNumber() int {
	return lr.number
}

// Err returns the first read error.
func (lr *LineReader) Err() error {
	return lr.err
}

// All returns the remaining lines as a sequence.
func (lr *LineReader) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for lr.Next() {
			if !yield(lr.line) {
				return
			}
		}
	}
}

// =============================================================================
// LINE GENERATOR AND LINE-STREAM BATCHER
// =============================================================================

// Lines lazily yields the line number and text of each line of content
// within the From/To bounds. Lines before From are skipped without being
// buffered. A decoding error ends the sequence; use LineReader to observe
// it.
func Lines(content []byte, opts ...Option) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lr := NewLineReader(bytes.NewReader(content), opts...)
		for lr.Next() {
			if !yield(lr.LineNumber(), lr.Line()) {
				return
			}
		}
	}
}

// ProcessLines decodes content and hands the lines within the From/To
// bounds to fn in batches of size lines, numbered from 1.
//
// The final partial batch is flushed whether reading ended at the end of
// content or at the To bound. Processing stops after a batch whose Cancel
// flag is set. An error returned by fn is returned unchanged.
func ProcessLines(content []byte, size int, fn batch.Func[string], opts ...Option) error {
	lr := NewLineReader(bytes.NewReader(content), opts...)
	if err := batch.Process(lr.All(), size, fn); err != nil {
		return err
	}
	return lr.Err()
}

// =============================================================================
// WHOLE-CONTENT HELPERS
// =============================================================================

// ReadLines decodes content and splits it into lines, dropping empty ones.
// Without WithSeparator, "\n", "\r\n" and "\r" all end a line.
func ReadLines(content []byte, opts ...Option) ([]string, error) {
	o := newOptions(opts)

	text, err := decodeBytes(content, o.enc)
	if err != nil {
		return nil, err
	}

	var parts []string
	if o.separator == "" {
		parts = strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	} else {
		parts = strings.Split(text, o.separator)
	}

	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			lines = append(lines, p)
		}
	}
	return lines, nil
}
