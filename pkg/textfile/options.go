package textfile

import "golang.org/x/text/encoding"

// DefaultFieldSeparator splits record fields.
const DefaultFieldSeparator = ','

// options configures the line and item functions.
type options struct {
	// from is the first 1-based line to read. Zero reads from the start.
	from int

	// to is the last 1-based line to read. Zero reads to the end.
	to int

	// enc decodes input and encodes output. Nil means DefaultEncoding.
	enc encoding.Encoding

	// separator ends a line on input and terminates written lines.
	// Empty means "\n", "\r\n" or "\r" on input and "\n" on output.
	separator string

	// fieldSeparator splits a line into fields.
	fieldSeparator rune

	// skipHeader drops the first line in ReadItems.
	skipHeader bool
}

// Option configures a text file operation.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{fieldSeparator: DefaultFieldSeparator}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// From skips lines before the 1-based line n.
func From(n int) Option {
	return func(o *options) { o.from = n }
}

// To stops reading after the 1-based line n.
func To(n int) Option {
	return func(o *options) { o.to = n }
}

// WithEncoding sets the text encoding.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) { o.enc = enc }
}

// WithSeparator sets the line separator used by the readers, the line
// batcher and the writers.
func WithSeparator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// WithFieldSeparator sets the field separator used by ReadItems.
func WithFieldSeparator(sep rune) Option {
	return func(o *options) { o.fieldSeparator = sep }
}

// SkipHeader makes ReadItems ignore the first line.
func SkipHeader() Option {
	return func(o *options) { o.skipHeader = true }
}
