package textfile

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is given: UTF-8 without a
// byte-order mark on output.
var DefaultEncoding encoding.Encoding = unicode.UTF8

// Encoding looks up a text encoding by IANA name or alias, e.g. "UTF-8",
// "ISO-8859-1", "windows-1252", "UTF-16LE". An empty name yields
// DefaultEncoding.
func Encoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultEncoding, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// decodingReader wraps r so it yields UTF-8. A leading byte-order mark
// overrides enc.
func decodingReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		enc = DefaultEncoding
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}

// decodeBytes converts content to a UTF-8 string.
func decodeBytes(content []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		enc = DefaultEncoding
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), content)
	if err != nil {
		return "", fmt.Errorf("failed to decode content: %w", err)
	}
	return string(out), nil
}

// encodingWriter wraps w so UTF-8 written to it is stored in enc. The
// returned close function flushes the encoder; it does not close w.
func encodingWriter(w io.Writer, enc encoding.Encoding) (io.Writer, func() error) {
	if enc == nil {
		return w, func() error { return nil }
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close
}
