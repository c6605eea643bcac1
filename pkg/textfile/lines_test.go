package textfile_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/ginjaninja78/recordkit/pkg/batch"
	"github.com/ginjaninja78/recordkit/pkg/textfile"
)

func tenLines() []byte {
	var b strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return []byte(b.String())
}

func TestProcessLines(t *testing.T) {
	t.Run("bounded range in batches of two", func(t *testing.T) {
		var sizes []int
		var seen []string
		err := textfile.ProcessLines(tenLines(), 2, func(b *batch.Args[string]) error {
			sizes = append(sizes, len(b.Items))
			seen = append(seen, b.Items...)
			return nil
		}, textfile.From(3), textfile.To(7))

		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 1}, sizes)
		assert.Equal(t, []string{"line 3", "line 4", "line 5", "line 6", "line 7"}, seen)
	})

	t.Run("batches are numbered from one", func(t *testing.T) {
		var numbers []int
		err := textfile.ProcessLines(tenLines(), 4, func(b *batch.Args[string]) error {
			numbers = append(numbers, b.Number)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, numbers)
	})

	t.Run("cancel stops processing", func(t *testing.T) {
		calls := 0
		err := textfile.ProcessLines(tenLines(), 3, func(b *batch.Args[string]) error {
			calls++
			b.Cancel = b.Number == 2
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("callback error is returned unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		err := textfile.ProcessLines(tenLines(), 3, func(*batch.Args[string]) error {
			return boom
		})
		assert.Same(t, boom, err)
	})

	t.Run("custom separator", func(t *testing.T) {
		var seen []string
		err := textfile.ProcessLines([]byte("a;b;c"), 10, func(b *batch.Args[string]) error {
			seen = append(seen, b.Items...)
			return nil
		}, textfile.WithSeparator(";"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, seen)
	})

	t.Run("empty content", func(t *testing.T) {
		calls := 0
		err := textfile.ProcessLines(nil, 3, func(*batch.Args[string]) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Zero(t, calls)
	})
}

func TestLines(t *testing.T) {
	t.Run("line numbers count from the start", func(t *testing.T) {
		var numbers []int
		for n, line := range textfile.Lines(tenLines(), textfile.From(9)) {
			numbers = append(numbers, n)
			assert.Equal(t, fmt.Sprintf("line %d", n), line)
		}
		assert.Equal(t, []int{9, 10}, numbers)
	})

	t.Run("early break", func(t *testing.T) {
		count := 0
		for range textfile.Lines(tenLines()) {
			count++
			if count == 3 {
				break
			}
		}
		assert.Equal(t, 3, count)
	})

	t.Run("lone carriage returns", func(t *testing.T) {
		var got []string
		for _, line := range textfile.Lines([]byte("a\rb\r\nc\r\rd\r")) {
			got = append(got, line)
		}
		assert.Equal(t, []string{"a", "b", "c", "", "d"}, got)
	})

	t.Run("multi-character separator keeps line breaks", func(t *testing.T) {
		var numbers []int
		var got []string
		for n, line := range textfile.Lines([]byte("a\nb||c||d"), textfile.WithSeparator("||"), textfile.From(2)) {
			numbers = append(numbers, n)
			got = append(got, line)
		}
		assert.Equal(t, []int{2, 3}, numbers)
		assert.Equal(t, []string{"c", "d"}, got)
	})

	t.Run("crlf and missing final newline", func(t *testing.T) {
		var got []string
		for _, line := range textfile.Lines([]byte("a\r\nb\r\nc")) {
			got = append(got, line)
		}
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})
}

func TestLineReader(t *testing.T) {
	t.Run("decodes latin-1", func(t *testing.T) {
		lr := textfile.NewLineReader(strings.NewReader("caf\xe9\n"), textfile.WithEncoding(charmap.ISO8859_1))
		require.True(t, lr.Next())
		assert.Equal(t, "café", lr.Line())
		assert.Equal(t, 1, lr.LineNumber())
		assert.False(t, lr.Next())
		assert.NoError(t, lr.Err())
	})

	t.Run("strips utf-8 byte-order mark", func(t *testing.T) {
		lr := textfile.NewLineReader(strings.NewReader("\xef\xbb\xbfid,name\n"))
		require.True(t, lr.Next())
		assert.Equal(t, "id,name", lr.Line())
	})

	t.Run("carriage return split across reads", func(t *testing.T) {
		r := iotest.OneByteReader(strings.NewReader("x\r\ny\rz"))
		var got []string
		for line := range textfile.NewLineReader(r).All() {
			got = append(got, line)
		}
		assert.Equal(t, []string{"x", "y", "z"}, got)
	})

	t.Run("to stops reading", func(t *testing.T) {
		lr := textfile.NewLineReader(strings.NewReader(string(tenLines())), textfile.To(2))
		var got []string
		for line := range lr.All() {
			got = append(got, line)
		}
		assert.Equal(t, []string{"line 1", "line 2"}, got)
	})
}

func TestReadLines(t *testing.T) {
	t.Run("default separators", func(t *testing.T) {
		got, err := textfile.ReadLines([]byte("a\r\nb\n\nc\rd"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	})

	t.Run("custom separator", func(t *testing.T) {
		got, err := textfile.ReadLines([]byte("a|b||c"), textfile.WithSeparator("|"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})
}

func TestEncoding(t *testing.T) {
	enc, err := textfile.Encoding("")
	require.NoError(t, err)
	assert.Equal(t, textfile.DefaultEncoding, enc)

	enc, err = textfile.Encoding("ISO-8859-1")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = textfile.Encoding("no-such-charset")
	assert.Error(t, err)
}
