package batch_test

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/recordkit/pkg/batch"
)

func collect[T any](t *testing.T, items []T, size int, cancelAt int) ([]*batch.Args[T], error) {
	t.Helper()
	var got []*batch.Args[T]
	err := batch.ProcessSlice(items, size, func(b *batch.Args[T]) error {
		got = append(got, b)
		if b.Number == cancelAt {
			b.Cancel = true
		}
		return nil
	})
	return got, err
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func TestProcess(t *testing.T) {
	t.Run("seven items in batches of three", func(t *testing.T) {
		got, err := collect(t, seq(7), 3, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 1, got[0].Number)
		assert.Equal(t, []int{1, 2, 3}, got[0].Items)
		assert.Equal(t, 2, got[1].Number)
		assert.Equal(t, []int{4, 5, 6}, got[1].Items)
		assert.Equal(t, 3, got[2].Number)
		assert.Equal(t, []int{7}, got[2].Items)
	})

	t.Run("cancel on batch two stops before batch three", func(t *testing.T) {
		got, err := collect(t, seq(7), 3, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[1].Number)
	})

	t.Run("empty input produces no batches", func(t *testing.T) {
		got, err := collect(t, []int{}, 3, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("batch counts and concatenation", func(t *testing.T) {
		for n := 0; n <= 12; n++ {
			for size := 1; size <= 5; size++ {
				got, err := collect(t, seq(n), size, 0)
				require.NoError(t, err)
				assert.Len(t, got, batch.Count(n, size), "n=%d size=%d", n, size)

				var all []int
				for i, b := range got {
					assert.Equal(t, i+1, b.Number)
					if i < len(got)-1 {
						assert.Len(t, b.Items, size)
					} else {
						assert.LessOrEqual(t, len(b.Items), size)
						assert.NotEmpty(t, b.Items)
					}
					all = append(all, b.Items...)
				}
				if n == 0 {
					assert.Empty(t, all)
				} else {
					assert.Equal(t, seq(n), all)
				}
			}
		}
	})

	t.Run("cancellation never produces a later batch", func(t *testing.T) {
		for n := 1; n <= 10; n++ {
			for size := 1; size <= 4; size++ {
				for k := 1; k <= batch.Count(n, size); k++ {
					got, err := collect(t, seq(n), size, k)
					require.NoError(t, err)
					assert.Len(t, got, k)
				}
			}
		}
	})

	t.Run("callback error is returned unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := batch.ProcessSlice(seq(10), 2, func(b *batch.Args[int]) error {
			calls++
			if b.Number == 2 {
				return boom
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, calls)
	})

	t.Run("callback panic propagates", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = batch.ProcessSlice(seq(3), 1, func(*batch.Args[int]) error { panic("stop") })
		})
	})

	t.Run("single pass over a forward-only sequence", func(t *testing.T) {
		pulled := 0
		var source iter.Seq[int] = func(yield func(int) bool) {
			for i := 1; i <= 9; i++ {
				pulled++
				if !yield(i) {
					return
				}
			}
		}

		var sizes []int
		err := batch.Process(source, 4, func(b *batch.Args[int]) error {
			sizes = append(sizes, len(b.Items))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{4, 4, 1}, sizes)
		assert.Equal(t, 9, pulled)
	})

	t.Run("cancel stops pulling from the source", func(t *testing.T) {
		pulled := 0
		var source iter.Seq[int] = func(yield func(int) bool) {
			for i := 1; i <= 100; i++ {
				pulled++
				if !yield(i) {
					return
				}
			}
		}
		err := batch.Process(source, 5, func(b *batch.Args[int]) error {
			b.Cancel = true
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 5, pulled)
	})

	t.Run("batches do not share backing arrays", func(t *testing.T) {
		got, err := collect(t, seq(4), 2, 0)
		require.NoError(t, err)
		got[0].Items[0] = 99
		assert.Equal(t, []int{3, 4}, got[1].Items)
	})

	t.Run("preconditions", func(t *testing.T) {
		assert.Panics(t, func() { _ = batch.ProcessSlice(seq(1), 0, func(*batch.Args[int]) error { return nil }) })
		assert.Panics(t, func() { _ = batch.ProcessSlice[int](seq(1), 1, nil) })
	})
}
