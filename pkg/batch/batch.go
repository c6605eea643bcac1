// =============================================================================
// recordkit - Batch Processing
// =============================================================================
//
// Package batch drives a caller-supplied function over a sequence in
// fixed-size chunks.
//
// FEATURES:
//   - Single pass over any iter.Seq (no re-scanning of consumed input)
//   - Batches numbered from 1, final partial batch flushed
//   - Cooperative cancellation through Args.Cancel
//   - Callback errors returned immediately and unchanged
//
// USAGE:
//   err := batch.ProcessSlice(items, 100, func(b *batch.Args[Item]) error {
//       if err := save(b.Items); err != nil {
//           return err
//       }
//       b.Cancel = tooManyErrors()
//       return nil
//   })
//
// =============================================================================

package batch

import (
	"fmt"
	"iter"
	"slices"
)

// Args describes one batch handed to the callback.
type Args[T any] struct {
	// Number is the 1-based batch number.
	Number int

	// Items holds at most the configured batch size items. Only the final
	// batch of a sequence may be shorter.
	Items []T

	// Cancel stops processing after the current batch when set by the
	// callback. It is read once, after the callback returns.
	Cancel bool
}

// Func processes one batch.
type Func[T any] func(args *Args[T]) error

// Process partitions seq into consecutive batches of at most size items and
// calls fn once per non-empty batch, in order.
//
// Processing stops after a batch whose Cancel flag was set, after the first
// callback error (which is returned unchanged), or when seq is exhausted.
// Each batch receives its own Items slice.
//
// It panics when size is less than 1 or fn is nil.
func Process[T any](seq iter.Seq[T], size int, fn Func[T]) error {
	if size < 1 {
		panic(fmt.Sprintf("batch: size must be positive, got %d", size))
	}
	if fn == nil {
		panic("batch: callback is required")
	}

	number := 0
	items := make([]T, 0, size)
	var err error
	stopped := false

	dispatch := func() bool {
		number++
		args := &Args[T]{Number: number, Items: items}
		items = make([]T, 0, size)
		if err = fn(args); err != nil {
			return false
		}
		return !args.Cancel
	}

	for item := range seq {
		items = append(items, item)
		if len(items) < size {
			continue
		}
		if !dispatch() {
			stopped = true
			break
		}
	}

	if !stopped && len(items) > 0 {
		dispatch()
	}
	return err
}

// ProcessSlice is Process over the elements of items.
func ProcessSlice[T any](items []T, size int, fn Func[T]) error {
	return Process(slices.Values(items), size, fn)
}

// Count returns the number of batches Process produces for n items when no
// batch is cancelled.
func Count(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
