/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

// queue holds the units of a bulk call that still have to be submitted.
// Residuals go back to the head so they are retried before untried units.
type queue[T any] struct {
	units []T
}

func newQueue[T any](units []T) *queue[T] {
	return &queue[T]{units: append([]T(nil), units...)}
}

func (q *queue[T]) len() int {
	return len(q.units)
}

// take removes and returns the first min(len, limit) units.
func (q *queue[T]) take(limit int) []T {
	n := min(limit, len(q.units))
	chunk := make([]T, n)
	copy(chunk, q.units[:n])
	q.units = q.units[n:]
	return chunk
}

// prepend puts units in front of the queue, keeping their order.
func (q *queue[T]) prepend(units []T) {
	if len(units) == 0 {
		return
	}
	merged := make([]T, 0, len(units)+len(q.units))
	merged = append(merged, units...)
	q.units = append(merged, q.units...)
}
