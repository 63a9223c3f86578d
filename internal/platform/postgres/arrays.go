package postgres

import "github.com/lib/pq"

// Int64Array converts typed ids to a BIGINT[] parameter.
func Int64Array[T ~int64](values []T) pq.Int64Array {
	out := make(pq.Int64Array, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}

// FromInt64Array converts a scanned BIGINT[] back to typed ids.
func FromInt64Array[T ~int64](values pq.Int64Array) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(v)
	}
	return out
}
