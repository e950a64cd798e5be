// Package history implements the per-signal change-history index: a
// fixed-block run-length-encoded log of (timestamp_index, value_index)
// pairs supporting amortized O(1) appends and O(log blocks) timestamp
// lookups.
package history

// Index is a single decoded (timestamp_index, value_index) pair.
type Index struct {
	TimestampIndex uint64
	ValueIndex     uint64
}
