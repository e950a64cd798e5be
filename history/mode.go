package history

// SearchMode selects how SearchTimestampIndex resolves a query timestamp
// that does not land exactly on a recorded change.
type SearchMode uint8

const (
	// Before returns the change at or immediately before the query.
	Before SearchMode = iota
	// After returns the change immediately after the query.
	After
	// Closest returns whichever of Before/After is nearer, ties favoring Before.
	Closest
	// Exact returns the change only if its timestamp equals the query exactly.
	Exact
)
