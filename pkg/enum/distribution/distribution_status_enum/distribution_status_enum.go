package distribution_status_enum

// Distribution settlement status. A completed row is never rewritten.
const (
	PENDING   = 0
	COMPLETED = 1
	FAILED    = 2
)
