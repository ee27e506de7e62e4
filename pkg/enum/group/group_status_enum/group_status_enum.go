package group_status_enum

// Group lifecycle status.
const (
	ACTIVE    = 0 // accepting contributions and distributions
	PAUSED    = 1 // temporarily frozen by the creator
	COMPLETED = 2 // terminal; set on deletion
)
