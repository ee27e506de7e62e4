package cycle_type_enum

// Cycle cadence values as stored on the group row.
const (
	WEEKLY   = "weekly"
	BIWEEKLY = "bi-weekly"
	MONTHLY  = "monthly"
)

// RolloverDays is the exact schedule advance applied on cycle rollover.
var RolloverDays = map[string]int{
	WEEKLY:   7,
	BIWEEKLY: 14,
	MONTHLY:  30,
}

// Valid reports whether s is a known cadence.
func Valid(s string) bool {
	_, ok := RolloverDays[s]
	return ok
}
