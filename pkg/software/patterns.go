// Package software defines software selection types exposed by the
// management service, currently the status of installable patterns.
package software

// PatternStatus describes how a software pattern came to be selected,
// or that it is merely available.
type PatternStatus string

// Pattern statuses reported by the management service.
const (
	// PatternAvailable means the pattern can be selected but is not.
	PatternAvailable PatternStatus = "available"

	// PatternSelected means the user selected the pattern explicitly.
	PatternSelected PatternStatus = "selected"

	// PatternAutoSelected means the resolver pulled the pattern in.
	PatternAutoSelected PatternStatus = "auto-selected"
)

// Valid reports whether s is one of the known statuses.
func (s PatternStatus) Valid() bool {
	switch s {
	case PatternAvailable, PatternSelected, PatternAutoSelected:
		return true
	}
	return false
}
