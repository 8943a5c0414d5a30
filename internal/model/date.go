package model

import "time"

// DateLayout is the wire format for start/end dates.
const DateLayout = "2006-01-02"

// StartOfDay maps t to midnight UTC of its local calendar day. All stored
// dates are normalized through this so date comparisons stay stable across
// the sqlite and mysql drivers.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
