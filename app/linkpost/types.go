package linkpost

import (
	"time"
)

// Post is one enriched bookmark, ready to be materialized. It exists only
// for the duration of a single sync step and is never persisted as its own
// record.
type Post struct {
	ID        string
	Title     string
	URL       string
	Timestamp time.Time
	Excerpt   string
	Body      string
	Keywords  []string

	// IsDraft is true iff the bookmark had no title at intake. The flag
	// never changes after creation.
	IsDraft bool
}

// Result tags the outcome of a materialization attempt. "Already exists" is
// an expected skip condition, not an error.
type Result int

const (
	ResultWritten Result = iota
	ResultSkipped
)

func (r Result) String() string {
	switch r {
	case ResultWritten:
		return "written"
	case ResultSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
