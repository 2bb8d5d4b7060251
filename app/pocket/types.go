package pocket

import (
	"strconv"
	"time"
)

// Item is one saved bookmark as returned by the Pocket v3 API in its
// "simple" detail representation.
type Item struct {
	ItemID        string `json:"item_id"`
	ResolvedID    string `json:"resolved_id"`
	GivenURL      string `json:"given_url"`
	ResolvedTitle string `json:"resolved_title"`
	TimeAdded     string `json:"time_added"`
}

// AddedAt parses the time_added field, a string of unix seconds. The second
// return value is false when the field is absent or malformed.
func (i Item) AddedAt() (time.Time, bool) {
	if i.TimeAdded == "" {
		return time.Time{}, false
	}

	seconds, err := strconv.ParseInt(i.TimeAdded, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(seconds, 0), true
}
