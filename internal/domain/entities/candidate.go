package entities

// Candidate is an unvalidated title/date/time/location tuple proposed by the
// AI analyzer. A nil field means the key was absent from the response.
type Candidate struct {
	Title    *string `json:"title"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Location *string `json:"location"`
}

// Complete reports whether every key was present.
func (c Candidate) Complete() bool {
	return c.Title != nil && c.Date != nil && c.Time != nil && c.Location != nil
}
