package entities

import "time"

// ScanReport summarizes one parse run over every configured group.
type ScanReport struct {
	RunID        string
	Groups       int
	FailedGroups int
	Posts        int
	Extracted    int
	Saved        int
	StartedAt    time.Time
	FinishedAt   time.Time
}
