package discord

import (
	"fmt"
	"strconv"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/ports/output"
)

// FormatEventDateTime renders a stored date and "HH:MM" time for lang,
// e.g. "13 ноября 2025, 18:00" or "November 13, 2025, 18:00".
func FormatEventDateTime(t output.T, lang domain.Language, date time.Time, clock string) string {
	if date.IsZero() {
		return clock
	}
	month := t.T(lang.String(), "month."+strconv.Itoa(int(date.Month())), nil)

	var day string
	if lang == domain.English {
		day = fmt.Sprintf("%s %d, %d", month, date.Day(), date.Year())
	} else {
		day = fmt.Sprintf("%d %s %d", date.Day(), month, date.Year())
	}
	if clock == "" {
		return day
	}
	return day + ", " + clock
}
