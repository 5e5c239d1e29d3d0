package domain

import "errors"

// Domain errors.
var (
	ErrPreferenceNotFound  = errors.New("language preference not found")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoUsableCandidate   = errors.New("no usable event candidate")
	ErrEventBeforeFloor    = errors.New("event date is before the minimum event date")
	ErrNotAdmin            = errors.New("only an administrator can perform this action")
	ErrParseInProgress     = errors.New("a parse run is already in progress")
)

var codes = map[error]string{
	ErrPreferenceNotFound:  "preference_not_found",
	ErrUnsupportedLanguage: "unsupported_language",
	ErrNoUsableCandidate:   "no_usable_candidate",
	ErrEventBeforeFloor:    "event_before_floor",
	ErrNotAdmin:            "not_admin",
	ErrParseInProgress:     "parse_in_progress",
}

// Code returns the stable code of the domain error wrapped in err, or "".
func Code(err error) string {
	for target, code := range codes {
		if errors.Is(err, target) {
			return code
		}
	}
	return ""
}
