package extract

import (
	"strings"
	"unicode/utf8"
)

const (
	titleMinRunes   = 10
	titleMaxRunes   = 200
	titleTokenCount = 8
	ellipsis        = "..."
)

// DefaultLocationKeywords are stems of Russian nouns naming a place on campus.
var DefaultLocationKeywords = []string{
	"корпус",
	"аудитор",
	"ауд.",
	"кабинет",
	"лаборатор",
	"зал",
	"холл",
	"здание",
	"коворкинг",
}

// linkMarkers disqualify a line from being a title.
var linkMarkers = []string{"http://", "https://", "www.", "vk.com", "vk.cc", "t.me/", ".ru/", ".com/"}

// FieldExtractor recovers the title and location of an event from post text.
type FieldExtractor struct {
	keywords         []string
	fallbackLocation string
}

// NewFieldExtractor builds an extractor. An empty keyword list selects
// DefaultLocationKeywords.
func NewFieldExtractor(keywords []string, fallbackLocation string) *FieldExtractor {
	if len(keywords) == 0 {
		keywords = DefaultLocationKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return &FieldExtractor{keywords: lowered, fallbackLocation: fallbackLocation}
}

// FallbackLocation is returned when no line names a place.
func (f *FieldExtractor) FallbackLocation() string { return f.fallbackLocation }

// Title returns the first line that looks like a headline, or a synthesized
// title made of the first words of the text.
func (f *FieldExtractor) Title(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		n := utf8.RuneCountInString(line)
		if n <= titleMinRunes || n >= titleMaxRunes {
			continue
		}
		if strings.HasPrefix(line, "#") || containsAny(strings.ToLower(line), linkMarkers) {
			continue
		}
		return line
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if len(words) > titleTokenCount {
		words = words[:titleTokenCount]
	}
	return strings.Join(words, " ") + ellipsis
}

// Location returns the first line mentioning a campus place, verbatim.
func (f *FieldExtractor) Location(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if containsAny(strings.ToLower(line), f.keywords) {
			return line
		}
	}
	return f.fallbackLocation
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
