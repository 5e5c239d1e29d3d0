// Package extract recovers event fields from free-form Russian post text.
//
// Every heuristic here is first-match-wins: matchers are tried in priority
// order and the first acceptable result is returned. Extending the matching
// tables does not require touching the pipeline that calls them.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/pkg/tz"
)

// Clock returns the current instant in the zone dates are interpreted in.
type Clock func() time.Time

// SystemClock reads the wall clock in Moscow time.
func SystemClock() time.Time { return time.Now().In(tz.Moscow) }

// Resolution is the outcome of scanning a text for an event date.
type Resolution struct {
	// Date is the accepted date, or the floor when nothing was accepted.
	Date time.Time
	// Explicit is true when Date was found in the text.
	Explicit bool
	// Rejected holds dates found in the text that fell below the floor.
	Rejected []time.Time
}

// BeforeFloor reports whether the text named a date but every named date was
// below the floor. Such posts are rejected rather than defaulted.
func (r Resolution) BeforeFloor() bool {
	return !r.Explicit && len(r.Rejected) > 0
}

// dateMatcher returns every candidate date of one pattern, in text order.
type dateMatcher func(text string, now time.Time) []time.Time

// DateResolver extracts and validates event dates against a floor date.
type DateResolver struct {
	floor    time.Time
	now      Clock
	matchers []dateMatcher
}

// NewDateResolver builds a resolver that never accepts dates before floor.
func NewDateResolver(floor time.Time, now Clock) *DateResolver {
	if now == nil {
		now = SystemClock
	}
	return &DateResolver{
		floor: entities.DateOnly(floor),
		now:   now,
		matchers: []dateMatcher{
			matchFullNumeric,
			matchShortNumeric,
			matchTextualWithYear,
			matchTextual,
		},
	}
}

// Floor returns the minimum acceptable event date.
func (r *DateResolver) Floor() time.Time { return r.floor }

// Resolve returns the first date, in matcher priority order, that is on or
// after the floor.
func (r *DateResolver) Resolve(text string) Resolution {
	now := r.now()
	var rejected []time.Time
	for _, match := range r.matchers {
		for _, d := range match(text, now) {
			if d.Before(r.floor) {
				rejected = append(rejected, d)
				continue
			}
			return Resolution{Date: d, Explicit: true, Rejected: rejected}
		}
	}
	return Resolution{Date: r.floor, Rejected: rejected}
}

// BelowFloor reports whether d is earlier than the floor.
func (r *DateResolver) BelowFloor(d time.Time) bool {
	return entities.DateOnly(d).Before(r.floor)
}

var (
	fullNumericDate  = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`)
	shortNumericDate = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\b`)
	textualYearDate  = regexp.MustCompile(`\b(\d{1,2})\s+(\p{L}+)\s+(\d{4})\b`)
	textualDate      = regexp.MustCompile(`\b(\d{1,2})\s+(\p{L}+)`)

	dotDigitSuffix = regexp.MustCompile(`^\.\d`)
	yearSuffix     = regexp.MustCompile(`^\s+\d{4}\b`)
)

func matchFullNumeric(text string, _ time.Time) []time.Time {
	var out []time.Time
	for _, m := range fullNumericDate.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, time.Month(month), day); ok {
			out = append(out, d)
		}
	}
	return out
}

func matchShortNumeric(text string, now time.Time) []time.Time {
	var out []time.Time
	for _, loc := range shortNumericDate.FindAllStringSubmatchIndex(text, -1) {
		if dotDigitSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		day, _ := strconv.Atoi(text[loc[2]:loc[3]])
		month, _ := strconv.Atoi(text[loc[4]:loc[5]])
		if d, ok := inferYear(day, time.Month(month), now); ok {
			out = append(out, d)
		}
	}
	return out
}

func matchTextualWithYear(text string, _ time.Time) []time.Time {
	var out []time.Time
	for _, m := range textualYearDate.FindAllStringSubmatch(text, -1) {
		month, ok := MonthFromWord(m[2])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, month, day); ok {
			out = append(out, d)
		}
	}
	return out
}

func matchTextual(text string, now time.Time) []time.Time {
	var out []time.Time
	for _, loc := range textualDate.FindAllStringSubmatchIndex(text, -1) {
		if yearSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		month, ok := MonthFromWord(text[loc[4]:loc[5]])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(text[loc[2]:loc[3]])
		if d, ok := inferYear(day, month, now); ok {
			out = append(out, d)
		}
	}
	return out
}

// monthForms maps inflection stems to months. May is spelled out because its
// stem is a prefix of March.
var monthForms = []struct {
	month time.Month
	forms []string
}{
	{time.January, []string{"январ"}},
	{time.February, []string{"феврал"}},
	{time.March, []string{"март"}},
	{time.April, []string{"апрел"}},
	{time.May, []string{"мая", "май", "мае"}},
	{time.June, []string{"июн"}},
	{time.July, []string{"июл"}},
	{time.August, []string{"август"}},
	{time.September, []string{"сентябр"}},
	{time.October, []string{"октябр"}},
	{time.November, []string{"ноябр"}},
	{time.December, []string{"декабр"}},
}

// MonthFromWord matches a Russian month name in any common inflection.
func MonthFromWord(word string) (time.Month, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, mf := range monthForms {
		for _, form := range mf.forms {
			if strings.HasPrefix(w, form) {
				return mf.month, true
			}
		}
	}
	return 0, false
}

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// inferYear places a year-less date at its nearest occurrence on or after
// today.
func inferYear(day int, month time.Month, now time.Time) (time.Time, bool) {
	year := now.Year()
	if month < now.Month() || (month == now.Month() && day < now.Day()) {
		year++
	}
	return makeDate(year, month, day)
}

var (
	clockTime   = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	hourSepTime = regexp.MustCompile(`\b([01]?\d|2[0-3])\s*[чЧhH]\.?\s*([0-5]\d)\b`)
)

// ResolveTime returns the first HH:MM time in text, or DefaultEventTime.
func ResolveTime(text string) string {
	for _, re := range []*regexp.Regexp{clockTime, hourSepTime} {
		if m := re.FindStringSubmatch(text); m != nil {
			if t, ok := NormalizeTime(m[1] + ":" + m[2]); ok {
				return t
			}
		}
	}
	return entities.DefaultEventTime
}

// NormalizeTime zero-pads an H:MM value and validates its range.
func NormalizeTime(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, sep := range []string{"ч", "h", "."} {
		raw = strings.ReplaceAll(raw, sep, ":")
	}
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok {
		return "", false
	}
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || h < 0 || h > 23 {
		return "", false
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || m < 0 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// dateLayouts lists the accepted AI date layouts per language, preferred first.
var dateLayouts = map[domain.Language][]string{
	domain.Russian: {"02.01.2006", "2.1.2006", entities.DateLayout},
	domain.English: {entities.DateLayout, "02.01.2006", "2.1.2006"},
}

// ParseLocalized parses a date written in the convention of lang.
func ParseLocalized(lang domain.Language, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts, ok := dateLayouts[lang]
	if !ok {
		layouts = dateLayouts[domain.Russian]
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return entities.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse %s date %q: unrecognized format", lang, raw)
}
