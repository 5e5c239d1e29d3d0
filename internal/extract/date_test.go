package extract

import (
	"testing"
	"time"

	"eventbot/internal/domain"
	"eventbot/pkg/tz"
)

var (
	testNow   = time.Date(2025, time.October, 20, 12, 0, 0, 0, tz.Moscow)
	testFloor = time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return testNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	resolver := NewDateResolver(testFloor, fixedClock)

	tests := []struct {
		name         string
		text         string
		want         time.Time
		explicit     bool
		beforeFloor  bool
		rejectedSeen int
	}{
		{name: "full numeric", text: "Хакатон 13.11.2025\nАудитория 301", want: day(2025, 11, 13), explicit: true},
		{name: "short numeric future this year", text: "Встреча 20.12 в холле", want: day(2025, 12, 20), explicit: true},
		{name: "short numeric rolls to next year", text: "Встреча 05.03", want: day(2026, 3, 5), explicit: true},
		{name: "textual with year", text: "Ярмарка пройдет 25 ноября 2025 года", want: day(2025, 11, 25), explicit: true},
		{name: "textual without year rolls forward", text: "Лекция 3 марта", want: day(2026, 3, 3), explicit: true},
		{name: "may is not march", text: "Субботник 15 мая", want: day(2026, 5, 15), explicit: true},
		{name: "uppercase month", text: "10 ДЕКАБРЯ концерт", want: day(2025, 12, 10), explicit: true},
		{name: "no date defaults to floor", text: "Приходите все!", want: testFloor},
		{name: "explicit date below floor", text: "Хакатон 05.10.2025", want: testFloor, beforeFloor: true, rejectedSeen: 1},
		{name: "textual year below floor is not reread without year", text: "Итоги 5 октября 2025", want: testFloor, beforeFloor: true, rejectedSeen: 1},
		{name: "invalid calendar dates are skipped", text: "31.02.2026 или 14.11.2025", want: day(2025, 11, 14), explicit: true},
		{name: "times are not dates", text: "с 18.30 до 20.00", want: testFloor},
		{name: "full numeric has priority", text: "20 ноября, регистрация до 15.11.2025", want: day(2025, 11, 15), explicit: true},
		{name: "rejected then accepted", text: "Прошлый сезон 01.10.2025, новый 12.12.2025", want: day(2025, 12, 12), explicit: true, rejectedSeen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.text)
			if !got.Date.Equal(tt.want) {
				t.Errorf("Resolve(%q).Date = %s, want %s", tt.text, got.Date.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
			if got.Explicit != tt.explicit {
				t.Errorf("Resolve(%q).Explicit = %v, want %v", tt.text, got.Explicit, tt.explicit)
			}
			if got.BeforeFloor() != tt.beforeFloor {
				t.Errorf("Resolve(%q).BeforeFloor() = %v, want %v", tt.text, got.BeforeFloor(), tt.beforeFloor)
			}
			if len(got.Rejected) != tt.rejectedSeen {
				t.Errorf("Resolve(%q) rejected %d dates, want %d", tt.text, len(got.Rejected), tt.rejectedSeen)
			}
		})
	}
}

func TestResolveFullNumericAtOrAfterFloor(t *testing.T) {
	resolver := NewDateResolver(testFloor, fixedClock)
	for d := testFloor; d.Before(testFloor.AddDate(1, 0, 0)); d = d.AddDate(0, 0, 7) {
		text := "Событие " + d.Format("02.01.2006") + " в актовом зале"
		got := resolver.Resolve(text)
		if !got.Explicit || !got.Date.Equal(d) {
			t.Fatalf("Resolve(%q) = %s, want %s", text, got.Date.Format("2006-01-02"), d.Format("2006-01-02"))
		}
	}
}

func TestResolveShortNumericInPastRollsForward(t *testing.T) {
	// A floor in the past so that only year inference decides the result.
	resolver := NewDateResolver(day(2020, 1, 1), fixedClock)
	for _, d := range []time.Time{day(2025, 1, 15), day(2025, 6, 1), day(2025, 10, 19)} {
		text := "Встреча " + d.Format("02.01")
		got := resolver.Resolve(text)
		want := d.AddDate(1, 0, 0)
		if !got.Date.Equal(want) {
			t.Errorf("Resolve(%q) = %s, want %s", text, got.Date.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestResolveSameDayIsNotRolled(t *testing.T) {
	resolver := NewDateResolver(day(2020, 1, 1), fixedClock)
	got := resolver.Resolve("Сегодня 20.10")
	if want := day(2025, 10, 20); !got.Date.Equal(want) {
		t.Errorf("got %s, want %s", got.Date.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestResolveTime(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Начало в 18:30", "18:30"},
		{"Сбор в 9:05 у входа", "09:05"},
		{"Старт в 19ч30", "19:30"},
		{"Doors open 10 h 15", "10:15"},
		{"с 12:00 до 14:00", "12:00"},
		{"Без времени", "18:00"},
		{"Счёт 25:99", "18:00"},
	}
	for _, tt := range tests {
		if got := ResolveTime(tt.text); got != tt.want {
			t.Errorf("ResolveTime(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"9:5", "09:05", true},
		{"18.30", "18:30", true},
		{"7ч00", "07:00", true},
		{"24:00", "", false},
		{"noon", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeTime(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeTime(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMonthFromWord(t *testing.T) {
	tests := map[string]time.Month{
		"января":   time.January,
		"Февраль":  time.February,
		"марта":    time.March,
		"апреле":   time.April,
		"мая":      time.May,
		"май":      time.May,
		"июня":     time.June,
		"июле":     time.July,
		"августа":  time.August,
		"сентября": time.September,
		"октябрь":  time.October,
		"НОЯБРЯ":   time.November,
		"декабре":  time.December,
	}
	for word, want := range tests {
		got, ok := MonthFromWord(word)
		if !ok || got != want {
			t.Errorf("MonthFromWord(%q) = (%v, %v), want %v", word, got, ok, want)
		}
	}
	if _, ok := MonthFromWord("участников"); ok {
		t.Error("MonthFromWord matched a non-month word")
	}
}

func TestParseLocalized(t *testing.T) {
	tests := []struct {
		lang    domain.Language
		raw     string
		want    time.Time
		wantErr bool
	}{
		{domain.Russian, "13.11.2025", day(2025, 11, 13), false},
		{domain.Russian, "2025-11-13", day(2025, 11, 13), false},
		{domain.English, "2025-11-13", day(2025, 11, 13), false},
		{domain.English, "13.11.2025", day(2025, 11, 13), false},
		{domain.English, "November 13", time.Time{}, true},
		{domain.Russian, "", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := ParseLocalized(tt.lang, tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLocalized(%s, %q) error = %v, wantErr %v", tt.lang, tt.raw, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("ParseLocalized(%s, %q) = %s, want %s", tt.lang, tt.raw, got, tt.want)
		}
	}
}
