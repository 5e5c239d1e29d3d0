package extract

import (
	"strings"
	"testing"
)

func TestFieldExtractorScenario(t *testing.T) {
	text := "Хакатон 13.11.2025\nАудитория 301\nПриходите все!"
	f := NewFieldExtractor(nil, "Главный корпус")

	if got := f.Title(text); got != "Хакатон 13.11.2025" {
		t.Errorf("Title() = %q", got)
	}
	if got := f.Location(text); !strings.Contains(got, "Аудитория 301") {
		t.Errorf("Location() = %q, want line containing %q", got, "Аудитория 301")
	}

	resolver := NewDateResolver(testFloor, fixedClock)
	if got := resolver.Resolve(text).Date; !got.Equal(day(2025, 11, 13)) {
		t.Errorf("Resolve() = %s", got.Format("2006-01-02"))
	}
}

func TestTitle(t *testing.T) {
	f := NewFieldExtractor(nil, "")

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "skips hashtags links and short lines",
			text: "#события\nКоротко\nhttps://vk.com/club1 регистрация по ссылке\nЛекция о квантовых вычислениях\nещё строка",
			want: "Лекция о квантовых вычислениях",
		},
		{
			name: "skips overlong lines",
			text: strings.Repeat("а", 200) + "\nДень открытых дверей",
			want: "День открытых дверей",
		},
		{
			name: "synthesizes from first eight words",
			text: "раз два\nтри\nчетыре\nпять шесть\nсемь\nвосемь\nдевять\nдесять",
			want: "раз два три четыре пять шесть семь восемь...",
		},
		{
			name: "synthesizes from short text",
			text: "#тег коротко",
			want: "#тег коротко...",
		},
		{
			name: "empty text",
			text: "  \n ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Title(tt.text); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		text     string
		want     string
	}{
		{name: "first matching line", text: "Лекция\n  Главный КОРПУС, ауд. 1405  \nЛаборатория 3", want: "  Главный КОРПУС, ауд. 1405  "},
		{name: "lab", text: "Экскурсия\nЛаборатория робототехники", want: "Лаборатория робототехники"},
		{name: "fallback", text: "Онлайн встреча", want: "Кампус"},
		{name: "custom keywords", keywords: []string{"Технопарк"}, text: "Встреча\nв технопарке на 2 этаже", want: "в технопарке на 2 этаже"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFieldExtractor(tt.keywords, "Кампус")
			if got := f.Location(tt.text); got != tt.want {
				t.Errorf("Location() = %q, want %q", got, tt.want)
			}
		})
	}
}
