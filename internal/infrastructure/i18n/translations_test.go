package i18n

import (
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func newTestTranslator() *Translator {
	return NewTranslator("ru", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTranslatorT(t *testing.T) {
	tr := newTestTranslator()
	data := map[string]any{"Institution": "ITMO"}

	tests := []struct {
		locale, key string
		data        map[string]any
		want        string
	}{
		{"ru", "event.placeholder_title", data, "Мероприятие ITMO"},
		{"en", "event.placeholder_title", data, "ITMO Event"},
		{"en", "event.tags", nil, "#event"},
		{"ru", "month.11", nil, "ноября"},
		{"de", "event.tags", nil, "#мероприятие"},
		{"", "month.5", nil, "мая"},
		{"en", "no.such.key", nil, "no.such.key"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.locale, tt.key, tt.data); got != tt.want {
			t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}
}

func TestLocaleFilesDefineSameKeys(t *testing.T) {
	keys := make(map[string][]string)
	for _, file := range localeFiles {
		raw, err := localeFS.ReadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		var messages map[string]string
		if err := toml.Unmarshal(raw, &messages); err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		for k := range messages {
			keys[file] = append(keys[file], k)
		}
		sort.Strings(keys[file])
	}

	ru, en := keys["active.ru.toml"], keys["active.en.toml"]
	if len(ru) != len(en) {
		t.Fatalf("ru has %d keys, en has %d", len(ru), len(en))
	}
	for i := range ru {
		if ru[i] != en[i] {
			t.Errorf("key mismatch: ru %q vs en %q", ru[i], en[i])
		}
	}
}
