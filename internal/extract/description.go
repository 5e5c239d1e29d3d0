package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxSummarySentences = 3
	minSentenceRunes    = 20
	minStrippedRunes    = 10
	maxDescriptionRunes = 400
	minCutRunes         = 350
	maxRawRunes         = 300

	leadingPunct = " \t\r\n.,:;!?-–—"
)

var (
	promoMarkers          = []string{"подпис", "репост", "поделит", "subscribe", "repost", "share"}
	sentenceStartMarkers  = []string{"http", "www.", "@", "[id", "[club", "[public"}
	sentenceTerminatorSet = ".!?"
)

// CleanDescription turns a raw post into a short summary that does not
// repeat the title. A trailing ellipsis marks an unfinished last sentence,
// so cleaning an already cut summary returns it unchanged.
func CleanDescription(text, title string) string {
	desc := stripTitle(strings.TrimSpace(text), title)
	desc, unfinished := strings.CutSuffix(desc, ellipsis)

	pieces := strings.FieldsFunc(desc, isTerminator)
	var kept []string
	open := false
	for i, s := range pieces {
		s = strings.TrimSpace(s)
		last := unfinished && i == len(pieces)-1
		if !summarySentence(s, last && len(kept) > 0) {
			continue
		}
		kept = append(kept, s)
		open = last
		if len(kept) == maxSummarySentences {
			break
		}
	}

	if len(kept) == 0 {
		return truncate(strings.TrimSpace(text), maxRawRunes)
	}
	body := strings.Join(kept, ". ")
	if !open {
		return bound(body + ".")
	}
	if utf8.RuneCountInString(body) <= maxDescriptionRunes {
		return body + ellipsis
	}
	return bound(body)
}

// summarySentence reports whether s belongs in a summary. A cut fragment
// following kept sentences skips the length rule.
func summarySentence(s string, fragment bool) bool {
	if s == "" || !fragment && utf8.RuneCountInString(s) <= minSentenceRunes {
		return false
	}
	low := strings.ToLower(s)
	return !hasAnyPrefix(low, sentenceStartMarkers) && !containsAny(low, promoMarkers)
}

func stripTitle(desc, title string) string {
	title = strings.TrimSpace(title)
	if title == "" || !strings.HasPrefix(strings.ToLower(desc), strings.ToLower(title)) {
		return desc
	}
	runes := []rune(desc)
	n := utf8.RuneCountInString(title)
	if n > len(runes) {
		return desc
	}
	stripped := strings.TrimLeft(string(runes[n:]), leadingPunct)
	if utf8.RuneCountInString(stripped) > minStrippedRunes {
		return stripped
	}
	return desc
}

// bound cuts s to maxDescriptionRunes, preferring a word boundary no earlier
// than minCutRunes.
func bound(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionRunes {
		return s
	}
	cut := runes[:maxDescriptionRunes]
	for i := len(cut) - 1; i >= minCutRunes; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRight(string(cut), leadingPunct) + ellipsis
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}

func isTerminator(r rune) bool {
	return strings.ContainsRune(sentenceTerminatorSet, r)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
