package output

// T looks up localized strings: bot replies, command descriptions and the
// placeholder title and tags stamped on extracted events.
type T interface {
	// T renders key in locale ("ru", "en"). data fills template fields and
	// may be nil. Unknown keys render as the key itself.
	T(locale, key string, data map[string]any) string
}
