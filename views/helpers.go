package views

import (
	"html"
	"net/url"
	"strings"
	"time"
)

// esc escapes user-authored text for HTML output.
func esc(s string) string {
	return html.EscapeString(s)
}

// PathEscape wraps url.PathEscape for use in view expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag-pill"
	if active {
		base += " tag-pill-active"
	}
	return base
}

// DisplayDate formats a YYYY-MM-DD date for human reading.
// Invalid dates are shown as authored.
func DisplayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// JoinTags formats a tag slice as a comma-separated string.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
