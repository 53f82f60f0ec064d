// Package uiutil holds small text helpers shared by templates and the CLI.
package uiutil

import (
	"strconv"
	"strings"
	"time"
)

// PostedDateLayout is used for listings older than a week.
const PostedDateLayout = "Jan 2, 2006"

// PostedLabel describes when a listing was posted relative to now. Zero
// times render as "" and future times as "Just posted".
func PostedLabel(posted, now time.Time) string {
	if posted.IsZero() {
		return ""
	}
	age := now.Sub(posted)
	switch {
	case age < time.Hour:
		return "Just posted"
	case age < 24*time.Hour:
		return "Posted today"
	case age < 7*24*time.Hour:
		return "Posted " + plural(int(age.Hours()/24), "day") + " ago"
	default:
		return "Posted " + posted.Local().Format(PostedDateLayout)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// Excerpt shortens text to limit runes, cutting at the last space when one
// falls in the second half, and appends an ellipsis.
func Excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
