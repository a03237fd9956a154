package format

import (
	"fmt"
	"html"
	"strings"
)

// EscapeHTML escapes text for safe interpolation into Telegram HTML messages.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// Bold wraps escaped text in bold tags.
func Bold(text string) string {
	return "<b>" + EscapeHTML(text) + "</b>"
}

// Italic wraps escaped text in italic tags.
func Italic(text string) string {
	return "<i>" + EscapeHTML(text) + "</i>"
}

// Price renders an integer amount of currency units for display.
func Price(amount int64) string {
	return fmt.Sprintf("%d rub.", amount)
}

// Lines joins parts with newlines. Empty parts become blank lines, which is
// how multi-paragraph Telegram messages are laid out.
func Lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
