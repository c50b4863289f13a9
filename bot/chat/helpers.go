package chat

import (
	"strconv"
	"strings"
)

// MatchNumberToOption converts a typed number ("1", "2", ...) to the id of
// the corresponding menu button. Returns empty string if no match.
func MatchNumberToOption(text string, buttons []Button) string {
	text = strings.TrimSpace(text)
	num, err := strconv.Atoi(text)
	if err != nil || num < 1 || num > len(buttons) {
		return ""
	}
	return buttons[num-1].ID
}

// MatchTitleToOption converts typed text matching a button title (case
// insensitive) to that button's id. Returns empty string if no match.
func MatchTitleToOption(text string, buttons []Button) string {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, btn := range buttons {
		if strings.ToLower(btn.Title) == text {
			return btn.ID
		}
	}
	return ""
}
