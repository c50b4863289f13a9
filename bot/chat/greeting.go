package chat

import "strings"

// PhraseSource provides the locale's greeting surface forms.
type PhraseSource interface {
	Greetings() []string
}

// GreetingClassifier decides whether free text is a greeting. Pure function
// of the catalog phrase set and the input.
type GreetingClassifier struct {
	phrases PhraseSource
}

func NewGreetingClassifier(phrases PhraseSource) *GreetingClassifier {
	return &GreetingClassifier{phrases: phrases}
}

// IsGreeting reports whether the lowercased, trimmed input contains any
// greeting phrase as a substring.
func (c *GreetingClassifier) IsGreeting(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	for _, phrase := range c.phrases.Greetings() {
		if strings.Contains(text, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
