// Package i18n holds the key→template catalog for every user-facing text.
// Templates use {{param}} placeholders. Lookups fall back to English and
// finally to the key itself, so a missing translation never breaks a reply.
package i18n

import (
	"strings"
)

type Catalog struct {
	locale   string
	messages map[string]string
}

func New(locale string) *Catalog {
	if _, ok := locales[locale]; !ok {
		locale = "en"
	}
	return &Catalog{
		locale:   locale,
		messages: locales[locale],
	}
}

func (c *Catalog) Locale() string {
	return c.locale
}

// T resolves a catalog key and interpolates params into its template.
func (c *Catalog) T(key string, params map[string]string) string {
	tmpl, ok := c.messages[key]
	if !ok {
		tmpl, ok = locales["en"][key]
	}
	if !ok {
		return key
	}

	for name, value := range params {
		tmpl = strings.ReplaceAll(tmpl, "{{"+name+"}}", value)
	}
	return tmpl
}

// Greetings returns the locale's greeting phrase set for the classifier.
func (c *Catalog) Greetings() []string {
	if g, ok := greetings[c.locale]; ok {
		return g
	}
	return greetings["en"]
}
