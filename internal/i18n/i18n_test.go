package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolation(t *testing.T) {
	c := New("en")

	got := c.T("welcome.greeting", map[string]string{
		"name":         "Ana",
		"businessName": "MedPet",
	})
	assert.Equal(t, "Hello Ana! Welcome to MedPet.", got)
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	c := New("fr")

	assert.Equal(t, "en", c.Locale())
	assert.Equal(t, "How can I help you today?", c.T("welcome.help", nil))
}

func TestMissingKeyReturnsKey(t *testing.T) {
	c := New("en")

	assert.Equal(t, "no.such.key", c.T("no.such.key", nil))
}

func TestSpanishCatalog(t *testing.T) {
	c := New("es")

	assert.Equal(t, "¿En qué puedo ayudarte?", c.T("welcome.help", nil))
	got := c.T("errors.inputTooLong", map[string]string{"max": "100"})
	assert.Contains(t, got, "100")
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range locales["en"] {
		_, ok := locales["es"][key]
		assert.True(t, ok, "es catalog missing %q", key)
	}
	for key := range locales["es"] {
		_, ok := locales["en"][key]
		assert.True(t, ok, "en catalog missing %q", key)
	}
}

func TestGreetingsPerLocale(t *testing.T) {
	assert.Contains(t, New("en").Greetings(), "hello")
	assert.Contains(t, New("es").Greetings(), "hola")
}
