package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateButtons(t *testing.T) {
	one := []Button{{ID: "a", Title: "A"}}
	three := []Button{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}

	assert.NoError(t, ValidateButtons(one))
	assert.NoError(t, ValidateButtons(three))

	assert.Error(t, ValidateButtons(nil))
	assert.Error(t, ValidateButtons(append(three, Button{ID: "d", Title: "D"})))
	assert.Error(t, ValidateButtons([]Button{{ID: "a", Title: strings.Repeat("x", 21)}}))
	assert.NoError(t, ValidateButtons([]Button{{ID: "a", Title: strings.Repeat("x", 20)}}))
}
