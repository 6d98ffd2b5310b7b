package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SaaS", "SaaS"},
		{"  SaaS  ", "SaaS"},
		{"Dark\t\tMode", "Dark Mode"},
		{"Dark \n Mode ", "Dark Mode"},
		{"saas", "saas"}, // case is kept
		{"", ""},
		{"   ", ""},
		// "e" + combining acute accent composes to a single rune.
		{"Cafe\u0301", "Caf\u00e9"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Name(tt.input))
		})
	}
}

func TestName_ComposedAndDecomposedMatch(t *testing.T) {
	assert.Equal(t, Name("Cr\u00e8me"), Name("Cre\u0300me"))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", Email("  Alice@Example.COM "))
}

func TestText(t *testing.T) {
	assert.Equal(t, "A  landing page", Text("  A  landing page\n"))
}
