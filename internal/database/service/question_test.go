package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"How do slices grow?", "how-do-slices-grow"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"CamelCase Title", "camelcase-title"},
		{"punctuation, (lots) of: it!", "punctuation-lots-of-it"},
		{"already-a-slug", "already-a-slug"},
		{"123 numbers 456", "123-numbers-456"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.title), "title %q", tt.title)
	}
}
