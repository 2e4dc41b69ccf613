package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		title    string
		expected string
	}{
		{"Advanced React: Hooks & Context API!", "advanced-react-hooks-context-api"},
		{"Go  Concurrency   Patterns", "go-concurrency-patterns"},
		{"  Trimmed Title  ", "trimmed-title"},
		{"already-a-slug", "already-a-slug"},
		{"Числа 123 and ASCII", "123-and-ascii"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, GenerateSlug(tc.title), "title %q", tc.title)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name     string
		expected string
	}{
		{"My file with spaces & symbols!.pdf", "My_file_with_spaces___symbols_.pdf"},
		{"clean-name.zip", "clean-name.zip"},
		{"report (final).docx", "report__final_.docx"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, SanitizeFileName(tc.name), "name %q", tc.name)
	}
}
