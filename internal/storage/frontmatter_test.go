package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFM   FrontMatter
		wantBody string
		wantOK   bool
	}{
		{
			name:     "title and tags",
			content:  "---\ntitle: Groceries\ntags:\n  - home\n  - weekly\n---\n\nmilk\neggs",
			wantFM:   FrontMatter{Title: "Groceries", Tags: []string{"home", "weekly"}},
			wantBody: "milk\neggs",
			wantOK:   true,
		},
		{
			name:     "flow tags only",
			content:  "---\ntags: [a, b]\n---\n\nbody",
			wantFM:   FrontMatter{Tags: []string{"a", "b"}},
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:     "only one blank line is trimmed",
			content:  "---\ntitle: x\n---\n\n\nindented",
			wantFM:   FrontMatter{Title: "x"},
			wantBody: "\nindented",
			wantOK:   true,
		},
		{
			name:     "no blank line after delimiter",
			content:  "---\ntitle: x\n---\nbody",
			wantFM:   FrontMatter{Title: "x"},
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:     "closing delimiter at end of file",
			content:  "---\ntitle: x\n---",
			wantFM:   FrontMatter{Title: "x"},
			wantBody: "",
			wantOK:   true,
		},
		{
			name:     "crlf line endings",
			content:  "---\r\ntitle: x\r\n---\r\n\r\nbody",
			wantFM:   FrontMatter{Title: "x"},
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:     "no front matter",
			content:  "# Heading\n\ntext",
			wantBody: "# Heading\n\ntext",
		},
		{
			name:     "unterminated block",
			content:  "---\ntitle: x\nbody",
			wantBody: "---\ntitle: x\nbody",
		},
		{
			name:     "malformed yaml",
			content:  "---\ntitle: [broken\n---\n\nbody",
			wantBody: "---\ntitle: [broken\n---\n\nbody",
		},
		{
			name:     "tags not a list",
			content:  "---\ntags:\n  nested: map\n---\nbody",
			wantBody: "---\ntags:\n  nested: map\n---\nbody",
		},
		{
			name:     "dashes not on the first line",
			content:  "intro\n---\ntitle: x\n---\n",
			wantBody: "intro\n---\ntitle: x\n---\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, ok := ParseFrontMatter(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFM, fm)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestEncodeNoteLayout(t *testing.T) {
	data, err := EncodeNote("Plan", []string{"work", "q3"}, "line one\n")
	assert.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "---\ntitle: Plan\ntags:\n"), text)
	assert.Contains(t, text, "- work\n")
	assert.Contains(t, text, "- q3\n")
	assert.True(t, strings.HasSuffix(text, "\n---\n\nline one\n"), text)

	data, err = EncodeNote("Bare", nil, "text")
	assert.NoError(t, err)
	assert.Equal(t, "---\ntitle: Bare\n---\n\ntext", string(data))
}

func TestEncodeThenParseKeepsAwkwardTitles(t *testing.T) {
	titles := []string{"a: b", "123", "true", "# hash", "quote \"me\"", "- dash", "multi\nline"}
	for _, title := range titles {
		data, err := EncodeNote(title, []string{"x: y"}, "\nbody\n")
		assert.NoError(t, err)

		fm, body, ok := ParseFrontMatter(string(data))
		assert.True(t, ok, title)
		assert.Equal(t, title, fm.Title)
		assert.Equal(t, []string{"x: y"}, fm.Tags)
		assert.Equal(t, "\nbody\n", body)
	}
}
