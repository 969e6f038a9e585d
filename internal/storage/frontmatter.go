package storage

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

type FrontMatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags,omitempty"`
}

// ParseFrontMatter splits a note file into front matter and body. ok is
// false when the file has no leading delimiter, no closing delimiter, or a
// block that does not decode; body is then the whole text.
func ParseFrontMatter(text string) (fm FrontMatter, body string, ok bool) {
	first := strings.IndexByte(text, '\n')
	if first < 0 || trimCR(text[:first]) != delimiter {
		return FrontMatter{}, text, false
	}

	pos := first + 1
	for pos <= len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		lineEnd, next := len(text), len(text)
		if end >= 0 {
			lineEnd, next = pos+end, pos+end+1
		}
		if trimCR(text[pos:lineEnd]) == delimiter {
			var parsed FrontMatter
			if err := yaml.Unmarshal([]byte(text[first+1:pos]), &parsed); err != nil {
				return FrontMatter{}, text, false
			}
			return parsed, trimBlankLine(text[next:]), true
		}
		if end < 0 {
			break
		}
		pos = next
	}
	return FrontMatter{}, text, false
}

// EncodeNote renders the on-disk form of a note: front matter with the title
// and any tags, a blank line, then the body verbatim.
func EncodeNote(title string, tags []string, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FrontMatter{Title: title, Tags: tags}); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}

func trimBlankLine(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}
