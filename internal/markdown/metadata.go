// Package markdown derives tutorial metadata from markdown text and renders
// it to HTML.
package markdown

import (
	"strings"
	"unicode/utf8"
)

// UntitledTitle is returned when a document has no level-1 heading.
const UntitledTitle = "Untitled Tutorial"

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// maxDescriptionRunes bounds descriptions; longer ones get an ellipsis.
const maxDescriptionRunes = 200

// ExtractTitle returns the text of the first level-1 heading ("# ..."),
// trimmed, or UntitledTitle when the document has none.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return UntitledTitle
}

// ExtractDescription returns the first non-empty, non-heading line that
// follows the title heading. Lines before the title are ignored, so a
// document without a level-1 heading has no description.
func ExtractDescription(content string) string {
	foundTitle := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "# ") {
			foundTitle = true
			continue
		}

		if foundTitle && trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return truncate(trimmed, maxDescriptionRunes)
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// WordCount counts whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// EstimateReadTime returns ceil(words / WordsPerMinute), never less than one
// minute.
func EstimateReadTime(content string) int {
	words := WordCount(content)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
