package phpdoc

import (
	"regexp"
	"strings"
)

// newlineToken stands in for newlines inside protected code spans while the
// surrounding prose is re-flowed. NUL cannot occur in comment text.
const newlineToken = "\x00"

var preCodeRe = regexp.MustCompile(`(?s)<pre><code>.*?</code></pre>`)

// Reflow merges manually soft-wrapped lines into single paragraphs while
// keeping formatting inside <pre><code> spans verbatim. Blank-line paragraph
// breaks are preserved.
func Reflow(text string) string {
	if text == "" {
		return ""
	}

	protected := preCodeRe.ReplaceAllStringFunc(text, func(span string) string {
		return strings.ReplaceAll(span, "\n", newlineToken)
	})

	merged := mergeSoftWraps(protected)

	return strings.ReplaceAll(merged, newlineToken, "\n")
}

// mergeSoftWraps replaces each isolated newline with a space. A newline
// adjacent to another newline (ignoring horizontal whitespace between them)
// belongs to a blank-line run and stays.
func mergeSoftWraps(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' {
			b.WriteByte(s[i])
			continue
		}
		if partOfBlankRun(s, i) {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func partOfBlankRun(s string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		c := s[j]
		if c == '\n' {
			return true
		}
		if c == ' ' || c == '\t' || c == '\r' {
			continue
		}
		break
	}
	for j := i + 1; j < len(s); j++ {
		c := s[j]
		if c == '\n' {
			return true
		}
		if c == ' ' || c == '\t' || c == '\r' {
			continue
		}
		break
	}
	return false
}
