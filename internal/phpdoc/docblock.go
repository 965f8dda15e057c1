// Package phpdoc parses PHPDoc comment blocks into export-ready records.
//
// A block has up to three regions: a summary (the first paragraph), a long
// description (everything up to the first tag line), and a run of @tags.
// Absence of any region is normal; a missing comment yields Empty().
package phpdoc

import (
	"strings"
)

// DocBlock is the canonical record for one documentation comment.
type DocBlock struct {
	Description     string `json:"description"`
	LongDescription string `json:"long_description"`
	Tags            []Tag  `json:"tags"`
}

// Tag is a single structured annotation inside a DocBlock. Only the fields
// the tag kind supports are populated; see parseTag for the capability table.
type Tag struct {
	Name        string   `json:"name"`
	Content     string   `json:"content"`
	Types       []string `json:"types,omitempty"`
	Variable    string   `json:"variable,omitempty"`
	Link        string   `json:"link,omitempty"`
	Refers      string   `json:"refers,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Empty returns the record used when an entity has no documentation.
func Empty() *DocBlock {
	return &DocBlock{Tags: []Tag{}}
}

// Parse converts a raw /** ... */ comment into a DocBlock. It never fails:
// malformed content degrades to plain description text.
func Parse(comment string) *DocBlock {
	body, tagLines := splitRegions(stripFraming(comment))

	doc := Empty()
	summary, long := splitSummary(body)
	doc.Description = collapseWhitespace(summary)
	doc.LongDescription = Reflow(long)

	for _, line := range tagLines {
		doc.Tags = append(doc.Tags, parseTag(line))
	}
	return doc
}

// stripFraming removes the /** */ delimiters and the leading "* " gutter
// from every line. Indentation after the gutter is preserved so that code
// samples inside the comment keep their shape.
func stripFraming(comment string) string {
	s := strings.TrimSpace(comment)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
		}
		out = append(out, strings.TrimRight(trimmed, " \t"))
	}

	// Drop blank lines at either end left over from the comment framing.
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// splitRegions separates description text from the tag section. Each entry in
// the returned tag slice is one logical tag with its continuation lines
// merged onto it.
func splitRegions(body string) (string, []string) {
	if body == "" {
		return "", nil
	}

	var bodyLines []string
	var tags []string
	inTags := false

	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "@"):
			inTags = true
			tags = append(tags, line)
		case inTags:
			// Continuation of the previous tag; blank lines end nothing,
			// wrapped text folds into the tag's description.
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && len(tags) > 0 {
				tags[len(tags)-1] += " " + trimmed
			}
		default:
			bodyLines = append(bodyLines, line)
		}
	}
	return strings.Join(bodyLines, "\n"), tags
}

// splitSummary splits description text into the summary paragraph and the
// remaining long description.
func splitSummary(body string) (string, string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ""
	}
	if idx := indexBlankLine(body); idx >= 0 {
		summary := body[:idx]
		rest := strings.TrimLeft(body[idx:], "\n")
		return summary, rest
	}
	return body, ""
}

// indexBlankLine returns the offset of the first blank-line run, or -1.
func indexBlankLine(s string) int {
	lines := strings.Split(s, "\n")
	offset := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" && i > 0 {
			return offset - 1 // position of the newline before the blank line
		}
		offset += len(line) + 1
	}
	return -1
}

// collapseWhitespace folds internal newlines (and their surrounding indent)
// into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
