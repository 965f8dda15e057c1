package phpdoc

import "strings"

// parseTag builds a Tag from one logical "@name rest" line. The capability
// table is explicit per tag kind: each case populates only the fields that
// kind supports.
func parseTag(line string) Tag {
	name, rest := splitWord(strings.TrimPrefix(line, "@"))
	tag := Tag{Name: name}

	switch name {
	case "param", "var", "type", "global":
		// @name [type] $variable [description]
		if !strings.HasPrefix(rest, "$") {
			var typeWord string
			typeWord, rest = splitWord(rest)
			tag.Types = splitTypes(typeWord)
		}
		if strings.HasPrefix(rest, "$") {
			var variable string
			variable, rest = splitWord(rest)
			tag.Variable = variable
		}
		tag.Content = rest

	case "return", "throws":
		// @name type [description]
		var typeWord string
		typeWord, rest = splitWord(rest)
		tag.Types = splitTypes(typeWord)
		tag.Content = rest

	case "since", "deprecated", "version":
		// @name version [description]; the version string is the content and
		// the description rides along only when present.
		var version string
		version, rest = splitWord(rest)
		tag.Content = version
		if rest != "" {
			tag.Description = rest
		}

	case "link":
		// @link url [description]
		var url string
		url, rest = splitWord(rest)
		tag.Link = url
		tag.Content = rest

	case "see", "uses":
		// @name element [description]
		var ref string
		ref, rest = splitWord(rest)
		tag.Refers = ref
		tag.Content = rest

	default:
		tag.Content = rest
	}

	return tag
}

// splitWord returns the first whitespace-delimited word and the trimmed
// remainder.
func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

// splitTypes flattens an aggregate type like "int|string" into its parts in
// declaration order. A single type yields a one-element list.
func splitTypes(typeWord string) []string {
	if typeWord == "" {
		return nil
	}
	parts := strings.Split(typeWord, "|")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			types = append(types, p)
		}
	}
	return types
}
