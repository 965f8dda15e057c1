package parser

import (
	"regexp"
	"strings"
)

var (
	// A single uniformly-quoted string literal with no inner quote of the
	// same kind.
	literalNameRe = regexp.MustCompile(`^('[^']*'|"[^"]*")$`)

	// [quoted literal .] variable-reference [. quoted literal], whitespace
	// tolerant around the concatenation dots. The variable reference may
	// carry property or array-key accessors.
	dynamicNameRe = regexp.MustCompile(`^(?:('[^']*'|"[^"]*")\s*\.\s*)?(\$[A-Za-z_]\w*(?:->\w+|\[[^\[\]]*\])*)(?:\s*\.\s*('[^']*'|"[^"]*"))?$`)
)

// NormalizeHookName reconstructs a canonical, human-readable hook name from
// the source text of the name expression. A pure string literal is unquoted;
// a literal/variable concatenation becomes prefix{$var}suffix; anything more
// complex is returned unchanged as a best-effort value.
func NormalizeHookName(raw string) string {
	raw = strings.TrimSpace(raw)

	if literalNameRe.MatchString(raw) {
		return raw[1 : len(raw)-1]
	}

	if m := dynamicNameRe.FindStringSubmatch(raw); m != nil {
		return unquote(m[1]) + "{" + m[2] + "}" + unquote(m[3])
	}

	return raw
}

// unquote strips a matching pair of surrounding quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
