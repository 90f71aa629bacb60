package converter

import (
	"strings"
	"unicode/utf8"
)

// formatString turns & colour codes into § codes. A backslash keeps the
// character after it as written.
func formatString(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		switch r {
		case '\\':
			if i < len(text) {
				r, size = utf8.DecodeRuneInString(text[i:])
				i += size
				sb.WriteRune(r)
			}
		case '&':
			sb.WriteRune('§')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func escapeFormatters(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.ReplaceAll(line, "§", "&&")
	}
	return out
}

// sanitizeSegment lower-cases title and keeps only [a-z0-9]. A title that
// sanitizes to nothing is returned unchanged.
func sanitizeSegment(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return title
	}
	return sb.String()
}
