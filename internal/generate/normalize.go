package generate

import "strings"

// Normalize sanitizes raw model output into text that should parse as
// JSON. It strips markdown code fences, carriage returns and null bytes,
// any preamble before the first structural opening character, and
// non-printable control characters other than newline and tab, then
// trims surrounding whitespace. Normalizing already-normalized text is a
// no-op.
func Normalize(text string) string {
	text = stripCodeFences(text)

	// Drop characters the parser chokes on outright.
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\x00", "")

	// Models often preface JSON with conversational text. Everything
	// before the first '{' or '[' is noise.
	if idx := strings.IndexAny(text, "{["); idx > 0 {
		text = text[idx:]
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}
		sb.WriteRune(r)
	}

	return strings.TrimSpace(sb.String())
}

// stripCodeFences removes markdown code block wrappers, including an
// optional language identifier after the opening fence.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, "{[ ") && len(firstLine) < 20 {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
