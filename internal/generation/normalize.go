package generation

import "strings"

// Normalize strips the decoration generative models habitually wrap
// around JSON payloads: markdown code fences and leading/trailing prose.
// This is a best-effort cleanup step, not part of the schema contract;
// the result still has to survive parsing and validation.
func Normalize(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json\n", "")
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```\n", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) == 0 || cleaned[0] == '{' || cleaned[0] == '[' {
		return cleaned
	}

	// Prose around the payload: cut to the outermost JSON bracket pair.
	start := strings.IndexAny(cleaned, "[{")
	if start < 0 {
		return cleaned
	}
	var end int
	if cleaned[start] == '[' {
		end = strings.LastIndex(cleaned, "]")
	} else {
		end = strings.LastIndex(cleaned, "}")
	}
	if end <= start {
		return cleaned
	}
	return cleaned[start : end+1]
}
