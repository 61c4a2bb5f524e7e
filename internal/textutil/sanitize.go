package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe
// alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a stored item name safe to use as a filesystem
// name. Path separators and other unsafe characters become dashes or are
// removed; the result is trimmed of surrounding whitespace. Names that
// sanitize to nothing fall back to "untitled" so an export always has a
// target.
func SanitizeFileName(name string) string {
	cleaned := strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(name)))
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}
