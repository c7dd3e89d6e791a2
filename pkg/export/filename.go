package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SafeFilename joins parts with underscores, folds accents ("Março" -> "Marco") and
// replaces anything outside [A-Za-z0-9._-] so the name survives Content-Disposition.
func SafeFilename(ext string, parts ...string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		folded, _, err := transform.String(folder, strings.TrimSpace(part))
		if err != nil {
			folded = part
		}
		folded = strings.Map(func(r rune) rune {
			switch {
			case r == ' ':
				return '_'
			case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '-', r == '_', r == '.':
				return r
			default:
				return -1
			}
		}, folded)
		if folded != "" {
			cleaned = append(cleaned, folded)
		}
	}

	name := strings.Join(cleaned, "_")
	if name == "" {
		name = "export"
	}
	if ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	return name
}
