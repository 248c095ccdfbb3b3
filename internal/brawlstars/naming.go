package brawlstars

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CamelToSnake converts an API key such as "trophyChange" to "trophy_change".
// Runs of capitals are kept together: "3vs3Victories" becomes
// "3vs3_victories", "isQualifiedFromCC" becomes "is_qualified_from_cc".
func CamelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prev != '_' && (!unicode.IsUpper(prev) || nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// HumanizeKey turns "brawlBall" or "brawl_ball" into "Brawl Ball".
func HumanizeKey(s string) string {
	words := strings.Split(CamelToSnake(s), "_")
	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return TitleCase(strings.Join(out, " "))
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest: "EL PRIMO" becomes "El Primo".
func TitleCase(s string) string {
	// cases.Caser is stateful and not safe for concurrent use.
	return cases.Title(language.English).String(s)
}
