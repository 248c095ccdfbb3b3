package brawlstars

import (
	"net/url"
	"strings"
)

const (
	// tagAlphabet holds every character the game uses in tags.
	tagAlphabet = "0289PYLQGRJCUV"

	minTagLength = 3
	maxTagLength = 15
)

// normalizeTag strips a leading '#', upper-cases the tag and replaces the
// letter O with the digit 0. The game has no letter O in its tag alphabet.
func normalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	tag = strings.ToUpper(tag)
	return strings.ReplaceAll(tag, "O", "0")
}

// FormatTag returns the canonical, path-escaped form of a player or club tag.
//
//	FormatTag("#c0nd")  // "C0ND"
//	FormatTag("cond")   // "C0ND"
func FormatTag(tag string) string {
	return url.PathEscape(normalizeTag(tag))
}

// ValidateTag checks a tag after normalization. Tags must be 3-15 characters
// of [0-9A-Z]; strict mode only accepts the game's own alphabet.
func ValidateTag(tag string, strict bool) error {
	normalized := normalizeTag(tag)

	if len(normalized) < minTagLength || len(normalized) > maxTagLength {
		return &ValidationError{
			Field:   "tag",
			Message: "tag " + quote(tag) + " must be between 3 and 15 characters long",
			cause:   ErrInvalidTag,
		}
	}

	for _, ch := range normalized {
		isDigit := ch >= '0' && ch <= '9'
		isUpper := ch >= 'A' && ch <= 'Z'
		if !isDigit && !isUpper {
			return &ValidationError{
				Field:   "tag",
				Message: "tag " + quote(tag) + " contains invalid character " + quote(string(ch)),
				cause:   ErrInvalidTag,
			}
		}
		if strict && !strings.ContainsRune(tagAlphabet, ch) {
			return &ValidationError{
				Field:   "tag",
				Message: "tag " + quote(tag) + " contains " + quote(string(ch)) + ", allowed characters are " + tagAlphabet,
				cause:   ErrInvalidTag,
			}
		}
	}

	return nil
}

func quote(s string) string {
	return "\"" + s + "\""
}
