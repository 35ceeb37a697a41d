package models

import (
	"strings"
	"unicode"
)

// normalizeEnum folds PascalCase, SCREAMING_SNAKE and spaced spellings onto one key,
// so "PartlyCloudy", "PARTLY_CLOUDY" and "partly cloudy" all compare equal.
func normalizeEnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// ScreamingSnake renders a PascalCase enum name the way GraphQL enums are spelled:
// "PartlyCloudy" becomes "PARTLY_CLOUDY", "NNW" stays "NNW", "PM2.5" is left alone.
func ScreamingSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func parseEnum[T ~string](s string, values []T) (T, bool) {
	key := normalizeEnum(s)
	for _, v := range values {
		if normalizeEnum(string(v)) == key {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func containsEnum[T ~string](v T, values []T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
