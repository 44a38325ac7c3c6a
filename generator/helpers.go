package generator

import (
	"strings"
	"unicode"
)

// Naming helpers shared by the entity and scaffold generators. They cover
// the identifier shapes wren produces: snake_case database names, PascalCase
// Go identifiers, camelCase JSON keys, plural table names.

// initialisms stay fully capitalized inside Go identifiers, so user_id
// becomes UserID rather than UserId.
var initialisms = map[string]string{
	"id":   "ID",
	"api":  "API",
	"url":  "URL",
	"http": "HTTP",
	"html": "HTML",
	"json": "JSON",
	"xml":  "XML",
	"sql":  "SQL",
	"uuid": "UUID",
	"db":   "DB",
	"ui":   "UI",
}

// PascalCase converts snake_case or camelCase to an exported Go identifier.
func PascalCase(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(s, "_") {
		var b strings.Builder
		for _, part := range strings.Split(s, "_") {
			b.WriteString(capitalize(part))
		}
		return b.String()
	}
	if unicode.IsLower(rune(s[0])) {
		return capitalize(s)
	}
	return s
}

func capitalize(part string) string {
	if part == "" {
		return ""
	}
	if up, ok := initialisms[strings.ToLower(part)]; ok {
		return up
	}
	return strings.ToUpper(part[:1]) + part[1:]
}

// CamelCase converts snake_case or PascalCase to a camelCase identifier,
// for JSON field names.
func CamelCase(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(s, "_") {
		var b strings.Builder
		first := true
		for _, part := range strings.Split(s, "_") {
			if part == "" {
				continue
			}
			if first {
				b.WriteString(strings.ToLower(part))
				first = false
				continue
			}
			b.WriteString(strings.ToUpper(part[:1]) + strings.ToLower(part[1:]))
		}
		return b.String()
	}
	if unicode.IsUpper(rune(s[0])) {
		return strings.ToLower(s[:1]) + s[1:]
	}
	return s
}

// SnakeCase converts PascalCase or camelCase to snake_case. An acronym run
// counts as one word: HTTPServer becomes http_server.
func SnakeCase(s string) string {
	if s == "" || strings.Contains(s, "_") {
		return strings.ToLower(s)
	}

	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			startsWord := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || startsWord {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Title capitalizes each space-separated word, for form labels.
func Title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Pluralize derives a table name from a singular entity name with the usual
// English rules: category becomes categories, box becomes boxes, leaf
// becomes leaves.
func Pluralize(word string) string {
	if word == "" {
		return ""
	}

	switch strings.ToLower(word) {
	case "person":
		return matchCase(word, "people")
	case "child":
		return matchCase(word, "children")
	}

	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return word + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "o") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		// photo and piano take a plain s
		if strings.HasSuffix(lower, "photo") || strings.HasSuffix(lower, "piano") {
			return word + "s"
		}
		return word + "es"
	case strings.HasSuffix(lower, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(lower, "f"):
		return word[:len(word)-1] + "ves"
	}
	return word + "s"
}

func matchCase(original, plural string) string {
	if original == strings.ToUpper(original) {
		return strings.ToUpper(plural)
	}
	if unicode.IsUpper(rune(original[0])) {
		return strings.ToUpper(plural[:1]) + plural[1:]
	}
	return plural
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
