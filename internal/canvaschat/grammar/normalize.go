// Package grammar holds the shared vocabularies that turn free text into
// canonical style values: colors, fonts, element tags and CSS lengths.
package grammar

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// annotationRe matches the clarification suffix "(<kind>: <value>)" appended
// to a command when a follow-up answer is merged into it.
var annotationRe = regexp.MustCompile(`\(\s*[A-Za-z][\w ]*:\s*([^)]*)\)`)

// Normalize prepares raw chat input for matching: NFC, clarification
// annotations unwrapped to their value, whitespace collapsed, trailing
// sentence punctuation dropped. Case is preserved so quoted content survives.
func Normalize(text string) string {
	s := norm.NFC.String(text)
	s = annotationRe.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ".! ")
}

// Lower is Normalize followed by lower-casing; used for keyword recognition.
func Lower(text string) string {
	return strings.ToLower(Normalize(text))
}

// ContainsAny reports whether lower contains any of the phrases.
func ContainsAny(lower string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Label turns a camelCase key into lower-case words: "titleColor" → "title color".
func Label(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var titleCaser = cases.Title(language.English)

// Title renders a display name: "query value" → "Query Value".
func Title(s string) string {
	return titleCaser.String(s)
}
