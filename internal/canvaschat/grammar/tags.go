package grammar

import (
	"strconv"
	"strings"
)

// headingTags maps heading keywords to element tags.
var headingTags = map[string]string{
	"title":      "h1",
	"main title": "h1",
	"subtitle":   "h2",
	"subheading": "h3",
	"section":    "h2",
}

// textTags maps text element keywords to element tags.
var textTags = map[string]string{
	"paragraph":  "p",
	"p":          "p",
	"span":       "span",
	"inline":     "span",
	"quote":      "blockquote",
	"blockquote": "blockquote",
	"code":       "code",
	"code block": "pre",
	"pre":        "pre",
	"label":      "label",
	"caption":    "small",
	"small":      "small",
}

// ResolveHeadingTag accepts "h2", "heading 2", "level 2", "2" or a keyword
// such as "subtitle" and returns the element tag.
func ResolveHeadingTag(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if v, ok := headingTags[s]; ok {
		return v, true
	}
	for _, prefix := range []string{"heading ", "level ", "h"} {
		s = strings.TrimPrefix(s, prefix)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 6 {
		return "", false
	}
	return "h" + strconv.Itoa(n), true
}

// ResolveTextTag maps a text element keyword to its tag.
func ResolveTextTag(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "a ")
	v, ok := textTags[s]
	return v, ok
}
