package grammar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// LengthExpr is a regexp fragment capturing a CSS length into the group "len".
const LengthExpr = `(?P<len>\d+(?:\.\d+)?\s*(?:px|rem|em|pt|%|vh|vw)?)`

var lengthRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(px|rem|em|pt|%|vh|vw)?$`)

// Relative scale factors applied by "bigger"/"smaller" style phrasings.
const (
	GrowFactor   = 1.25
	ShrinkFactor = 0.8
)

// ParseLength normalizes "16", "16 px", "1.5rem", "50%" to CSS. Unit-less
// numbers become pixels. "auto" passes through.
func ParseLength(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "auto" {
		return s, true
	}
	m := lengthRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	unit := m[2]
	if unit == "" {
		unit = "px"
	}
	return m[1] + unit, true
}

// Px reads a pixel value out of a style entry ("16px", "16", 16, 16.0).
// Non-pixel or missing values yield fallback.
func Px(v any, fallback int) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(math.Round(t))
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(t), "px")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(math.Round(f))
		}
	}
	return fallback
}

// Scale multiplies the pixel value of v (or fallback) by factor, rounds to
// the nearest integer and renders it as "<n>px".
func Scale(v any, fallback int, factor float64) string {
	return fmt.Sprintf("%dpx", int(math.Round(float64(Px(v, fallback))*factor)))
}

// ParseInt parses a small non-negative integer, accepting a few number words.
func ParseInt(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if n, ok := numberWords[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "twelve": 12,
}
