// Package textproc normalizes raw answer text for the analytics pipeline.
package textproc

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9 ]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Clean normalizes one answer: lowercase, characters outside [a-z0-9 ]
// removed, whitespace runs collapsed to a single space, trimmed. Non-Latin
// scripts are dropped wholesale; that is a documented limitation of the
// pipeline, not something Clean tries to work around. Clean is idempotent.
func Clean(s string) string {
	s = strings.ToLower(s)
	s = whitespace.ReplaceAllString(s, " ")
	s = nonAlnum.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanAll cleans every string and drops entries that come out empty.
// Always succeeds; the result may be empty.
func CleanAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if c := Clean(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Tokens cleans s and splits it into words.
func Tokens(s string) []string {
	c := Clean(s)
	if c == "" {
		return nil
	}
	return strings.Split(c, " ")
}

// ContentTokens is Tokens with stopwords removed.
func ContentTokens(s string) []string {
	var out []string
	for _, t := range Tokens(s) {
		if !IsStopword(t) {
			out = append(out, t)
		}
	}
	return out
}
