package slug

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphensRe    = regexp.MustCompile(`--+`)
)

// Derive is a pure deterministic title -> slug function. Uniqueness is
// not checked here, the unique index in storage takes care of it
func Derive(title string) string {
	s := strings.ToLower(title)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = hyphensRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "- ")
	return s
}
