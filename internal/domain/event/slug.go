package event

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// slug format accepted on the public read path
var SlugPattern = regexp.MustCompile(`^[a-z0-9-]{1,100}$`)

// Slugify derives the URL identifier from a title: lowercase, runs of
// anything outside [a-z0-9] collapse to a single hyphen, outer hyphens
// stripped. Idempotent.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
