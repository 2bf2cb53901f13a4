package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lower-cases a display name and collapses its whitespace.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

var pageIdRegex = regexp.MustCompile(`(?i)[?&]ID=(\d+)`)

// PageId scans a url, path or bare query string for `?ID=<n>` or `&ID=<n>`.
//
//	PageId("/Spells.aspx?ID=69")                      // 69, true
//	PageId("https://2e.aonprd.com/Feats.aspx?id=abc") // 0, false
func PageId(urlOrPath string) (int, bool) {
	groups := pageIdRegex.FindStringSubmatch(urlOrPath)
	if len(groups) < 2 {
		return 0, false
	}
	id, err := strconv.Atoi(groups[1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

var traitsSuffixRegex = regexp.MustCompile(`(?i)\s+traits$`)

// CategoryFromHeading turns an index heading like "Elemental Traits" into "elemental".
func CategoryFromHeading(heading string) string {
	heading = strings.TrimSpace(heading)
	heading = traitsSuffixRegex.ReplaceAllString(heading, "")
	return strings.ToLower(heading)
}

// TrimField trims whitespace and a trailing semicolon bled in from the
// surrounding punctuation.
func TrimField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

// ParseBool reads the literal "True"/"False" flags of the seed export.
func ParseBool(s string) bool {
	return strings.TrimSpace(s) == "True"
}
