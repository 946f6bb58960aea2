package analysis

import "strings"

// NormalizeCode canonicalizes a course code for comparison: hyphens become
// spaces, runs of whitespace collapse to a single space, and the result is
// trimmed and lower-cased. This absorbs whitespace/hyphen drift such as
// "ENGL-1010" vs "ENGL 1010"; it does not insert separators that were never
// there ("engl1010" stays a single token).
func NormalizeCode(code string) string {
	code = strings.ReplaceAll(code, "-", " ")
	return strings.ToLower(collapseWhitespace(code))
}

// NormalizeLabel builds the comparison label for a course: the
// whitespace-collapsed title and the normalized code joined by a single
// space, lower-cased. Missing inputs contribute nothing; the function always
// returns a string.
func NormalizeLabel(title, code string) string {
	title = collapseWhitespace(title)
	code = NormalizeCode(code)
	return strings.ToLower(strings.TrimSpace(title + " " + code))
}

// collapseWhitespace trims and squeezes any run of whitespace to one space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
