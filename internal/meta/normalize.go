package meta

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Parenthesized/bracketed asides and everything from "feat." to the end
	asidePattern = regexp.MustCompile(`\(.*?\)|\[.*?\]|feat\..*$`)

	// Runs of anything that is not a lowercase letter, digit or apostrophe
	nonWordApostrophePattern = regexp.MustCompile(`[^a-z0-9']+`)

	// Runs of anything that is not a lowercase letter or digit
	nonAlphanumericPattern = regexp.MustCompile(`[^a-z0-9]+`)

	// Media-descriptor words that carry no song identity
	titleNoisePattern = regexp.MustCompile(`\b(video|podcast|choreo|notes?|front|back|from)\b`)

	// A leading 1-3 digit track number
	trackNumberPattern = regexp.MustCompile(`^\d{1,3}\b`)

	// The last extension of a filename
	extensionPattern = regexp.MustCompile(`\.[^/.]+$`)

	// Underscore and hyphen runs used as word separators in filenames
	filenameSeparatorPattern = regexp.MustCompile(`[_-]+`)

	// View/format words that appear in choreography filenames
	filenameNoisePattern = regexp.MustCompile(`\b(front|back|video|notes?)\b`)

	// One leading numeric prefix and the whitespace after it
	numericPrefixPattern = regexp.MustCompile(`^\d+\s*`)

	// Parenthesized asides and anything after a slash ("Happy Holiday / White Christmas")
	matchingAsidePattern = regexp.MustCompile(`\(.*?\)|/.*$`)
)

// NormalizeTitle lowercases a title, drops parenthesized/bracketed asides and
// any "feat." suffix, and collapses everything except letters, digits and
// apostrophes into single spaces.
func NormalizeTitle(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	text = asidePattern.ReplaceAllString(text, " ")
	text = nonWordApostrophePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// BaseKeyFromTitle derives the grouping key used for episodes and choreography
// items: the normalized title without media-descriptor words or a leading track
// number, reduced to letters, digits and single spaces.
func BaseKeyFromTitle(text string) string {
	k := NormalizeTitle(text)
	k = titleNoisePattern.ReplaceAllString(k, " ")
	k = replaceFirst(trackNumberPattern, k, " ")
	k = nonAlphanumericPattern.ReplaceAllString(k, " ")

	return strings.TrimSpace(k)
}

// BaseKeyFromFilename derives a grouping key from the last path segment of a
// URL or path, e.g. ".../silent_night-front.mp4" -> "silent night".
func BaseKeyFromFilename(u string) string {
	name := LastPathSegment(u)
	name = extensionPattern.ReplaceAllString(name, "")
	name = filenameSeparatorPattern.ReplaceAllString(name, " ")
	name = strings.ToLower(name)
	name = filenameNoisePattern.ReplaceAllString(name, " ")

	return BaseKeyFromTitle(name)
}

// MatchingKey derives the key used for songbook and sheet-music lookups. It is
// deliberately separate from BaseKeyFromTitle: the songbook index is built once
// with this exact function, and apostrophes survive it.
func MatchingKey(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	text = replaceFirst(numericPrefixPattern, text, "")
	text = matchingAsidePattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "’", "'")
	text = nonWordApostrophePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// LastPathSegment returns everything after the final slash of a URL or path
func LastPathSegment(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}

// replaceFirst replaces only the first match of re in s
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
