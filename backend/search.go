package backend

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// foldText normalizes text for matching: NFC normalization followed by
// Unicode case folding, so "Crème" matches "crème" and "CRÈME".
func foldText(s string) string {
	return foldCaser.String(norm.NFC.String(s))
}

// textMatches reports whether the folded query occurs in any of the
// candidate fields. An empty query matches everything.
func textMatches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := foldText(query)
	for _, f := range fields {
		if strings.Contains(foldText(f), q) {
			return true
		}
	}
	return false
}

// genreLabels splits a comma-separated genre string into folded labels.
func genreLabels(genres string) []string {
	parts := strings.Split(genres, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			labels = append(labels, foldText(p))
		}
	}
	return labels
}

// hasGenre reports whether the content's genre list contains the folded
// label.
func hasGenre(genres, label string) bool {
	want := foldText(label)
	for _, g := range genreLabels(genres) {
		if g == want {
			return true
		}
	}
	return false
}

var genreTitleCaser = cases.Lower(language.Und)

func canonicalGenre(label string) string {
	return genreTitleCaser.String(strings.TrimSpace(label))
}
