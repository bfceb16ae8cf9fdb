package catalog

import (
	"regexp"
	"strings"
)

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL slug: lowercase, special characters stripped,
// whitespace runs replaced with hyphens.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = slugStrip.ReplaceAllString(s, "")
	return whitespace.ReplaceAllString(s, "-")
}

// NormalizeSubCategory produces the stored display form of a sub-category
// name: trimmed, with internal whitespace runs collapsed to a single "_".
func NormalizeSubCategory(name string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
}

// normalizeSubCategories normalizes every name, preserving order.
func normalizeSubCategories(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeSubCategory(n)
	}
	return out
}
