package catalog

import (
	"fmt"
	"strings"
)

// Sub-category list mutations are pure functions over the ordered list; the
// service pairs them with the repository's versioned swap so concurrent
// mutations of the same category cannot clobber each other.

// appendSubCategories extends the list with normalized candidates,
// preserving insertion order. A candidate that case-insensitively matches an
// existing entry (or an earlier candidate) is rejected by name.
func appendSubCategories(existing, candidates []string) ([]string, error) {
	out := make([]string, len(existing), len(existing)+len(candidates))
	copy(out, existing)

	for _, name := range candidates {
		for _, have := range out {
			if strings.EqualFold(have, name) {
				return nil, fmt.Errorf("%w: %s", ErrSubCategoryExists, name)
			}
		}
		out = append(out, name)
	}
	return out, nil
}

// renameSubCategory replaces oldName with newName in place, preserving list
// position. oldName must match an entry exactly; a miss is reported as
// ErrSubCategoryNotFound, distinct from the category-level not-found. A
// newName that case-insensitively collides with any other entry is rejected.
func renameSubCategory(existing []string, oldName, newName string) ([]string, error) {
	idx := -1
	for i, have := range existing {
		if have == oldName {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrSubCategoryNotFound, oldName)
	}
	for i, have := range existing {
		if i != idx && strings.EqualFold(have, newName) {
			return nil, fmt.Errorf("%w: %s", ErrSubCategoryExists, newName)
		}
	}
	out := make([]string, len(existing))
	copy(out, existing)
	out[idx] = newName
	return out, nil
}

// removeSubCategories excises every case-insensitive match of names. If the
// list length is unchanged nothing matched and the call is rejected.
func removeSubCategories(existing, names []string) ([]string, error) {
	out := make([]string, 0, len(existing))
	for _, have := range existing {
		matched := false
		for _, name := range names {
			if strings.EqualFold(have, name) {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, have)
		}
	}
	if len(out) == len(existing) {
		return nil, fmt.Errorf("%w: %s", ErrSubCategoryNotFound, strings.Join(names, ", "))
	}
	return out, nil
}
