package catalog

import "sort"

// preferredOrder keeps Facial and Makeup next to each other on the home view.
var preferredOrder = []string{"Hair", "Facial", "Makeup", "Nails"}

// OrderCategories puts the preferred categories first, then the rest
// alphabetically. Empty names are dropped.
func OrderCategories(raw []string) []string {
	present := make(map[string]bool, len(raw))
	for _, c := range raw {
		if c != "" {
			present[c] = true
		}
	}

	out := make([]string, 0, len(present))
	for _, c := range preferredOrder {
		if present[c] {
			out = append(out, c)
			delete(present, c)
		}
	}

	rest := make([]string, 0, len(present))
	for c := range present {
		rest = append(rest, c)
	}
	sort.Strings(rest)

	return append(out, rest...)
}
