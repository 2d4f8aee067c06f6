// Package match computes compatibility scores between a viewer's profile
// and collaboration requests, and ranks request pages by score.
package match

import (
	"strings"

	"github.com/connecthq/connect/internal/model"
)

// NormalizeSlug returns the comparable identity of a tag: its slug,
// lower-cased and trimmed. A tag without a slug normalizes to the empty
// string, which never counts as a match.
func NormalizeSlug(t model.Tag) string {
	return strings.ToLower(strings.TrimSpace(t.Slug))
}

// normalizeAll returns the normalized slugs of tags, dropping empty ones.
// Order and duplicates are preserved so overlap counts match the tag list.
func normalizeAll(tags []model.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		if s := NormalizeSlug(t); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

// slugSet builds a membership set from normalized slugs.
func slugSet(slugs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		set[s] = struct{}{}
	}
	return set
}

// countOverlap counts how many of slugs are present in set. Duplicate
// entries in slugs are counted per occurrence.
func countOverlap(slugs []string, set map[string]struct{}) int {
	n := 0
	for _, s := range slugs {
		if _, ok := set[s]; ok {
			n++
		}
	}
	return n
}
