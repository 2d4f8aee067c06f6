package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/connecthq/connect/internal/model"
)

const (
	maxRequestTags = 10
	maxProfileTags = 20
	maxSlugLength  = 50
	maxLabelLength = 50
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateRequestTags validates the tag list attached to a collaboration request
func ValidateRequestTags(tags model.TagList) error {
	if len(tags) == 0 {
		return errors.New("at least one tag is required")
	}
	if len(tags) > maxRequestTags {
		return fmt.Errorf("at most %d tags are allowed", maxRequestTags)
	}
	return validateTags(tags)
}

// ValidateProfileTags validates a skills or interests list on a profile
func ValidateProfileTags(tags model.TagList) error {
	if len(tags) > maxProfileTags {
		return fmt.Errorf("at most %d tags are allowed", maxProfileTags)
	}
	return validateTags(tags)
}

// validateTags checks each tag's shape and rejects duplicate slugs
func validateTags(tags model.TagList) error {
	seen := make(map[string]struct{}, len(tags))
	for i, tag := range tags {
		if err := validateTag(tag); err != nil {
			return fmt.Errorf("tag %d: %w", i+1, err)
		}
		slug := strings.ToLower(tag.Slug)
		if _, dup := seen[slug]; dup {
			return fmt.Errorf("duplicate tag: %s", slug)
		}
		seen[slug] = struct{}{}
	}
	return nil
}

// validateTag checks a single tag's shape
func validateTag(tag model.Tag) error {
	if strings.TrimSpace(tag.Label) == "" {
		return errors.New("label is required")
	}
	if len(tag.Label) > maxLabelLength {
		return fmt.Errorf("label cannot exceed %d characters", maxLabelLength)
	}
	if tag.Slug == "" {
		return errors.New("slug is required")
	}
	if len(tag.Slug) > maxSlugLength {
		return fmt.Errorf("slug cannot exceed %d characters", maxSlugLength)
	}
	if !slugPattern.MatchString(strings.ToLower(tag.Slug)) {
		return fmt.Errorf("invalid slug: %s", tag.Slug)
	}
	return nil
}

// Slugify derives a catalog slug from a display label
func Slugify(label string) string {
	slug := strings.ToLower(strings.TrimSpace(label))
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
