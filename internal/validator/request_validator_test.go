package validator

import (
	"testing"

	"github.com/connecthq/connect/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateRequestTags(t *testing.T) {
	tags := model.TagList{
		{Label: "Biology", Slug: "biology"},
		{Label: "Machine Learning", Slug: "machine-learning"},
	}
	assert.NoError(t, ValidateRequestTags(tags))
}

func TestValidateRequestTags_Empty(t *testing.T) {
	assert.Error(t, ValidateRequestTags(nil))
	assert.Error(t, ValidateRequestTags(model.TagList{}))
}

func TestValidateRequestTags_TooMany(t *testing.T) {
	tags := make(model.TagList, 11)
	for i := range tags {
		tags[i] = model.Tag{Label: "Tag", Slug: Slugify("tag") + string(rune('a'+i))}
	}
	assert.Error(t, ValidateRequestTags(tags))
}

func TestValidateRequestTags_DuplicateSlug(t *testing.T) {
	tags := model.TagList{
		{Label: "Python", Slug: "python"},
		{Label: "python", Slug: "Python"},
	}
	err := ValidateRequestTags(tags)
	assert.ErrorContains(t, err, "duplicate")
}

func TestValidateRequestTags_BadShape(t *testing.T) {
	assert.Error(t, ValidateRequestTags(model.TagList{{Slug: "no-label"}}))
	assert.Error(t, ValidateRequestTags(model.TagList{{Label: "No Slug"}}))
	assert.Error(t, ValidateRequestTags(model.TagList{{Label: "Bad", Slug: "bad slug!"}}))
}

func TestValidateProfileTags_EmptyAllowed(t *testing.T) {
	assert.NoError(t, ValidateProfileTags(nil))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "machine-learning", Slugify("Machine Learning"))
	assert.Equal(t, "c-programming", Slugify("  C++ Programming! "))
	assert.Equal(t, "web-dev", Slugify("Web--Dev"))
}
