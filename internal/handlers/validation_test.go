package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kisekka/internal/models"
	"kisekka/internal/store"
)

func TestValidateCreatePost(t *testing.T) {
	valid := createPostInput{
		Type:         models.PostTypeRequest,
		PartName:     "Brake pads",
		CarModel:     "Toyota Premio",
		LocationZone: models.LocationZone("KM1"),
	}

	_, ok := validateCreatePost(valid)
	assert.True(t, ok)

	badType := valid
	badType.Type = "auction"
	msg, ok := validateCreatePost(badType)
	assert.False(t, ok)
	assert.Equal(t, "unknown post type", msg)

	badZone := valid
	badZone.LocationZone = "KM99"
	_, ok = validateCreatePost(badZone)
	assert.False(t, ok)

	tooManyImages := valid
	tooManyImages.Images = make([]string, models.MaxPostImages+1)
	msg, ok = validateCreatePost(tooManyImages)
	assert.False(t, ok)
	assert.Equal(t, "too many images", msg)

	atCap := valid
	atCap.Images = make([]string, models.MaxPostImages)
	_, ok = validateCreatePost(atCap)
	assert.True(t, ok)
}

func TestValidateCreateListing(t *testing.T) {
	valid := createListingInput{
		Title:        "Corolla headlight",
		Price:        450000,
		Condition:    models.ConditionUsed,
		Category:     models.PartCategory("Lights"),
		LocationZone: models.LocationZone("KM2"),
	}

	_, ok := validateCreateListing(valid)
	assert.True(t, ok)

	negative := valid
	negative.Price = -1
	msg, ok := validateCreateListing(negative)
	assert.False(t, ok)
	assert.Equal(t, "price must not be negative", msg)

	badCondition := valid
	badCondition.Condition = "mint"
	_, ok = validateCreateListing(badCondition)
	assert.False(t, ok)

	tooManyImages := valid
	tooManyImages.Images = make([]string, models.MaxListingImages+1)
	_, ok = validateCreateListing(tooManyImages)
	assert.False(t, ok)
}

func TestParsePageSize(t *testing.T) {
	limit, err := parsePageSize("")
	assert.NoError(t, err)
	assert.Zero(t, limit)

	limit, err = parsePageSize("35")
	assert.NoError(t, err)
	assert.Equal(t, int64(35), limit)

	_, err = parsePageSize("0")
	assert.ErrorIs(t, err, store.ErrInvalidPage)

	_, err = parsePageSize("abc")
	assert.ErrorIs(t, err, store.ErrInvalidPage)
}
