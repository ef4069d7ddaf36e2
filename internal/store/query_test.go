package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"kisekka/internal/models"
)

func TestFeedBaseFilterScopesMarketAndStatus(t *testing.T) {
	s := &Store{marketID: "kisekka"}

	filter := s.feedBaseFilter()
	assert.Equal(t, bson.M{
		"marketId": "kisekka",
		"status":   models.PostStatusActive,
	}, filter)
}

func TestFeedSortOrder(t *testing.T) {
	sort := feedSort()
	assert.Equal(t, "urgent", sort[0].Key)
	assert.Equal(t, "lastActivityAt", sort[1].Key)
	assert.Equal(t, "_id", sort[2].Key)
	for _, field := range sort {
		assert.Equal(t, -1, field.Value)
	}
}

func TestListingBaseFilterAppliesOnlySetFields(t *testing.T) {
	s := &Store{marketID: "kisekka"}

	filter := s.listingBaseFilter(ListingFilters{})
	assert.Len(t, filter, 2)

	filter = s.listingBaseFilter(ListingFilters{
		Category:  "Brakes",
		Condition: models.ConditionUsed,
		Zone:      "KM3",
	})
	assert.Equal(t, models.PartCategory("Brakes"), filter["category"])
	assert.Equal(t, models.ConditionUsed, filter["condition"])
	assert.Equal(t, models.LocationZone("KM3"), filter["locationZone"])
}
