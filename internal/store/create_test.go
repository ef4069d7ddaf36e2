package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/models"
)

func TestNewFeedPostDefaults(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	post := newFeedPost(models.FeedPost{
		AuthorID: primitive.NewObjectID(),
		PartName: "Brake pads",
		CarModel: "Toyota Premio",
		// Caller-supplied state that must be overwritten.
		ResponseCount:   9,
		InterestedCount: 9,
		Status:          models.PostStatusResolved,
	}, "kisekka", now)

	assert.False(t, post.ID.IsZero())
	assert.Equal(t, int64(0), post.ResponseCount)
	assert.Equal(t, int64(0), post.InterestedCount)
	assert.Equal(t, models.PostStatusActive, post.Status)
	assert.Equal(t, now, post.CreatedAt)
	assert.Equal(t, now, post.LastActivityAt)
	assert.Equal(t, "kisekka", post.MarketID)
	assert.Equal(t, models.PostTypeRequest, post.Type)
	assert.Nil(t, post.Author)
}

func TestNewFeedPostKeepsExplicitTypeAndMarket(t *testing.T) {
	post := newFeedPost(models.FeedPost{
		Type:     models.PostTypeSocialSale,
		MarketID: "other-market",
	}, "kisekka", time.Now().UTC())

	assert.Equal(t, models.PostTypeSocialSale, post.Type)
	assert.Equal(t, "other-market", post.MarketID)
}

func TestNewListingDefaults(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	listing := newListing(models.MarketplaceListing{
		SellerID: primitive.NewObjectID(),
		Title:    "Corolla headlight",
		Price:    450000,
		Currency: "USD",
		Status:   models.ListingStatusSold,
	}, "kisekka", now)

	assert.False(t, listing.ID.IsZero())
	assert.Equal(t, models.CurrencyUGX, listing.Currency)
	assert.Equal(t, int64(0), listing.EngagementCount)
	assert.Equal(t, models.ListingStatusActive, listing.Status)
	assert.Equal(t, now, listing.CreatedAt)
	assert.Equal(t, now, listing.LastActivityAt)
	assert.Equal(t, "kisekka", listing.MarketID)
	assert.Nil(t, listing.Seller)
	assert.Nil(t, listing.Shop)
}

func TestMarkInterestedUpdateIsUnconditional(t *testing.T) {
	now := time.Now().UTC()
	update := markInterestedUpdate(now)

	inc, ok := update["$inc"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, inc["interestedCount"], 1)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, now, set["lastActivityAt"])

	// No membership guard anywhere: nothing in the update references the
	// viewer, so applying it twice adds two.
	assert.Len(t, update, 2)
	counter := int64(0)
	for i := 0; i < 2; i++ {
		counter += int64(inc["interestedCount"].(int))
	}
	assert.Equal(t, int64(2), counter)
}
