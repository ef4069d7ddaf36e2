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

func validFeedPostDoc() bson.M {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return bson.M{
		"_id":             primitive.NewObjectID(),
		"type":            "request",
		"authorId":        primitive.NewObjectID(),
		"partName":        "Front bumper",
		"carModel":        "Toyota Premio",
		"description":     "Need a 2015 bumper, any colour",
		"images":          []string{},
		"urgent":          true,
		"locationZone":    "KM2",
		"marketId":        "kisekka",
		"category":        "Body Parts",
		"responseCount":   int32(3),
		"interestedCount": int32(1),
		"lastActivityAt":  now,
		"createdAt":       now.Add(-time.Hour),
		"status":          "active",
	}
}

func TestNormalizeFeedPostDocument(t *testing.T) {
	post, err := normalizeFeedPostDocument(validFeedPostDoc())
	require.NoError(t, err)

	assert.Equal(t, int64(3), post.ResponseCount)
	assert.Equal(t, int64(1), post.InterestedCount)
	assert.Equal(t, models.PostStatusActive, post.Status)
	assert.True(t, post.Urgent)
}

func TestNormalizeFeedPostCoercesMissingCounters(t *testing.T) {
	doc := validFeedPostDoc()
	delete(doc, "responseCount")
	doc["interestedCount"] = float64(7)

	post, err := normalizeFeedPostDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, int64(0), post.ResponseCount)
	assert.Equal(t, int64(7), post.InterestedCount)
}

func TestNormalizeFeedPostRejectsUnknownZone(t *testing.T) {
	doc := validFeedPostDoc()
	doc["locationZone"] = "Downtown"

	_, err := normalizeFeedPostDocument(doc)
	assert.ErrorIs(t, err, ErrInvalidDoc)
}

func TestNormalizeFeedPostRejectsUnknownStatus(t *testing.T) {
	doc := validFeedPostDoc()
	doc["status"] = "archived"

	_, err := normalizeFeedPostDocument(doc)
	assert.ErrorIs(t, err, ErrInvalidDoc)
}

func TestNormalizeFeedPostRepairsActivityBeforeCreation(t *testing.T) {
	doc := validFeedPostDoc()
	created := doc["createdAt"].(time.Time)
	doc["lastActivityAt"] = created.Add(-time.Minute)

	post, err := normalizeFeedPostDocument(doc)
	require.NoError(t, err)
	assert.True(t, post.LastActivityAt.Equal(post.CreatedAt))
}

func validListingDoc() bson.M {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return bson.M{
		"_id":             primitive.NewObjectID(),
		"sellerId":        primitive.NewObjectID(),
		"title":           "Corolla headlights (pair)",
		"price":           int64(450000),
		"currency":        "UGX",
		"condition":       "used",
		"category":        "Lights",
		"description":     "Good condition, both working",
		"images":          []string{"https://cdn.example.com/listings/a.jpg"},
		"locationZone":    "KM1",
		"marketId":        "kisekka",
		"engagementCount": int32(0),
		"lastActivityAt":  now,
		"createdAt":       now,
		"status":          "active",
	}
}

func TestNormalizeListingDocument(t *testing.T) {
	listing, err := normalizeListingDocument(validListingDoc())
	require.NoError(t, err)

	assert.Equal(t, int64(450000), listing.Price)
	assert.Equal(t, models.CurrencyUGX, listing.Currency)
	assert.Equal(t, models.ListingStatusActive, listing.Status)
}

func TestNormalizeListingDefaultsCurrency(t *testing.T) {
	doc := validListingDoc()
	delete(doc, "currency")

	listing, err := normalizeListingDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyUGX, listing.Currency)
}

func TestNormalizeListingRejectsBadCondition(t *testing.T) {
	doc := validListingDoc()
	doc["condition"] = "broken"

	_, err := normalizeListingDocument(doc)
	assert.ErrorIs(t, err, ErrInvalidDoc)
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, int64(DefaultPageSize), clampPageSize(0))
	assert.Equal(t, int64(DefaultPageSize), clampPageSize(-5))
	assert.Equal(t, int64(20), clampPageSize(20))
	assert.Equal(t, int64(MaxPageSize), clampPageSize(5000))
}
