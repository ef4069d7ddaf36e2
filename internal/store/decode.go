package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"kisekka/internal/models"
)

// The store decodes via raw documents and validates shapes before handing
// them to callers. A schemaless backend will happily return documents written
// by older clients; anything that fails the closed enums is rejected here
// instead of being trusted downstream.

func coerceInt64(raw bson.M, key string) {
	if val, ok := raw[key]; ok {
		switch typed := val.(type) {
		case int32:
			raw[key] = int64(typed)
		case int64:
			// already the right width
		case float64:
			raw[key] = int64(typed)
		case int:
			raw[key] = int64(typed)
		default:
			raw[key] = int64(0)
		}
	} else {
		raw[key] = int64(0)
	}
}

func normalizeFeedPostDocument(raw bson.M) (models.FeedPost, error) {
	coerceInt64(raw, "responseCount")
	coerceInt64(raw, "interestedCount")

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.FeedPost{}, err
	}

	var post models.FeedPost
	if err := bson.Unmarshal(data, &post); err != nil {
		return models.FeedPost{}, err
	}

	if !post.Status.Valid() {
		return models.FeedPost{}, fmt.Errorf("%w: feed post %s has status %q", ErrInvalidDoc, post.ID.Hex(), post.Status)
	}
	if !post.LocationZone.Valid() {
		return models.FeedPost{}, fmt.Errorf("%w: feed post %s has zone %q", ErrInvalidDoc, post.ID.Hex(), post.LocationZone)
	}
	if post.Category != "" && !post.Category.Valid() {
		return models.FeedPost{}, fmt.Errorf("%w: feed post %s has category %q", ErrInvalidDoc, post.ID.Hex(), post.Category)
	}
	if post.LastActivityAt.Before(post.CreatedAt) {
		// Activity must never predate creation; repair rather than reject so
		// a clock-skewed historic write cannot poison the feed.
		post.LastActivityAt = post.CreatedAt
	}
	return post, nil
}

func decodeFeedPosts(ctx context.Context, cursor *mongo.Cursor) ([]models.FeedPost, error) {
	posts := make([]models.FeedPost, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		post, err := normalizeFeedPostDocument(raw)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func normalizeListingDocument(raw bson.M) (models.MarketplaceListing, error) {
	coerceInt64(raw, "engagementCount")
	coerceInt64(raw, "price")

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.MarketplaceListing{}, err
	}

	var listing models.MarketplaceListing
	if err := bson.Unmarshal(data, &listing); err != nil {
		return models.MarketplaceListing{}, err
	}

	if !listing.Status.Valid() {
		return models.MarketplaceListing{}, fmt.Errorf("%w: listing %s has status %q", ErrInvalidDoc, listing.ID.Hex(), listing.Status)
	}
	if !listing.Condition.Valid() {
		return models.MarketplaceListing{}, fmt.Errorf("%w: listing %s has condition %q", ErrInvalidDoc, listing.ID.Hex(), listing.Condition)
	}
	if !listing.Category.Valid() {
		return models.MarketplaceListing{}, fmt.Errorf("%w: listing %s has category %q", ErrInvalidDoc, listing.ID.Hex(), listing.Category)
	}
	if !listing.LocationZone.Valid() {
		return models.MarketplaceListing{}, fmt.Errorf("%w: listing %s has zone %q", ErrInvalidDoc, listing.ID.Hex(), listing.LocationZone)
	}
	if listing.Currency == "" {
		listing.Currency = models.CurrencyUGX
	}
	if listing.LastActivityAt.Before(listing.CreatedAt) {
		listing.LastActivityAt = listing.CreatedAt
	}
	return listing, nil
}

func decodeListings(ctx context.Context, cursor *mongo.Cursor) ([]models.MarketplaceListing, error) {
	listings := make([]models.MarketplaceListing, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		listing, err := normalizeListingDocument(raw)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}
