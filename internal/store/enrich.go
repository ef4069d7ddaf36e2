package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/models"
)

// UserCache maps author ids to fetched users across pages of a session. An id
// already present is never fetched again.
type UserCache map[primitive.ObjectID]*models.User

// ResolveAuthors fetches every distinct id missing from the cache in a single
// query and merges the results in. Ids that resolve to no document are cached
// as nil so they are not retried on the next page.
func (s *Store) ResolveAuthors(ctx context.Context, ids []primitive.ObjectID, cache UserCache) error {
	missing := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := cache[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	cursor, err := s.users().Find(ctx, bson.M{"_id": bson.M{"$in": missing}})
	if err != nil {
		return fmt.Errorf("resolve authors: %w", err)
	}
	defer cursor.Close(ctx)

	found := make(map[primitive.ObjectID]*models.User, len(missing))
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return err
		}
		found[user.ID] = &user
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	for _, id := range missing {
		cache[id] = found[id]
	}
	return nil
}

// EnrichFeedPosts populates each post's Author field from the cache, fetching
// missing authors first.
func (s *Store) EnrichFeedPosts(ctx context.Context, posts []models.FeedPost, cache UserCache) error {
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.AuthorID)
	}
	if err := s.ResolveAuthors(ctx, ids, cache); err != nil {
		return err
	}
	for i := range posts {
		posts[i].Author = cache[posts[i].AuthorID]
	}
	return nil
}

// EnrichListings populates each listing's Seller field from the cache.
func (s *Store) EnrichListings(ctx context.Context, listings []models.MarketplaceListing, cache UserCache) error {
	ids := make([]primitive.ObjectID, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.SellerID)
	}
	if err := s.ResolveAuthors(ctx, ids, cache); err != nil {
		return err
	}
	for i := range listings {
		listings[i].Seller = cache[listings[i].SellerID]
	}
	return nil
}

// EnrichResponses populates each response's Responder field from the cache.
func (s *Store) EnrichResponses(ctx context.Context, responses []models.PostResponse, cache UserCache) error {
	ids := make([]primitive.ObjectID, 0, len(responses))
	for _, resp := range responses {
		ids = append(ids, resp.ResponderID)
	}
	if err := s.ResolveAuthors(ctx, ids, cache); err != nil {
		return err
	}
	for i := range responses {
		responses[i].Responder = cache[responses[i].ResponderID]
	}
	return nil
}
