package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kisekka/internal/models"
)

// FeedPage is one page of the home feed plus the continuation token for the
// next one. NextCursor is empty when the page was not full.
type FeedPage struct {
	Posts      []models.FeedPost `json:"posts"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

func (s *Store) feedBaseFilter() bson.M {
	return bson.M{
		"marketId": s.marketID,
		"status":   models.PostStatusActive,
	}
}

// feedSort orders urgent requests first, then most recent activity. The _id
// column makes the order total so cursor continuation never skips or repeats.
func feedSort() bson.D {
	return bson.D{
		{Key: "urgent", Value: -1},
		{Key: "lastActivityAt", Value: -1},
		{Key: "_id", Value: -1},
	}
}

// GetFeedPage returns one page of active posts for the market. A non-empty
// cursorToken continues a previous page in the same sort order.
func (s *Store) GetFeedPage(ctx context.Context, pageSize int64, cursorToken string) (FeedPage, error) {
	pageSize = clampPageSize(pageSize)

	filter := s.feedBaseFilter()
	if cursorToken != "" {
		var cur feedCursor
		if err := decodeCursor(cursorToken, &cur); err != nil {
			return FeedPage{}, err
		}
		filter = bson.M{"$and": bson.A{filter, feedCursorFilter(cur)}}
	}

	opts := options.Find().SetSort(feedSort()).SetLimit(pageSize)

	cursor, err := s.feedPosts().Find(ctx, filter, opts)
	if err != nil {
		return FeedPage{}, fmt.Errorf("feed query: %w", err)
	}
	defer cursor.Close(ctx)

	posts, err := decodeFeedPosts(ctx, cursor)
	if err != nil {
		return FeedPage{}, err
	}

	page := FeedPage{Posts: posts}
	if int64(len(posts)) == pageSize {
		last := posts[len(posts)-1]
		page.NextCursor = encodeCursor(feedCursor{
			Urgent:         last.Urgent,
			LastActivityAt: last.LastActivityAt.UnixMilli(),
			ID:             last.ID,
		})
	}
	return page, nil
}

// GetFeedPostsByCategory lists recent active posts in one category.
func (s *Store) GetFeedPostsByCategory(ctx context.Context, category models.PartCategory, pageSize int64) ([]models.FeedPost, error) {
	filter := s.feedBaseFilter()
	filter["category"] = category

	opts := options.Find().
		SetSort(bson.D{{Key: "lastActivityAt", Value: -1}}).
		SetLimit(clampPageSize(pageSize))

	cursor, err := s.feedPosts().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("feed category query: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeFeedPosts(ctx, cursor)
}

// GetUserFeedPosts lists a user's own posts regardless of status.
func (s *Store) GetUserFeedPosts(ctx context.Context, authorID primitive.ObjectID) ([]models.FeedPost, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(50)

	cursor, err := s.feedPosts().Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("user posts query: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeFeedPosts(ctx, cursor)
}

// GetFeedPost fetches one post by id.
func (s *Store) GetFeedPost(ctx context.Context, id primitive.ObjectID) (models.FeedPost, error) {
	var raw bson.M
	err := s.feedPosts().FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.FeedPost{}, ErrNotFound
	}
	if err != nil {
		return models.FeedPost{}, err
	}
	return normalizeFeedPostDocument(raw)
}

// newFeedPost assigns the id, stamps server-side timestamps and writes the
// default counter and lifecycle state, ignoring whatever the caller put in
// those fields.
func newFeedPost(post models.FeedPost, marketID string, now time.Time) models.FeedPost {
	post.ID = primitive.NewObjectID()
	if post.MarketID == "" {
		post.MarketID = marketID
	}
	if post.Type == "" {
		post.Type = models.PostTypeRequest
	}
	post.ResponseCount = 0
	post.InterestedCount = 0
	post.Status = models.PostStatusActive
	post.CreatedAt = now
	post.LastActivityAt = now
	post.Author = nil
	return post
}

// CreateFeedPost stamps defaults and inserts the post.
func (s *Store) CreateFeedPost(ctx context.Context, post models.FeedPost) (models.FeedPost, error) {
	post = newFeedPost(post, s.marketID, time.Now().UTC())

	if _, err := s.feedPosts().InsertOne(ctx, post); err != nil {
		return models.FeedPost{}, fmt.Errorf("insert feed post: %w", err)
	}
	return post, nil
}

// UpdateFeedPost applies caller-approved fields and bumps lastActivityAt.
// Only the author may update; the filter enforces that in one round trip.
func (s *Store) UpdateFeedPost(ctx context.Context, id, authorID primitive.ObjectID, set bson.M) error {
	set["lastActivityAt"] = time.Now().UTC()

	res, err := s.feedPosts().UpdateOne(ctx,
		bson.M{"_id": id, "authorId": authorID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update feed post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFeedPost removes the author's post.
func (s *Store) DeleteFeedPost(ctx context.Context, id, authorID primitive.ObjectID) error {
	res, err := s.feedPosts().DeleteOne(ctx, bson.M{"_id": id, "authorId": authorID})
	if err != nil {
		return fmt.Errorf("delete feed post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// markInterestedUpdate is the whole interest mutation: a bare increment and
// an activity bump. There is no per-viewer membership filter, so every
// application adds one.
func markInterestedUpdate(now time.Time) bson.M {
	return bson.M{
		"$inc": bson.M{"interestedCount": 1},
		"$set": bson.M{"lastActivityAt": now},
	}
}

// MarkInterested bumps the interest counter and resurfaces the post in the
// feed. The increment is unconditional: repeated taps by the same viewer keep
// counting and there is no un-mark path.
func (s *Store) MarkInterested(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.feedPosts().UpdateByID(ctx, id, markInterestedUpdate(time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("mark interested: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
