package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kisekka/internal/models"
)

// CreateResponse inserts the response and then bumps the parent post's
// denormalized counter and lastActivityAt. The two writes are paired but not
// transactional: a crash between them leaves the counter one short of the
// real response count. Acceptable for this domain; the counter is advisory.
func (s *Store) CreateResponse(ctx context.Context, resp models.PostResponse) (models.PostResponse, error) {
	resp.ID = primitive.NewObjectID()
	resp.WhatsappTaps = 0
	resp.CreatedAt = time.Now().UTC()
	resp.Responder = nil

	if _, err := s.responses().InsertOne(ctx, resp); err != nil {
		return models.PostResponse{}, fmt.Errorf("insert response: %w", err)
	}

	update := bson.M{
		"$set": bson.M{"lastActivityAt": resp.CreatedAt},
	}

	var parentErr error
	switch resp.PostType {
	case models.ResponseToFeed:
		update["$inc"] = bson.M{"responseCount": 1}
		_, parentErr = s.feedPosts().UpdateByID(ctx, resp.PostID, update)
	case models.ResponseToMarketplace:
		update["$inc"] = bson.M{"engagementCount": 1}
		_, parentErr = s.listings().UpdateByID(ctx, resp.PostID, update)
	}
	if parentErr != nil {
		// The response itself is durable; only the counter bump failed.
		log.Printf("[STORE] [ERROR] response %s saved but parent counter bump failed: %v", resp.ID.Hex(), parentErr)
	}

	return resp, nil
}

// GetResponsesForPost lists responses oldest first, conversation order.
func (s *Store) GetResponsesForPost(ctx context.Context, postID primitive.ObjectID) ([]models.PostResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := s.responses().Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("responses query: %w", err)
	}
	defer cursor.Close(ctx)

	responses := make([]models.PostResponse, 0)
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// GetResponse fetches one response by id.
func (s *Store) GetResponse(ctx context.Context, id primitive.ObjectID) (models.PostResponse, error) {
	var resp models.PostResponse
	err := s.responses().FindOne(ctx, bson.M{"_id": id}).Decode(&resp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PostResponse{}, ErrNotFound
	}
	if err != nil {
		return models.PostResponse{}, err
	}
	return resp, nil
}

// TrackWhatsAppTap counts an outbound contact click on a response.
func (s *Store) TrackWhatsAppTap(ctx context.Context, responseID primitive.ObjectID) error {
	res, err := s.responses().UpdateByID(ctx, responseID, bson.M{
		"$inc": bson.M{"whatsappTaps": 1},
	})
	if err != nil {
		return fmt.Errorf("track whatsapp tap: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
