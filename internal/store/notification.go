package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kisekka/internal/models"
)

// CreateNotification writes one unread notification. Best effort, in-band
// with the triggering request; there is no retry path.
func (s *Store) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.ID = primitive.NewObjectID()
	n.Read = false
	n.CreatedAt = time.Now().UTC()

	if _, err := s.notifications().InsertOne(ctx, n); err != nil {
		return models.Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// GetNotifications lists a user's inbox, newest first.
func (s *Store) GetNotifications(ctx context.Context, userID primitive.ObjectID, pageSize int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(clampPageSize(pageSize))

	cursor, err := s.notifications().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("notifications query: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips the read flag on first click-through. The filter
// includes the owner so one user cannot mark another's notification.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.notifications().UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UnreadNotificationCount counts the badge number for the bottom nav.
func (s *Store) UnreadNotificationCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := s.notifications().CountDocuments(ctx, bson.M{
		"userId": userID,
		"read":   false,
	})
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}
