package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"kisekka/internal/models"
)

// CreateUser writes a new account at onboarding time.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now().UTC()

	user.ID = primitive.NewObjectID()
	if user.MarketID == "" {
		user.MarketID = s.marketID
	}
	user.CreatedAt = now
	user.LastActiveAt = now

	if _, err := s.users().InsertOne(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// GetUser fetches one account by id.
func (s *Store) GetUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetUserByPhone looks up an account by its verified phone number.
func (s *Store) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"phoneNumber": phone}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser applies profile edits and bumps lastActiveAt.
func (s *Store) UpdateUser(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["lastActiveAt"] = time.Now().UTC()

	res, err := s.users().UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachShop links a freshly created shop to its owner.
func (s *Store) AttachShop(ctx context.Context, userID, shopID primitive.ObjectID) error {
	return s.UpdateUser(ctx, userID, bson.M{"shopId": shopID})
}
