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

// CreateShop writes a new shop document. Shops start unverified.
func (s *Store) CreateShop(ctx context.Context, shop models.Shop) (models.Shop, error) {
	now := time.Now().UTC()

	shop.ID = primitive.NewObjectID()
	if shop.MarketID == "" {
		shop.MarketID = s.marketID
	}
	shop.Verified = false
	shop.CreatedAt = now
	shop.LastActivityAt = now

	if _, err := s.shops().InsertOne(ctx, shop); err != nil {
		return models.Shop{}, fmt.Errorf("insert shop: %w", err)
	}
	return shop, nil
}

// GetShop fetches one shop by id.
func (s *Store) GetShop(ctx context.Context, id primitive.ObjectID) (models.Shop, error) {
	var shop models.Shop
	err := s.shops().FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Shop{}, ErrNotFound
	}
	if err != nil {
		return models.Shop{}, err
	}
	return shop, nil
}

// GetAllShops lists shops in the market up to pageSize.
func (s *Store) GetAllShops(ctx context.Context, pageSize int64) ([]models.Shop, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	opts := options.Find().SetLimit(pageSize)
	cursor, err := s.shops().Find(ctx, bson.M{"marketId": s.marketID}, opts)
	if err != nil {
		return nil, fmt.Errorf("shops query: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeShops(ctx, cursor)
}

// GetShopsByZone lists shops in one market zone.
func (s *Store) GetShopsByZone(ctx context.Context, zone models.LocationZone) ([]models.Shop, error) {
	cursor, err := s.shops().Find(ctx, bson.M{
		"marketId": s.marketID,
		"zone":     zone,
	})
	if err != nil {
		return nil, fmt.Errorf("shops by zone query: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeShops(ctx, cursor)
}

// GetShopsByCategory lists shops stocking one part category.
func (s *Store) GetShopsByCategory(ctx context.Context, category models.PartCategory) ([]models.Shop, error) {
	cursor, err := s.shops().Find(ctx, bson.M{
		"marketId":   s.marketID,
		"categories": category,
	})
	if err != nil {
		return nil, fmt.Errorf("shops by category query: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeShops(ctx, cursor)
}

// UpdateShop applies owner edits and bumps lastActivityAt.
func (s *Store) UpdateShop(ctx context.Context, id, ownerID primitive.ObjectID, set bson.M) error {
	set["lastActivityAt"] = time.Now().UTC()

	res, err := s.shops().UpdateOne(ctx,
		bson.M{"_id": id, "ownerId": ownerID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeShops(ctx context.Context, cursor *mongo.Cursor) ([]models.Shop, error) {
	shops := make([]models.Shop, 0)
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}
