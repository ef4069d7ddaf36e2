package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureFeedPostIndexes creates the compound index backing the feed sort
// (urgent desc, lastActivityAt desc, _id desc) plus the author lookup.
func EnsureFeedPostIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("feedPosts").Indexes()

	feedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "marketId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "urgent", Value: -1},
			{Key: "lastActivityAt", Value: -1},
			{Key: "_id", Value: -1},
		},
		Options: options.Index().SetName("feed_sort"),
	}

	authorIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("author_createdAt"),
	}

	log.Println("EnsureFeedPostIndexes: creating feed indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{feedIndex, authorIndex})
	if err != nil {
		log.Println("EnsureFeedPostIndexes: index error:", err)
		return err
	}
	return nil
}

// EnsureListingIndexes creates indexes for the marketplace browse query and
// the shop-scoped lookup. Shop pages query by shopId directly instead of
// filtering a fetched page.
func EnsureListingIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("marketplaceListings").Indexes()

	browseIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "marketId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: -1},
			{Key: "_id", Value: -1},
		},
		Options: options.Index().SetName("browse_createdAt"),
	}

	shopIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "shopId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("shopId_createdAt"),
	}

	sellerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("sellerId_createdAt"),
	}

	log.Println("EnsureListingIndexes: creating listing indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{browseIndex, shopIndex, sellerIndex})
	if err != nil {
		log.Println("EnsureListingIndexes: index error:", err)
		return err
	}
	return nil
}

// EnsureResponseIndexes backs the responses-for-post query.
func EnsureResponseIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("responses").Indexes()

	postIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("postId_createdAt"),
	}

	_, err := indexes.CreateOne(ctx, postIndex)
	if err != nil {
		log.Println("EnsureResponseIndexes: index error:", err)
		return err
	}
	return nil
}

// EnsureNotificationIndexes backs the inbox list and the unread count.
func EnsureNotificationIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("notifications").Indexes()

	inboxIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("userId_createdAt"),
	}

	unreadIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}},
		Options: options.Index().SetName("userId_read"),
	}

	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{inboxIndex, unreadIndex})
	if err != nil {
		log.Println("EnsureNotificationIndexes: index error:", err)
		return err
	}
	return nil
}

// EnsureUserIndexes keeps one account per phone number.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	phoneIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "phoneNumber", Value: 1}},
		Options: options.Index().
			SetName("phoneNumber_unique").
			SetUnique(true),
	}

	_, err := indexes.CreateOne(ctx, phoneIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: phone index error:", err)
		return err
	}
	return nil
}

// EnsureShopIndexes backs zone and category shop browsing.
func EnsureShopIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("shops").Indexes()

	zoneIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "marketId", Value: 1}, {Key: "zone", Value: 1}},
		Options: options.Index().SetName("marketId_zone"),
	}

	categoryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "marketId", Value: 1}, {Key: "categories", Value: 1}},
		Options: options.Index().SetName("marketId_categories"),
	}

	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{zoneIndex, categoryIndex})
	if err != nil {
		log.Println("EnsureShopIndexes: index error:", err)
		return err
	}
	return nil
}
