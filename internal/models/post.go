package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPostImages bounds the images array on a part request.
const MaxPostImages = 4

// FeedPost is a buyer/mechanic part request surfaced in the home feed.
// responseCount and interestedCount are denormalized counters maintained by
// atomic increments; they are not re-derived by query.
type FeedPost struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type            PostType           `bson:"type" json:"type"`
	AuthorID        primitive.ObjectID `bson:"authorId" json:"authorId"`
	PartName        string             `bson:"partName" json:"partName"`
	CarModel        string             `bson:"carModel" json:"carModel"`
	Year            string             `bson:"year,omitempty" json:"year,omitempty"`
	Description     string             `bson:"description" json:"description"`
	Images          []string           `bson:"images" json:"images"`
	Urgent          bool               `bson:"urgent" json:"urgent"`
	LocationZone    LocationZone       `bson:"locationZone" json:"locationZone"`
	MarketID        string             `bson:"marketId" json:"marketId"`
	Category        PartCategory       `bson:"category,omitempty" json:"category,omitempty"`
	ResponseCount   int64              `bson:"responseCount" json:"responseCount"`
	InterestedCount int64              `bson:"interestedCount" json:"interestedCount"`
	LastActivityAt  time.Time          `bson:"lastActivityAt" json:"lastActivityAt"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	Status          PostStatus         `bson:"status" json:"status"`

	// Populated in responses only, never stored.
	Author *User `bson:"-" json:"author,omitempty"`
}
