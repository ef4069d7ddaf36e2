package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxListingImages bounds the images array on a marketplace listing.
const MaxListingImages = 5

// CurrencyUGX is the only currency the market trades in.
const CurrencyUGX = "UGX"

// MarketplaceListing is an item a seller has put up for sale, optionally tied
// to a shop.
type MarketplaceListing struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SellerID        primitive.ObjectID  `bson:"sellerId" json:"sellerId"`
	ShopID          *primitive.ObjectID `bson:"shopId,omitempty" json:"shopId,omitempty"`
	Title           string              `bson:"title" json:"title"`
	Price           int64               `bson:"price" json:"price"`
	Currency        string              `bson:"currency" json:"currency"`
	Condition       ListingCondition    `bson:"condition" json:"condition"`
	Category        PartCategory        `bson:"category" json:"category"`
	CarModel        string              `bson:"carModel,omitempty" json:"carModel,omitempty"`
	Description     string              `bson:"description" json:"description"`
	Images          []string            `bson:"images" json:"images"`
	LocationZone    LocationZone        `bson:"locationZone" json:"locationZone"`
	MarketID        string              `bson:"marketId" json:"marketId"`
	LastActivityAt  time.Time           `bson:"lastActivityAt" json:"lastActivityAt"`
	EngagementCount int64               `bson:"engagementCount" json:"engagementCount"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	Status          ListingStatus       `bson:"status" json:"status"`

	// Populated in responses only, never stored.
	Seller *User `bson:"-" json:"seller,omitempty"`
	Shop   *Shop `bson:"-" json:"shop,omitempty"`
}
