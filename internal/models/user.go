package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a market participant. Accounts are never hard-deleted.
type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DisplayName    string              `bson:"displayName" json:"displayName"`
	PhoneNumber    string              `bson:"phoneNumber" json:"phoneNumber"`
	WhatsappNumber string              `bson:"whatsappNumber" json:"whatsappNumber"`
	Role           UserRole            `bson:"role" json:"role"`
	AvatarURL      string              `bson:"avatarUrl" json:"avatarUrl"`
	LocationZone   LocationZone        `bson:"locationZone" json:"locationZone"`
	ShopID         *primitive.ObjectID `bson:"shopId,omitempty" json:"shopId,omitempty"`
	MarketID       string              `bson:"marketId" json:"marketId"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	LastActiveAt   time.Time           `bson:"lastActiveAt" json:"lastActiveAt"`
}
