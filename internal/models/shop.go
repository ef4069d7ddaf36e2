package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shop is owned by exactly one user. verified is flipped by moderation only.
type Shop struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID        primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name           string             `bson:"name" json:"name"`
	Zone           LocationZone       `bson:"zone" json:"zone"`
	Categories     StringList         `bson:"categories" json:"categories"`
	WhatsappNumber string             `bson:"whatsappNumber" json:"whatsappNumber"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	Description    string             `bson:"description" json:"description"`
	AvatarURL      string             `bson:"avatarUrl" json:"avatarUrl"`
	MarketID       string             `bson:"marketId" json:"marketId"`
	Verified       bool               `bson:"verified" json:"verified"`
	LastActivityAt time.Time          `bson:"lastActivityAt" json:"lastActivityAt"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
