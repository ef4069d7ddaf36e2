package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is written synchronously when a response lands on someone
// else's post. Delivery is in-band with the triggering request; there is no
// retry or push integration.
type Notification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Type          NotificationType   `bson:"type" json:"type"`
	Title         string             `bson:"title" json:"title"`
	Body          string             `bson:"body" json:"body"`
	ReferenceID   primitive.ObjectID `bson:"referenceId" json:"referenceId"`
	ReferenceType string             `bson:"referenceType" json:"referenceType"`
	Read          bool               `bson:"read" json:"read"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
