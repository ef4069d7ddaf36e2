package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostResponse is an answer to a feed post or a marketplace listing,
// discriminated by PostType. whatsappTaps counts outbound contact clicks.
type PostResponse struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostID       primitive.ObjectID  `bson:"postId" json:"postId"`
	PostType     ResponsePostType    `bson:"postType" json:"postType"`
	ResponderID  primitive.ObjectID  `bson:"responderId" json:"responderId"`
	ShopID       *primitive.ObjectID `bson:"shopId,omitempty" json:"shopId,omitempty"`
	Message      string              `bson:"message" json:"message"`
	Price        *int64              `bson:"price,omitempty" json:"price,omitempty"`
	Images       []string            `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	WhatsappTaps int64               `bson:"whatsappTaps" json:"whatsappTaps"`

	Responder *User `bson:"-" json:"responder,omitempty"`
}
