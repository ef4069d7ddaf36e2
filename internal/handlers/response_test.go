package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/models"
)

func TestShouldNotify(t *testing.T) {
	author := primitive.NewObjectID()
	responder := primitive.NewObjectID()

	assert.True(t, shouldNotify(author, responder))
	assert.False(t, shouldNotify(author, author), "answering your own post must stay silent")
}

func TestResponseNotification(t *testing.T) {
	author := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	n := responseNotification(author, postID, models.ResponseToFeed, "Okello", "Front bumper")

	assert.Equal(t, author, n.UserID)
	assert.Equal(t, models.NotificationResponse, n.Type)
	assert.Equal(t, "New Response", n.Title)
	assert.Equal(t, "Okello responded to your request for Front bumper", n.Body)
	assert.Equal(t, postID, n.ReferenceID)
	assert.Equal(t, "feed", n.ReferenceType)
	assert.False(t, n.Read)
}

func TestResponseNotificationForListing(t *testing.T) {
	n := responseNotification(primitive.NewObjectID(), primitive.NewObjectID(), models.ResponseToMarketplace, "Kasule", "Corolla headlight")

	assert.Equal(t, "marketplace", n.ReferenceType)
	assert.Equal(t, "Kasule responded to your request for Corolla headlight", n.Body)
}
