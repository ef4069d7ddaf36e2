package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/models"
	"kisekka/internal/store"
)

type createResponseInput struct {
	PostType models.ResponsePostType `json:"postType" binding:"required"`
	Message  string                  `json:"message" binding:"required"`
	Price    *int64                  `json:"price"`
	Images   []string                `json:"images"`
}

// CreateResponse records an answer on a post or listing. When the responder
// is not the author, the author gets a notification in the same request; a
// failed notification write is logged and swallowed so the response itself
// still lands.
func CreateResponse(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /posts/:id/responses"
		defer handlePanic(c, route)

		postID, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid post id")
			return
		}

		var input createResponseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if !input.PostType.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown post type")
			return
		}
		if input.Price != nil && *input.Price < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must not be negative")
			return
		}

		responderID := currentUserID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		authorID, subject, err := responseTarget(ctx, s, input.PostType, postID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "post not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		responder, err := s.GetUser(ctx, responderID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		resp, err := s.CreateResponse(ctx, models.PostResponse{
			PostID:      postID,
			PostType:    input.PostType,
			ResponderID: responderID,
			ShopID:      responder.ShopID,
			Message:     input.Message,
			Price:       input.Price,
			Images:      input.Images,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if shouldNotify(authorID, responderID) {
			_, err := s.CreateNotification(ctx, responseNotification(authorID, postID, input.PostType, responder.DisplayName, subject))
			if err != nil {
				log.Printf("[%s] response %s saved but notification failed: %v", route, resp.ID.Hex(), err)
			}
		}

		log.Printf("[%s] response %s on %s by %s", route, resp.ID.Hex(), postID.Hex(), responderID.Hex())
		c.JSON(http.StatusCreated, resp)
	}
}

// shouldNotify gates the fan-out: answering your own post stays silent.
func shouldNotify(authorID, responderID primitive.ObjectID) bool {
	return authorID != responderID
}

// responseNotification builds the notification written to a post's author
// when someone else responds.
func responseNotification(authorID, postID primitive.ObjectID, postType models.ResponsePostType, responderName, subject string) models.Notification {
	return models.Notification{
		UserID:        authorID,
		Type:          models.NotificationResponse,
		Title:         "New Response",
		Body:          fmt.Sprintf("%s responded to your request for %s", responderName, subject),
		ReferenceID:   postID,
		ReferenceType: string(postType),
	}
}

// responseTarget resolves who owns the post being answered and what it is
// about, for the notification body.
func responseTarget(ctx context.Context, s *store.Store, postType models.ResponsePostType, postID primitive.ObjectID) (primitive.ObjectID, string, error) {
	if postType == models.ResponseToMarketplace {
		listing, err := s.GetListing(ctx, postID)
		if err != nil {
			return primitive.NilObjectID, "", err
		}
		return listing.SellerID, listing.Title, nil
	}

	post, err := s.GetFeedPost(ctx, postID)
	if err != nil {
		return primitive.NilObjectID, "", err
	}
	return post.AuthorID, post.PartName, nil
}

// GetPostResponses lists responses on a post, oldest first, with responders
// attached.
func GetPostResponses(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /posts/:id/responses"
		defer handlePanic(c, route)

		postID, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid post id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		responses, err := s.GetResponsesForPost(ctx, postID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := s.EnrichResponses(ctx, responses, store.UserCache{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"responses": responses})
	}
}

// TrackWhatsAppTap counts an outbound contact click and mirrors it into the
// activity log. The deep link itself is built client-side; this endpoint only
// keeps score.
func TrackWhatsAppTap(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /responses/:id/whatsapp-tap"
		defer handlePanic(c, route)

		responseID, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid response id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		err := s.TrackWhatsAppTap(ctx, responseID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "response not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		userID := currentUserID(c)
		if err := s.LogActivity(ctx, models.ActivitySignal{
			Type:        models.SignalWhatsAppTap,
			ReferenceID: responseID,
			UserID:      &userID,
		}); err != nil {
			log.Printf("[%s] tap counted but signal write failed: %v", route, err)
		}

		c.JSON(http.StatusOK, gin.H{"tracked": true})
	}
}
