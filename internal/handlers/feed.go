package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"kisekka/internal/models"
	"kisekka/internal/store"
)

type createPostInput struct {
	Type         models.PostType     `json:"type" binding:"required"`
	PartName     string              `json:"partName" binding:"required"`
	CarModel     string              `json:"carModel" binding:"required"`
	Year         string              `json:"year"`
	Description  string              `json:"description"`
	Images       []string            `json:"images"`
	Urgent       bool                `json:"urgent"`
	LocationZone models.LocationZone `json:"locationZone" binding:"required"`
	Category     models.PartCategory `json:"category"`
}

type updatePostInput struct {
	PartName    *string            `json:"partName"`
	CarModel    *string            `json:"carModel"`
	Year        *string            `json:"year"`
	Description *string            `json:"description"`
	Urgent      *bool              `json:"urgent"`
	Status      *models.PostStatus `json:"status"`
}

// GetFeed serves the cursor-paginated home feed.
func GetFeed(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /feed"
		defer handlePanic(c, route)

		limit, err := parsePageSize(c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid limit")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		page, err := s.GetFeedPage(ctx, limit, c.Query("cursor"))
		if errors.Is(err, store.ErrBadCursor) {
			respondWithError(c, http.StatusBadRequest, route, "invalid cursor")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := s.EnrichFeedPosts(ctx, page.Posts, store.UserCache{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d posts", route, len(page.Posts))
		c.JSON(http.StatusOK, gin.H{
			"posts":      page.Posts,
			"nextCursor": page.NextCursor,
		})
	}
}

// GetFeedByCategory serves the newest active posts in one part category.
func GetFeedByCategory(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /feed/category"
		defer handlePanic(c, route)

		category := models.PartCategory(c.Param("category"))
		if !category.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown category")
			return
		}

		limit, err := parsePageSize(c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid limit")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		posts, err := s.GetFeedPostsByCategory(ctx, category, limit)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := s.EnrichFeedPosts(ctx, posts, store.UserCache{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"posts": posts})
	}
}

// CreateFeedPost publishes a part request or social sale for the caller.
func CreateFeedPost(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /posts"
		defer handlePanic(c, route)

		var input createPostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if msg, ok := validateCreatePost(input); !ok {
			respondWithError(c, http.StatusBadRequest, route, msg)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		post, err := s.CreateFeedPost(ctx, models.FeedPost{
			Type:         input.Type,
			AuthorID:     currentUserID(c),
			PartName:     input.PartName,
			CarModel:     input.CarModel,
			Year:         input.Year,
			Description:  input.Description,
			Images:       input.Images,
			Urgent:       input.Urgent,
			LocationZone: input.LocationZone,
			Category:     input.Category,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] post %s created by %s", route, post.ID.Hex(), post.AuthorID.Hex())
		c.JSON(http.StatusCreated, post)
	}
}

func validateCreatePost(input createPostInput) (string, bool) {
	if !input.Type.Valid() {
		return "unknown post type", false
	}
	if !input.LocationZone.Valid() {
		return "unknown location zone", false
	}
	if input.Category != "" && !input.Category.Valid() {
		return "unknown category", false
	}
	if len(input.Images) > models.MaxPostImages {
		return "too many images", false
	}
	return "", true
}

// GetFeedPost serves one post with its author attached.
func GetFeedPost(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /posts/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid post id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		post, err := s.GetFeedPost(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "post not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		posts := []models.FeedPost{post}
		if err := s.EnrichFeedPosts(ctx, posts, store.UserCache{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, posts[0])
	}
}

// UpdateFeedPost edits a post. Only the author can touch it; the ownership
// check lives in the update filter so a mismatch reads as not found.
func UpdateFeedPost(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /posts/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid post id")
			return
		}

		var input updatePostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		set := bson.M{}
		if input.PartName != nil {
			set["partName"] = *input.PartName
		}
		if input.CarModel != nil {
			set["carModel"] = *input.CarModel
		}
		if input.Year != nil {
			set["year"] = *input.Year
		}
		if input.Description != nil {
			set["description"] = *input.Description
		}
		if input.Urgent != nil {
			set["urgent"] = *input.Urgent
		}
		if input.Status != nil {
			if !input.Status.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown status")
				return
			}
			set["status"] = *input.Status
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		err := s.UpdateFeedPost(ctx, id, currentUserID(c), set)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "post not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

// DeleteFeedPost removes the caller's post.
func DeleteFeedPost(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /posts/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid post id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		err := s.DeleteFeedPost(ctx, id, currentUserID(c))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "post not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

// MarkInterested bumps the interested counter. The increment is fire-many:
// tapping twice counts twice.
func MarkInterested(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /posts/:id/interested"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid post id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		err := s.MarkInterested(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "post not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"interested": true})
	}
}

// GetMyPosts lists the caller's own posts regardless of status.
func GetMyPosts(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /me/posts"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		posts, err := s.GetUserFeedPosts(ctx, currentUserID(c))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"posts": posts})
	}
}
