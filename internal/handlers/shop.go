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
	"kisekka/internal/whatsapp"
)

type createShopInput struct {
	Name           string              `json:"name" binding:"required"`
	Zone           models.LocationZone `json:"zone" binding:"required"`
	Categories     []string            `json:"categories"`
	WhatsappNumber string              `json:"whatsappNumber" binding:"required"`
	PhoneNumber    string              `json:"phoneNumber"`
	Description    string              `json:"description"`
	AvatarURL      string              `json:"avatarUrl"`
}

type updateShopInput struct {
	Name           *string  `json:"name"`
	Categories     []string `json:"categories"`
	WhatsappNumber *string  `json:"whatsappNumber"`
	PhoneNumber    *string  `json:"phoneNumber"`
	Description    *string  `json:"description"`
	AvatarURL      *string  `json:"avatarUrl"`
}

// CreateShop opens a shop for the caller and links it to their account. One
// shop per user; a second attempt is rejected before the insert.
func CreateShop(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /shops"
		defer handlePanic(c, route)

		var input createShopInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if !input.Zone.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown zone")
			return
		}
		for _, category := range input.Categories {
			if !models.PartCategory(category).Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown category")
				return
			}
		}

		ownerID := currentUserID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		owner, err := s.GetUser(ctx, ownerID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if owner.ShopID != nil {
			respondWithError(c, http.StatusConflict, route, "user already owns a shop")
			return
		}

		shop, err := s.CreateShop(ctx, models.Shop{
			OwnerID:        ownerID,
			Name:           input.Name,
			Zone:           input.Zone,
			Categories:     input.Categories,
			WhatsappNumber: whatsapp.NormalizeNumber(input.WhatsappNumber),
			PhoneNumber:    input.PhoneNumber,
			Description:    input.Description,
			AvatarURL:      input.AvatarURL,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := s.AttachShop(ctx, ownerID, shop.ID); err != nil {
			log.Printf("[%s] shop %s created but user link failed: %v", route, shop.ID.Hex(), err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] shop %s opened by %s", route, shop.ID.Hex(), ownerID.Hex())
		c.JSON(http.StatusCreated, shop)
	}
}

// GetShops lists shops, optionally narrowed by zone or category.
func GetShops(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /shops"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var (
			shops []models.Shop
			err   error
		)
		switch {
		case c.Query("zone") != "":
			zone := models.LocationZone(c.Query("zone"))
			if !zone.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown zone")
				return
			}
			shops, err = s.GetShopsByZone(ctx, zone)
		case c.Query("category") != "":
			category := models.PartCategory(c.Query("category"))
			if !category.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown category")
				return
			}
			shops, err = s.GetShopsByCategory(ctx, category)
		default:
			var limit int64
			limit, err = parsePageSize(c.Query("limit"))
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid limit")
				return
			}
			shops, err = s.GetAllShops(ctx, limit)
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"shops": shops})
	}
}

// GetShop serves one shop profile.
func GetShop(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /shops/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid shop id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		shop, err := s.GetShop(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "shop not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, shop)
	}
}

// UpdateShop edits the caller's shop profile. verified is not editable here.
func UpdateShop(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /shops/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid shop id")
			return
		}

		var input updateShopInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		set := bson.M{}
		if input.Name != nil {
			set["name"] = *input.Name
		}
		if input.Categories != nil {
			for _, category := range input.Categories {
				if !models.PartCategory(category).Valid() {
					respondWithError(c, http.StatusBadRequest, route, "unknown category")
					return
				}
			}
			set["categories"] = input.Categories
		}
		if input.WhatsappNumber != nil {
			set["whatsappNumber"] = whatsapp.NormalizeNumber(*input.WhatsappNumber)
		}
		if input.PhoneNumber != nil {
			set["phoneNumber"] = *input.PhoneNumber
		}
		if input.Description != nil {
			set["description"] = *input.Description
		}
		if input.AvatarURL != nil {
			set["avatarUrl"] = *input.AvatarURL
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		err := s.UpdateShop(ctx, id, currentUserID(c), set)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "shop not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}
