package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kisekka/internal/models"
	"kisekka/internal/store"
)

type createListingInput struct {
	Title        string                  `json:"title" binding:"required"`
	Price        int64                   `json:"price" binding:"required"`
	Condition    models.ListingCondition `json:"condition" binding:"required"`
	Category     models.PartCategory     `json:"category" binding:"required"`
	CarModel     string                  `json:"carModel"`
	Description  string                  `json:"description"`
	Images       []string                `json:"images"`
	LocationZone models.LocationZone     `json:"locationZone" binding:"required"`
}

type updateListingStatusInput struct {
	Status models.ListingStatus `json:"status" binding:"required"`
}

// GetListings serves the cursor-paginated marketplace browse view with
// optional category, condition and zone filters.
func GetListings(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /listings"
		defer handlePanic(c, route)

		filters, msg, ok := parseListingFilters(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, msg)
			return
		}

		limit, err := parsePageSize(c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid limit")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		page, err := s.GetListings(ctx, filters, limit, c.Query("cursor"))
		if errors.Is(err, store.ErrBadCursor) {
			respondWithError(c, http.StatusBadRequest, route, "invalid cursor")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := s.EnrichListings(ctx, page.Listings, store.UserCache{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d listings", route, len(page.Listings))
		c.JSON(http.StatusOK, gin.H{
			"listings":   page.Listings,
			"nextCursor": page.NextCursor,
		})
	}
}

func parseListingFilters(c *gin.Context) (store.ListingFilters, string, bool) {
	var filters store.ListingFilters

	if v := c.Query("category"); v != "" {
		category := models.PartCategory(v)
		if !category.Valid() {
			return filters, "unknown category", false
		}
		filters.Category = category
	}
	if v := c.Query("condition"); v != "" {
		condition := models.ListingCondition(v)
		if !condition.Valid() {
			return filters, "unknown condition", false
		}
		filters.Condition = condition
	}
	if v := c.Query("zone"); v != "" {
		zone := models.LocationZone(v)
		if !zone.Valid() {
			return filters, "unknown zone", false
		}
		filters.Zone = zone
	}

	return filters, "", true
}

// CreateListing puts an item up for sale. The listing inherits the caller's
// shop when they own one.
func CreateListing(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /listings"
		defer handlePanic(c, route)

		var input createListingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if msg, ok := validateCreateListing(input); !ok {
			respondWithError(c, http.StatusBadRequest, route, msg)
			return
		}

		sellerID := currentUserID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		seller, err := s.GetUser(ctx, sellerID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		listing, err := s.CreateListing(ctx, models.MarketplaceListing{
			SellerID:     sellerID,
			ShopID:       seller.ShopID,
			Title:        input.Title,
			Price:        input.Price,
			Condition:    input.Condition,
			Category:     input.Category,
			CarModel:     input.CarModel,
			Description:  input.Description,
			Images:       input.Images,
			LocationZone: input.LocationZone,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] listing %s created by %s", route, listing.ID.Hex(), sellerID.Hex())
		c.JSON(http.StatusCreated, listing)
	}
}

func validateCreateListing(input createListingInput) (string, bool) {
	if input.Price < 0 {
		return "price must not be negative", false
	}
	if !input.Condition.Valid() {
		return "unknown condition", false
	}
	if !input.Category.Valid() {
		return "unknown category", false
	}
	if !input.LocationZone.Valid() {
		return "unknown location zone", false
	}
	if len(input.Images) > models.MaxListingImages {
		return "too many images", false
	}
	return "", true
}

// GetListing serves one listing with its seller and shop attached.
func GetListing(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /listings/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid listing id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		listing, err := s.GetListing(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "listing not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		listings := []models.MarketplaceListing{listing}
		if err := s.EnrichListings(ctx, listings, store.UserCache{}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if listing.ShopID != nil {
			shop, err := s.GetShop(ctx, *listing.ShopID)
			if err == nil {
				listings[0].Shop = &shop
			} else if !errors.Is(err, store.ErrNotFound) {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		c.JSON(http.StatusOK, listings[0])
	}
}

// GetShopListings lists a shop's active stock.
func GetShopListings(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /shops/:id/listings"
		defer handlePanic(c, route)

		shopID, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid shop id")
			return
		}

		limit, err := parsePageSize(c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid limit")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		listings, err := s.GetShopListings(ctx, shopID, limit)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"listings": listings})
	}
}

// GetMyListings lists the caller's own listings regardless of status.
func GetMyListings(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /me/listings"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		listings, err := s.GetUserListings(ctx, currentUserID(c))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"listings": listings})
	}
}

// UpdateListingStatus marks a listing sold or expired, or reactivates it.
// Only the seller can flip it.
func UpdateListingStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /listings/:id/status"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid listing id")
			return
		}

		var input updateListingStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if !input.Status.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		err := s.UpdateListingStatus(ctx, id, currentUserID(c), input.Status)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "listing not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}
