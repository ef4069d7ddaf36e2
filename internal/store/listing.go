package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kisekka/internal/models"
)

// ListingFilters narrows the marketplace browse query. Empty fields are not
// applied. Values are validated at the handler boundary before they get here.
type ListingFilters struct {
	Category  models.PartCategory
	Condition models.ListingCondition
	Zone      models.LocationZone
}

// ListingPage is one page of marketplace listings plus the continuation
// token for the next one.
type ListingPage struct {
	Listings   []models.MarketplaceListing `json:"listings"`
	NextCursor string                      `json:"nextCursor,omitempty"`
}

func (s *Store) listingBaseFilter(f ListingFilters) bson.M {
	filter := bson.M{
		"marketId": s.marketID,
		"status":   models.ListingStatusActive,
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Condition != "" {
		filter["condition"] = f.Condition
	}
	if f.Zone != "" {
		filter["locationZone"] = f.Zone
	}
	return filter
}

func listingSort() bson.D {
	return bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}
}

// GetListings returns one page of active listings, newest first, with the
// optional equality filters applied.
func (s *Store) GetListings(ctx context.Context, f ListingFilters, pageSize int64, cursorToken string) (ListingPage, error) {
	pageSize = clampPageSize(pageSize)

	filter := s.listingBaseFilter(f)
	if cursorToken != "" {
		var cur listingCursor
		if err := decodeCursor(cursorToken, &cur); err != nil {
			return ListingPage{}, err
		}
		filter = bson.M{"$and": bson.A{filter, listingCursorFilter(cur)}}
	}

	opts := options.Find().SetSort(listingSort()).SetLimit(pageSize)

	cursor, err := s.listings().Find(ctx, filter, opts)
	if err != nil {
		return ListingPage{}, fmt.Errorf("listings query: %w", err)
	}
	defer cursor.Close(ctx)

	listings, err := decodeListings(ctx, cursor)
	if err != nil {
		return ListingPage{}, err
	}

	page := ListingPage{Listings: listings}
	if int64(len(listings)) == pageSize {
		last := listings[len(listings)-1]
		page.NextCursor = encodeCursor(listingCursor{
			CreatedAt: last.CreatedAt.UnixMilli(),
			ID:        last.ID,
		})
	}
	return page, nil
}

// GetShopListings queries by shop id directly. The first version of the shop
// page fetched an unfiltered page and filtered client-side, which silently
// dropped listings beyond the fetched page; the indexed query replaces that.
func (s *Store) GetShopListings(ctx context.Context, shopID primitive.ObjectID, pageSize int64) ([]models.MarketplaceListing, error) {
	filter := bson.M{
		"shopId": shopID,
		"status": models.ListingStatusActive,
	}

	opts := options.Find().SetSort(listingSort()).SetLimit(clampPageSize(pageSize))

	cursor, err := s.listings().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("shop listings query: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeListings(ctx, cursor)
}

// GetUserListings lists a seller's own listings regardless of status.
func (s *Store) GetUserListings(ctx context.Context, sellerID primitive.ObjectID) ([]models.MarketplaceListing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(50)

	cursor, err := s.listings().Find(ctx, bson.M{"sellerId": sellerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("user listings query: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeListings(ctx, cursor)
}

// GetListing fetches one listing by id.
func (s *Store) GetListing(ctx context.Context, id primitive.ObjectID) (models.MarketplaceListing, error) {
	var raw bson.M
	err := s.listings().FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MarketplaceListing{}, ErrNotFound
	}
	if err != nil {
		return models.MarketplaceListing{}, err
	}
	return normalizeListingDocument(raw)
}

// newListing assigns the id, stamps timestamps and writes default state.
func newListing(listing models.MarketplaceListing, marketID string, now time.Time) models.MarketplaceListing {
	listing.ID = primitive.NewObjectID()
	if listing.MarketID == "" {
		listing.MarketID = marketID
	}
	listing.Currency = models.CurrencyUGX
	listing.EngagementCount = 0
	listing.Status = models.ListingStatusActive
	listing.CreatedAt = now
	listing.LastActivityAt = now
	listing.Seller = nil
	listing.Shop = nil
	return listing
}

// CreateListing stamps defaults and inserts the listing.
func (s *Store) CreateListing(ctx context.Context, listing models.MarketplaceListing) (models.MarketplaceListing, error) {
	listing = newListing(listing, s.marketID, time.Now().UTC())

	if _, err := s.listings().InsertOne(ctx, listing); err != nil {
		return models.MarketplaceListing{}, fmt.Errorf("insert listing: %w", err)
	}
	return listing, nil
}

// UpdateListingStatus moves a listing through its lifecycle (active → sold or
// expired). Only the seller may do it.
func (s *Store) UpdateListingStatus(ctx context.Context, id, sellerID primitive.ObjectID, status models.ListingStatus) error {
	res, err := s.listings().UpdateOne(ctx,
		bson.M{"_id": id, "sellerId": sellerID},
		bson.M{"$set": bson.M{
			"status":         status,
			"lastActivityAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
