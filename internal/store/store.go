// Package store is the single data access layer over MongoDB: feed and
// marketplace pagination, denormalized counter mutations, and the synchronous
// notification writes they trigger.
package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultPageSize is the page size used when the caller does not ask for one.
const DefaultPageSize = 20

// MaxPageSize caps how much a single page request can pull.
const MaxPageSize = 100

var (
	ErrNotFound    = errors.New("store: document not found")
	ErrInvalidDoc  = errors.New("store: document failed shape validation")
	ErrBadCursor   = errors.New("store: malformed pagination cursor")
	ErrInvalidPage = errors.New("store: invalid page size")
)

// Store wraps the database handle together with the fixed market identifier
// every query is scoped to.
type Store struct {
	db       *mongo.Database
	marketID string
}

func New(db *mongo.Database, marketID string) *Store {
	return &Store{db: db, marketID: marketID}
}

func (s *Store) users() *mongo.Collection         { return s.db.Collection("users") }
func (s *Store) shops() *mongo.Collection         { return s.db.Collection("shops") }
func (s *Store) feedPosts() *mongo.Collection     { return s.db.Collection("feedPosts") }
func (s *Store) listings() *mongo.Collection      { return s.db.Collection("marketplaceListings") }
func (s *Store) responses() *mongo.Collection     { return s.db.Collection("responses") }
func (s *Store) notifications() *mongo.Collection { return s.db.Collection("notifications") }
func (s *Store) reports() *mongo.Collection       { return s.db.Collection("reports") }
func (s *Store) signals() *mongo.Collection       { return s.db.Collection("activitySignals") }

func clampPageSize(pageSize int64) int64 {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}
