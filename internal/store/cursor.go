package store

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cursors encode the last returned document's position in the exact sort
// order of the query that produced it. A single-field cursor is not enough
// once a composite sort is used, so each cursor carries every sort column.
// Timestamps travel as unix milliseconds, which matches BSON datetime
// precision, so a round-tripped cursor compares equal to the stored value.

// feedCursor marks a position in the feed order
// (urgent desc, lastActivityAt desc, _id desc).
type feedCursor struct {
	Urgent         bool               `json:"u"`
	LastActivityAt int64              `json:"a"`
	ID             primitive.ObjectID `json:"id"`
}

// listingCursor marks a position in the marketplace order
// (createdAt desc, _id desc).
type listingCursor struct {
	CreatedAt int64              `json:"c"`
	ID        primitive.ObjectID `json:"id"`
}

func encodeCursor(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(token string, v any) error {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrBadCursor
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrBadCursor
	}
	return nil
}

// feedCursorFilter selects documents strictly after the cursor position in
// feed order. In BSON, false sorts before true, so "after" on a descending
// urgent column means urgent < cursor.urgent.
func feedCursorFilter(cur feedCursor) bson.M {
	at := time.UnixMilli(cur.LastActivityAt).UTC()
	return bson.M{"$or": bson.A{
		bson.M{"urgent": bson.M{"$lt": cur.Urgent}},
		bson.M{"urgent": cur.Urgent, "lastActivityAt": bson.M{"$lt": at}},
		bson.M{"urgent": cur.Urgent, "lastActivityAt": at, "_id": bson.M{"$lt": cur.ID}},
	}}
}

// listingCursorFilter selects documents strictly after the cursor position in
// marketplace order.
func listingCursorFilter(cur listingCursor) bson.M {
	at := time.UnixMilli(cur.CreatedAt).UTC()
	return bson.M{"$or": bson.A{
		bson.M{"createdAt": bson.M{"$lt": at}},
		bson.M{"createdAt": at, "_id": bson.M{"$lt": cur.ID}},
	}}
}
