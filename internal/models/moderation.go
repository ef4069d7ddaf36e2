package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivitySignal is an append-only analytics record. Never mutated.
type ActivitySignal struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type        ActivitySignalType  `bson:"type" json:"type"`
	ReferenceID primitive.ObjectID  `bson:"referenceId" json:"referenceId"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	Metadata    map[string]any      `bson:"metadata" json:"metadata"`
}

// Report is an append-only moderation record; only status and review fields
// change after creation, and only through moderation tooling.
type Report struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ReporterID  primitive.ObjectID  `bson:"reporterId" json:"reporterId"`
	TargetID    primitive.ObjectID  `bson:"targetId" json:"targetId"`
	TargetType  ReportTargetType    `bson:"targetType" json:"targetType"`
	Reason      ReportReason        `bson:"reason" json:"reason"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Status      ReportStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	ReviewedAt  *time.Time          `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy  *primitive.ObjectID `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
}
