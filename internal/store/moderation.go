package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/models"
)

// CreateReport writes a moderation report in pending state. Append-only.
func (s *Store) CreateReport(ctx context.Context, report models.Report) (models.Report, error) {
	report.ID = primitive.NewObjectID()
	report.Status = models.ReportPending
	report.CreatedAt = time.Now().UTC()
	report.ReviewedAt = nil
	report.ReviewedBy = nil

	if _, err := s.reports().InsertOne(ctx, report); err != nil {
		return models.Report{}, fmt.Errorf("insert report: %w", err)
	}
	return report, nil
}

// LogActivity records an analytics signal. Append-only, never read back by
// the app itself.
func (s *Store) LogActivity(ctx context.Context, signal models.ActivitySignal) error {
	signal.ID = primitive.NewObjectID()
	signal.CreatedAt = time.Now().UTC()
	if signal.Metadata == nil {
		signal.Metadata = map[string]any{}
	}

	if _, err := s.signals().InsertOne(ctx, signal); err != nil {
		return fmt.Errorf("insert activity signal: %w", err)
	}
	return nil
}
