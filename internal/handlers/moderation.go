package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/models"
	"kisekka/internal/store"
)

type createReportInput struct {
	TargetID    string                  `json:"targetId" binding:"required"`
	TargetType  models.ReportTargetType `json:"targetType" binding:"required"`
	Reason      models.ReportReason     `json:"reason" binding:"required"`
	Description string                  `json:"description"`
}

type logActivityInput struct {
	Type        models.ActivitySignalType `json:"type" binding:"required"`
	ReferenceID string                    `json:"referenceId" binding:"required"`
	Metadata    map[string]any            `json:"metadata"`
}

// CreateReport files a moderation report against a post, response, user or
// shop.
func CreateReport(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /reports"
		defer handlePanic(c, route)

		var input createReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if !input.TargetType.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown target type")
			return
		}
		if !input.Reason.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown reason")
			return
		}

		targetID, err := primitive.ObjectIDFromHex(input.TargetID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid target id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		report, err := s.CreateReport(ctx, models.Report{
			ReporterID:  currentUserID(c),
			TargetID:    targetID,
			TargetType:  input.TargetType,
			Reason:      input.Reason,
			Description: input.Description,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] report %s filed against %s %s", route, report.ID.Hex(), input.TargetType, targetID.Hex())
		c.JSON(http.StatusCreated, report)
	}
}

// LogActivity appends an analytics signal. Best effort by contract, but the
// client still learns whether the write happened.
func LogActivity(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /activity"
		defer handlePanic(c, route)

		var input logActivityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if !input.Type.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown signal type")
			return
		}

		referenceID, err := primitive.ObjectIDFromHex(input.ReferenceID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid reference id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		userID := currentUserID(c)
		if err := s.LogActivity(ctx, models.ActivitySignal{
			Type:        input.Type,
			ReferenceID: referenceID,
			UserID:      &userID,
			Metadata:    input.Metadata,
		}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"logged": true})
	}
}
