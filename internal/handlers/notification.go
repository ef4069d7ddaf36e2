package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kisekka/internal/store"
)

// GetMyNotifications lists the caller's notifications, newest first.
func GetMyNotifications(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /me/notifications"
		defer handlePanic(c, route)

		limit, err := parsePageSize(c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid limit")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		notifications, err := s.GetNotifications(ctx, currentUserID(c), limit)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}

// GetUnreadCount serves the badge number.
func GetUnreadCount(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /me/notifications/unread-count"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		count, err := s.UnreadNotificationCount(ctx, currentUserID(c))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// MarkNotificationRead flips one of the caller's notifications to read.
func MarkNotificationRead(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /notifications/:id/read"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid notification id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		err := s.MarkNotificationRead(ctx, id, currentUserID(c))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "notification not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"read": true})
	}
}
