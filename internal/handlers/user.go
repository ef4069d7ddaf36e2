package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"kisekka/internal/auth"
	"kisekka/internal/config"
	"kisekka/internal/middleware"
	"kisekka/internal/models"
	"kisekka/internal/store"
	"kisekka/internal/whatsapp"
)

type sendOTPInput struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type verifyOTPInput struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

type createUserInput struct {
	DisplayName    string              `json:"displayName" binding:"required"`
	WhatsappNumber string              `json:"whatsappNumber"`
	Role           models.UserRole     `json:"role" binding:"required"`
	LocationZone   models.LocationZone `json:"locationZone" binding:"required"`
	AvatarURL      string              `json:"avatarUrl"`
}

type updateUserInput struct {
	DisplayName    *string              `json:"displayName"`
	WhatsappNumber *string              `json:"whatsappNumber"`
	Role           *models.UserRole     `json:"role"`
	LocationZone   *models.LocationZone `json:"locationZone"`
	AvatarURL      *string              `json:"avatarUrl"`
}

// SendOTP asks the identity provider to text a verification code. Provider
// failures surface as friendly messages, never raw provider errors.
func SendOTP(provider auth.OTPProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/otp/send"
		defer handlePanic(c, route)

		var input sendOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}

		phone := whatsapp.NormalizeNumber(input.PhoneNumber)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if err := provider.SendCode(ctx, phone); err != nil {
			log.Printf("[%s] provider rejected send for %s: %v", route, phone, err)
			respondWithError(c, http.StatusBadGateway, route, auth.FriendlyMessage(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"sent": true})
	}
}

// VerifyOTP checks the code and hands back either a session token, when the
// phone already has an account, or a short-lived onboarding token for
// POST /users.
func VerifyOTP(s *store.Store, provider auth.OTPProvider, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/otp/verify"
		defer handlePanic(c, route)

		var input verifyOTPInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}

		phone := whatsapp.NormalizeNumber(input.PhoneNumber)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if err := provider.VerifyCode(ctx, phone, input.Code); err != nil {
			log.Printf("[%s] provider rejected code for %s: %v", route, phone, err)
			respondWithError(c, http.StatusUnauthorized, route, auth.FriendlyMessage(err))
			return
		}

		user, err := s.GetUserByPhone(ctx, phone)
		if errors.Is(err, store.ErrNotFound) {
			token, err := auth.IssueOnboardingToken(phone, cfg.JWTSecret)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "token error")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"registered":      false,
				"onboardingToken": token,
			})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		token, err := auth.IssueUserToken(user.ID.Hex(), cfg.JWTSecret, cfg.AccessTokenTTL)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "token error")
			return
		}

		log.Printf("[%s] session issued for %s", route, user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{
			"registered": true,
			"token":      token,
			"user":       user,
		})
	}
}

// CreateUser finishes onboarding for a phone number the provider just
// verified. Requires the onboarding token; answers with a full session.
func CreateUser(s *store.Store, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users"
		defer handlePanic(c, route)

		var input createUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondValidationError(c, err)
			return
		}
		if !input.Role.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown role")
			return
		}
		if !input.LocationZone.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown location zone")
			return
		}

		phone := c.GetString(middleware.CtxPhone)

		whatsappNumber := input.WhatsappNumber
		if whatsappNumber == "" {
			whatsappNumber = phone
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if _, err := s.GetUserByPhone(ctx, phone); err == nil {
			respondWithError(c, http.StatusConflict, route, "account already exists")
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		user, err := s.CreateUser(ctx, models.User{
			DisplayName:    input.DisplayName,
			PhoneNumber:    phone,
			WhatsappNumber: whatsapp.NormalizeNumber(whatsappNumber),
			Role:           input.Role,
			AvatarURL:      input.AvatarURL,
			LocationZone:   input.LocationZone,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		token, err := auth.IssueUserToken(user.ID.Hex(), cfg.JWTSecret, cfg.AccessTokenTTL)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "token error")
			return
		}

		log.Printf("[%s] account %s created", route, user.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"token": token,
			"user":  user,
		})
	}
}

// GetMe serves the caller's own profile.
func GetMe(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /auth/me"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := s.GetUser(ctx, currentUserID(c))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// GetUser serves a public profile.
func GetUser(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/:id"
		defer handlePanic(c, route)

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid user id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := s.GetUser(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateMe edits the caller's profile. Phone number is identity and never
// changes here.
func UpdateMe(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /me"
		defer handlePanic(c, route)

		var input updateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		set := bson.M{}
		if input.DisplayName != nil {
			set["displayName"] = *input.DisplayName
		}
		if input.WhatsappNumber != nil {
			set["whatsappNumber"] = whatsapp.NormalizeNumber(*input.WhatsappNumber)
		}
		if input.Role != nil {
			if !input.Role.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown role")
				return
			}
			set["role"] = *input.Role
		}
		if input.LocationZone != nil {
			if !input.LocationZone.Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown location zone")
				return
			}
			set["locationZone"] = *input.LocationZone
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

		err := s.UpdateUser(ctx, currentUserID(c), set)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}
