package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kisekka/internal/auth"
)

const testSecret = "middleware-test-secret"

func authRouter(secret string) (*gin.Engine, *primitive.ObjectID) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var seen primitive.ObjectID
	r.GET("/private", UserAuth(secret), func(c *gin.Context) {
		seen = c.MustGet(CtxUserID).(primitive.ObjectID)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestUserAuthAcceptsValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := auth.IssueUserToken(userID.Hex(), testSecret, time.Hour)
	require.NoError(t, err)

	r, seen := authRouter(testSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *seen)
}

func TestUserAuthRejectsMissingHeader(t *testing.T) {
	r, _ := authRouter(testSecret)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthRejectsWrongSecret(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := auth.IssueUserToken(userID.Hex(), "some-other-secret", time.Hour)
	require.NoError(t, err)

	r, _ := authRouter(testSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserAuthRejectsExpiredToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := auth.IssueUserToken(userID.Hex(), testSecret, -time.Minute)
	require.NoError(t, err)

	r, _ := authRouter(testSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOnboardingAuthRejectsSessionToken(t *testing.T) {
	// A full session token must not pass the onboarding gate.
	token, err := auth.IssueUserToken(primitive.NewObjectID().Hex(), testSecret, time.Hour)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", OnboardingAuth(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOnboardingAuthAcceptsOnboardingToken(t *testing.T) {
	token, err := auth.IssueOnboardingToken("256700123456", testSecret)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	var phone string
	r.POST("/users", OnboardingAuth(testSecret), func(c *gin.Context) {
		phone = c.GetString(CtxPhone)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "256700123456", phone)
}
