package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"kisekka/internal/auth"
	"kisekka/internal/config"
	"kisekka/internal/database"
	"kisekka/internal/handlers"
	"kisekka/internal/middleware"
	"kisekka/internal/storage"
	"kisekka/internal/store"
)

func main() {
	config.Load()

	if config.AppEnv.JWTSecret == "" {
		log.Fatal("[MAIN] [FATAL] JWT_SECRET must be set")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal("[MAIN] [FATAL] mongo connect failed: ", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Println("[MAIN] [ERROR] mongo disconnect:", err)
		}
	}()

	db := client.Database(config.AppEnv.DBName)
	log.Println("[MAIN] [INFO] MongoDB connected to:", db.Name())

	ensureIndexes(db)

	s := store.New(db, config.AppEnv.MarketID)
	uploader := buildUploader()
	otpProvider := buildOTPProvider()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))
	r.Static("/public", "./public")

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerRoutes(r, s, uploader, otpProvider)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("[MAIN] [INFO] listening on port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("[MAIN] [FATAL] server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[MAIN] [INFO] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("[MAIN] [ERROR] forced shutdown:", err)
	}
}

func ensureIndexes(db *mongo.Database) {
	for name, ensure := range map[string]func(*mongo.Database) error{
		"feedPost":     database.EnsureFeedPostIndexes,
		"listing":      database.EnsureListingIndexes,
		"response":     database.EnsureResponseIndexes,
		"notification": database.EnsureNotificationIndexes,
		"user":         database.EnsureUserIndexes,
		"shop":         database.EnsureShopIndexes,
	} {
		if err := ensure(db); err != nil {
			log.Printf("[MAIN] [WARN] %s index warning: %v", name, err)
		}
	}
}

// buildUploader picks object storage when a bucket is configured and falls
// back to local disk for dev.
func buildUploader() storage.Uploader {
	cfg := config.AppEnv
	if cfg.StorageBucket != "" {
		uploader, err := storage.NewS3Uploader(context.Background(), storage.S3Config{
			Endpoint:      cfg.StorageEndpoint,
			Region:        cfg.StorageRegion,
			Bucket:        cfg.StorageBucket,
			AccessKeyID:   cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			log.Fatal("[MAIN] [FATAL] storage init failed: ", err)
		}
		log.Println("[MAIN] [INFO] uploading to bucket", cfg.StorageBucket)
		return uploader
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = "/public/uploads"
	}
	log.Println("[MAIN] [INFO] uploading to local dir", cfg.LocalUploadDir)
	return storage.NewLocalUploader(cfg.LocalUploadDir, publicBase)
}

func buildOTPProvider() auth.OTPProvider {
	// The real SMS provider is external. Until one is wired in, the dev
	// provider keeps the auth flow testable end to end.
	return auth.NewDevProvider(os.Getenv("DEV_OTP_CODE"))
}

func registerRoutes(r *gin.Engine, s *store.Store, uploader storage.Uploader, otpProvider auth.OTPProvider) {
	secret := config.AppEnv.JWTSecret

	// Public reads.
	r.GET("/feed", handlers.GetFeed(s))
	r.GET("/feed/category/:category", handlers.GetFeedByCategory(s))
	r.GET("/posts/:id", handlers.GetFeedPost(s))
	r.GET("/posts/:id/responses", handlers.GetPostResponses(s))
	r.GET("/listings", handlers.GetListings(s))
	r.GET("/listings/:id", handlers.GetListing(s))
	r.GET("/shops", handlers.GetShops(s))
	r.GET("/shops/:id", handlers.GetShop(s))
	r.GET("/shops/:id/listings", handlers.GetShopListings(s))
	r.GET("/users/:id", handlers.GetUser(s))

	// OTP sign-in.
	r.POST("/auth/otp/send", handlers.SendOTP(otpProvider))
	r.POST("/auth/otp/verify", handlers.VerifyOTP(s, otpProvider, config.AppEnv))
	r.POST("/users", middleware.OnboardingAuth(secret), handlers.CreateUser(s, config.AppEnv))

	// Everything below needs a session.
	authed := r.Group("/")
	authed.Use(middleware.UserAuth(secret))
	{
		authed.GET("/auth/me", handlers.GetMe(s))
		authed.PATCH("/me", handlers.UpdateMe(s))
		authed.GET("/me/posts", handlers.GetMyPosts(s))
		authed.GET("/me/listings", handlers.GetMyListings(s))
		authed.GET("/me/notifications", handlers.GetMyNotifications(s))
		authed.GET("/me/notifications/unread-count", handlers.GetUnreadCount(s))
		authed.POST("/notifications/:id/read", handlers.MarkNotificationRead(s))

		authed.POST("/posts", handlers.CreateFeedPost(s))
		authed.PATCH("/posts/:id", handlers.UpdateFeedPost(s))
		authed.DELETE("/posts/:id", handlers.DeleteFeedPost(s))
		authed.POST("/posts/:id/interested", handlers.MarkInterested(s))
		authed.POST("/posts/:id/responses", handlers.CreateResponse(s))
		authed.POST("/responses/:id/whatsapp-tap", handlers.TrackWhatsAppTap(s))

		authed.POST("/listings", handlers.CreateListing(s))
		authed.PATCH("/listings/:id/status", handlers.UpdateListingStatus(s))

		authed.POST("/shops", handlers.CreateShop(s))
		authed.PATCH("/shops/:id", handlers.UpdateShop(s))

		authed.POST("/api/upload", handlers.Upload(uploader))

		authed.POST("/reports", handlers.CreateReport(s))
		authed.POST("/activity", handlers.LogActivity(s))
	}
}
