// cmd/api/main.go
package main

import (
	"context"
	"log"
	"time"

	"equipment-inventory-api-server/config"
	"equipment-inventory-api-server/internal/api/routes"
	"equipment-inventory-api-server/internal/auth"
	"equipment-inventory-api-server/internal/database"
	"equipment-inventory-api-server/internal/history"
	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/recordstore"
	"equipment-inventory-api-server/internal/s3"
	"equipment-inventory-api-server/internal/socket"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.SetSecret(cfg.JWT.Secret)

	// 2. Connect to MongoDB (user accounts)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.Mongo.DBName)

	// 3. Make sure the superadmin account exists
	if err := database.SeedSuperAdmin(db); err != nil {
		log.Fatalf("Failed to seed super admin: %v", err)
	}

	// 4. Record-store client: the remote service all inventory lives in
	rsClient := recordstore.NewClient(
		cfg.RecordStore.BaseURL,
		cfg.RecordStore.APIKey,
		time.Duration(cfg.RecordStore.TimeoutSeconds)*time.Second,
	)
	store := inventory.NewRemoteStore(rsClient)

	// 5. WebSocket hub + change-history recorder
	wsHub := socket.NewHub()
	recorder := history.NewRecorder(rsClient, wsHub)

	// 6. S3 uploader for condition photos (optional)
	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
	}

	// 7. Wire everything into the router
	router := routes.SetupRouter(store, recorder, cfg, db, s3Uploader, wsHub)

	// 8. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
