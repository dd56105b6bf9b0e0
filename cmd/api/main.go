package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/harukimori/inventory-backend/internal/alert"
	"github.com/harukimori/inventory-backend/internal/config"
	"github.com/harukimori/inventory-backend/internal/db"
	"github.com/harukimori/inventory-backend/internal/model"
	"github.com/harukimori/inventory-backend/internal/photo"
	"github.com/harukimori/inventory-backend/internal/server"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	var uploader *photo.Uploader
	if cfg.StorageBucket != "" {
		uploader, err = photo.NewUploader(ctx, cfg.StorageBucket)
		if err != nil {
			log.Printf("photo storage unavailable: %v", err)
		}
	} else {
		log.Printf("STORAGE_BUCKET not set; photo upload disabled")
	}

	srv := server.New(nil, uploader, gitSHA, buildTime)

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// The server comes up before the database so health checks pass during
	// slow Cloud SQL cold starts; repositories report ErrDBNotReady until
	// injection happens.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(&model.Category{}, &model.InventoryItem{}, &model.Notification{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)

		if _, err := alert.Start(cfg.AlertCronSpec, srv.Notifications); err != nil {
			log.Printf("alert scheduler error: %v", err)
		} else {
			log.Printf("alert sweep scheduled: %q", cfg.AlertCronSpec)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
