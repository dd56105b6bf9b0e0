package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/harukimori/inventory-backend/internal/ai"
	"github.com/harukimori/inventory-backend/internal/handler"
	appmw "github.com/harukimori/inventory-backend/internal/middleware"
	"github.com/harukimori/inventory-backend/internal/photo"
	"github.com/harukimori/inventory-backend/internal/repository"
	"github.com/harukimori/inventory-backend/internal/service"
)

type Server struct {
	e             *echo.Echo
	itemRepo      repository.ItemRepository
	categoryRepo  repository.CategoryRepository
	notifRepo     repository.NotificationRepository
	Notifications service.NotificationService
	sha           string
	build         string
}

func New(db *gorm.DB, uploader *photo.Uploader, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			// The mobile shell loads from a capacitor:// origin.
			if u.Scheme == "capacitor" || u.Scheme == "ionic" {
				return true, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			return strings.HasSuffix(u.Hostname(), "lovable.app"), nil
		},
	}))

	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	itemSvc := service.NewItemService(itemRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo, itemRepo)
	notifSvc := service.NewNotificationService(notifRepo, itemRepo)

	itemHandler := handler.NewItemHandler(itemSvc, notifSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	photoHandler := handler.NewPhotoHandler(uploader)
	receiptHandler := handler.NewReceiptHandler(ai.NewReceiptClient())

	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		if !allowUnauthenticated() {
			e.Logger.Fatalf("firebase auth init error: %v", err)
		}
		log.Printf("AUTH_DISABLED=true, serving /api without auth: %v", err)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	var api *echo.Group
	if authMw != nil {
		api = e.Group("/api", authMw.RequireAuth)
		userHandler := handler.NewUserHandler(authMw.Client())
		api.GET("/me/profile", userHandler.GetProfile)
		api.PUT("/me/profile", userHandler.UpdateProfile)
	} else {
		api = e.Group("/api")
	}

	api.POST("/items", itemHandler.Create)
	api.GET("/items/:id", itemHandler.Get)
	api.DELETE("/items/:id", itemHandler.Delete)
	api.GET("/me/items", itemHandler.ListMine)
	api.GET("/me/items/export", itemHandler.Export)
	api.GET("/me/dashboard", itemHandler.Dashboard)

	api.GET("/categories", categoryHandler.List)
	api.POST("/categories", categoryHandler.Create)
	api.DELETE("/categories/:id", categoryHandler.Delete)

	api.GET("/notifications", notifHandler.List)
	api.POST("/notifications/read", notifHandler.MarkAllRead)

	api.POST("/photos", photoHandler.Upload)
	api.POST("/receipts/parse", receiptHandler.Parse)

	return &Server{
		e:             e,
		itemRepo:      itemRepo,
		categoryRepo:  categoryRepo,
		notifRepo:     notifRepo,
		Notifications: notifSvc,
		sha:           sha,
		build:         buildTime,
	}
}

// allowUnauthenticated lets local development run without Firebase
// credentials. Production fails fast instead of serving /api open.
func allowUnauthenticated() bool {
	return os.Getenv("AUTH_DISABLED") == "true"
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the database once the async connect finishes. Until then the
// repositories answer with ErrDBNotReady.
func (s *Server) SetDB(db *gorm.DB) {
	s.itemRepo.SetDB(db)
	s.categoryRepo.SetDB(db)
	s.notifRepo.SetDB(db)
}
