package api

import (
	"context"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/labgrid/equipment-booking-backend/internal/auth"
	"github.com/labgrid/equipment-booking-backend/internal/booking"
	bookingHttp "github.com/labgrid/equipment-booking-backend/internal/booking/http"
	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	equipHttp "github.com/labgrid/equipment-booking-backend/internal/equipment/http"
	"github.com/labgrid/equipment-booking-backend/internal/file"
	fileHttp "github.com/labgrid/equipment-booking-backend/internal/file/http"
	"github.com/labgrid/equipment-booking-backend/internal/project"
	projectHttp "github.com/labgrid/equipment-booking-backend/internal/project/http"
	scheduleHttp "github.com/labgrid/equipment-booking-backend/internal/schedule/http"
	"github.com/labgrid/equipment-booking-backend/internal/user"
	userHttp "github.com/labgrid/equipment-booking-backend/internal/user/http"
)

// Config bundles everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService      user.Service
	EquipmentService equipment.Service
	ProjectService   project.Service
	BookingService   booking.Service
	FileService      file.Service
	JWTManager       *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // local admin frontend
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user has admin privileges.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	equipHandler := equipHttp.NewHandler(cfg.EquipmentService)
	projectHandler := projectHttp.NewHandler(cfg.ProjectService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	scheduleHandler := scheduleHttp.NewHandler(cfg.BookingService, cfg.EquipmentService, cfg.ProjectService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		equipHttp.RegisterRoutes(v1, equipHandler, authMiddleware, adminMiddleware)
		projectHttp.RegisterRoutes(v1, projectHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware, adminMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware)

		// Equipment photo upload: store the file, then bind it to the
		// equipment record. The hook rolls the upload back on failure.
		v1.POST("/equipment/:id/photo", authMiddleware, adminMiddleware, func(c *gin.Context) {
			equipmentID := c.Param("id")
			fileHandler.HandleFileUpload(c, fileHttp.FileUploadConfig{
				FormFieldName: "photo",
				MaxSizeBytes:  10 << 20,
				AllowedTypes:  []string{"image/jpeg", "image/png", "image/webp"},
				AfterUpload: func(ctx context.Context, fileID string) error {
					_, err := cfg.EquipmentService.Update(ctx, equipmentID, equipment.UpdateRequest{
						PhotoFileID: &fileID,
					})
					return err
				},
			})
		})
	}

	return r
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
