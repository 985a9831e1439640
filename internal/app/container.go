package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labgrid/equipment-booking-backend/internal/api"
	"github.com/labgrid/equipment-booking-backend/internal/auth"
	"github.com/labgrid/equipment-booking-backend/internal/booking"
	"github.com/labgrid/equipment-booking-backend/internal/equipment"
	"github.com/labgrid/equipment-booking-backend/internal/file"
	"github.com/labgrid/equipment-booking-backend/internal/pkg/storage"
	"github.com/labgrid/equipment-booking-backend/internal/project"
	"github.com/labgrid/equipment-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Equipment Module
	equipRepo := equipment.NewPgxRepository(cfg.DBPool)
	equipService := equipment.NewService(equipRepo)

	// Project Module
	projectRepo := project.NewPgxRepository(cfg.DBPool)
	projectService := project.NewService(projectRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, equipService, projectService)

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	// API Router Config
	routerParams := api.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      cfg.ProdOrigins,
		UserService:      userService,
		EquipmentService: equipService,
		ProjectService:   projectService,
		BookingService:   bookingService,
		FileService:      fileService,
		JWTManager:       jwtManager,
	}

	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
	}, nil
}
