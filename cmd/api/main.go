package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowdesk/glowdesk-api/internal/application/service"
	"github.com/glowdesk/glowdesk-api/internal/cache"
	"github.com/glowdesk/glowdesk-api/internal/config"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
	"github.com/glowdesk/glowdesk-api/internal/infrastructure/database"
	infraRepo "github.com/glowdesk/glowdesk-api/internal/infrastructure/repository"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/handler"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/routes"
	"github.com/glowdesk/glowdesk-api/pkg/utils"

	"github.com/glowdesk/glowdesk-api/internal/application/billing"
)

func main() {
	cfg := config.Load()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	// Repositories
	userRepo := infraRepo.NewUserRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	staffRepo := infraRepo.NewStaffRepository(db)
	catalogRepo := infraRepo.NewCatalogRepository(db)
	appointmentRepo := infraRepo.NewAppointmentRepository(db)
	billRepo := infraRepo.NewBillRepository(db)
	reportRepo := infraRepo.NewReportRepository(db)

	// Catalog cache: Redis when configured, in-process otherwise
	var catalogCache cache.CatalogCache = cache.NewMemoryCatalogCache()
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCatalogCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Printf("Redis unreachable, falling back to in-process cache: %v", err)
		} else {
			catalogCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	staffService := service.NewStaffService(staffRepo)
	catalogService := service.NewCatalogService(catalogRepo, catalogCache, cfg.Redis.TTL)
	appointmentService := service.NewAppointmentService(appointmentRepo, customerRepo, staffRepo, catalogRepo)

	billingService := service.NewBillingService(billRepo, customerRepo, appointmentRepo,
		map[enum.ItemKind]billing.CatalogProvider{
			enum.ItemKindService: catalogService.ProviderFor(enum.ItemKindService),
			enum.ItemKindProduct: catalogService.ProviderFor(enum.ItemKindProduct),
			enum.ItemKindPackage: catalogService.ProviderFor(enum.ItemKindPackage),
		},
		staffService.Directory(),
	)

	billService := service.NewBillService(billRepo)
	reportService := service.NewReportService(reportRepo, billRepo)

	// Seed the live picker feeds before taking traffic
	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	catalogService.RefreshFeeds(startupCtx)
	staffService.RefreshDirectory(startupCtx)
	cancel()

	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Customer:    handler.NewCustomerHandler(customerService),
		Staff:       handler.NewStaffHandler(staffService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Appointment: handler.NewAppointmentHandler(appointmentService),
		Billing:     handler.NewBillingHandler(billingService),
		Bill:        handler.NewBillHandler(billService),
		Report:      handler.NewReportHandler(reportService),
	}

	router := routes.Setup(cfg, jwtManager, handlers)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("%s listening on :%s", cfg.App.Name, cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
