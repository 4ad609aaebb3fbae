package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/glowdesk-api/internal/config"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/handler"
	"github.com/glowdesk/glowdesk-api/internal/presentation/http/middleware"
	"github.com/glowdesk/glowdesk-api/pkg/utils"
)

// Handlers bundles every HTTP handler wired by the router
type Handlers struct {
	Auth        *handler.AuthHandler
	Customer    *handler.CustomerHandler
	Staff       *handler.StaffHandler
	Catalog     *handler.CatalogHandler
	Appointment *handler.AppointmentHandler
	Billing     *handler.BillingHandler
	Bill        *handler.BillHandler
	Report      *handler.ReportHandler
}

// Setup configures the Gin engine with all middleware and routes
func Setup(cfg *config.Config, jwtManager *utils.JWTManager, h *Handlers) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.DefaultRateLimiterConfig())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	{
		protected.GET("/auth/profile", h.Auth.Profile)
		protected.POST("/auth/change-password", h.Auth.ChangePassword)

		customers := protected.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.PATCH("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		staff := protected.Group("/staff")
		{
			staff.GET("", h.Staff.List)
			staff.GET("/:id", h.Staff.Get)
			staff.POST("", middleware.RequireRole("admin"), h.Staff.Create)
			staff.PATCH("/:id", middleware.RequireRole("admin"), h.Staff.Update)
			staff.DELETE("/:id", middleware.RequireRole("admin"), h.Staff.Delete)
		}

		catalog := protected.Group("/catalog")
		{
			catalog.GET("", h.Catalog.List)
			catalog.GET("/:id", h.Catalog.Get)
			catalog.POST("", middleware.RequireRole("admin"), h.Catalog.Create)
			catalog.PATCH("/:id", middleware.RequireRole("admin"), h.Catalog.Update)
			catalog.DELETE("/:id", middleware.RequireRole("admin"), h.Catalog.Delete)
		}

		appointments := protected.Group("/appointments")
		{
			appointments.GET("", h.Appointment.List)
			appointments.GET("/day", h.Appointment.Day)
			appointments.POST("", h.Appointment.Create)
			appointments.GET("/:id", h.Appointment.Get)
			appointments.PATCH("/:id", h.Appointment.Reschedule)
			appointments.POST("/:id/status", h.Appointment.UpdateStatus)
			appointments.DELETE("/:id", h.Appointment.Delete)
		}

		billing := protected.Group("/billing")
		{
			billing.GET("/catalog", h.Billing.Picker)
			billing.GET("/staff", h.Billing.StaffPicker)

			sessions := billing.Group("/sessions")
			{
				sessions.POST("", h.Billing.Open)
				sessions.GET("/:id", h.Billing.Get)
				sessions.DELETE("/:id", h.Billing.Abandon)

				sessions.POST("/:id/items", h.Billing.AddItem)
				sessions.PATCH("/:id/items/:itemId", h.Billing.UpdateItem)
				sessions.DELETE("/:id/items/:itemId", h.Billing.RemoveItem)

				sessions.POST("/:id/payment", h.Billing.OpenPayment)
				sessions.POST("/:id/payment/split", h.Billing.SetSplitMode)
				sessions.POST("/:id/payment/tenders", h.Billing.AddTender)
				sessions.PATCH("/:id/payment/tenders/:tenderId", h.Billing.UpdateTender)
				sessions.DELETE("/:id/payment/tenders/:tenderId", h.Billing.RemoveTender)

				sessions.POST("/:id/payment/confirm", h.Billing.RequestConfirm)
				sessions.DELETE("/:id/payment/confirm", h.Billing.CancelConfirm)
				sessions.POST("/:id/finalize", h.Billing.Finalize)
			}
		}

		bills := protected.Group("/bills")
		{
			bills.GET("", h.Bill.List)
			bills.GET("/:id", h.Bill.Get)
		}

		reports := protected.Group("/reports")
		reports.Use(middleware.RequireRole("admin"))
		{
			reports.GET("/summary", h.Report.Summary)
			reports.GET("/daily-sales", h.Report.DailySales)
			reports.GET("/payment-methods", h.Report.MethodBreakdown)
			reports.GET("/top-staff", h.Report.TopStaff)
			reports.GET("/export", h.Report.Export)
		}
	}

	return router
}
