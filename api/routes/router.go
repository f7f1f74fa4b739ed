// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"busbook/internal/authtoken"
	"busbook/internal/checkout"
	"busbook/internal/events"
	"busbook/internal/fares"
	"busbook/internal/history"
	"busbook/internal/payments"
	"busbook/internal/seatmap"
	"busbook/internal/shared/config"
	"busbook/internal/shared/database"
	"busbook/internal/tickets"
	"busbook/internal/upstream"
	"busbook/pkg/logger"
	"busbook/pkg/store"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer events.Producer
	log      *logger.Logger

	// Shared services built during setup, for dependency injection
	client         upstream.Client
	store          store.Service
	carrier        *checkout.Carrier
	historyService history.Service
	orchestrator   payments.Orchestrator
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer events.Producer, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupSharedServices()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthTokenRoutes(api)
		r.setupSeatMapRoutes(api)

		// Payment routes build the orchestrator the checkout guard depends on
		r.setupPaymentRoutes(api)
		r.setupCheckoutRoutes(api)

		r.setupHistoryRoutes(api)
		r.setupTicketRoutes(api)
	}
}

// setupSharedServices builds the services shared across feature routers
func (r *Router) setupSharedServices() {
	r.client = upstream.NewClient(r.config.Upstream)
	r.store = store.NewService(r.db.GetRedisClient())
	r.carrier = checkout.NewCarrier(r.store, r.config.Redis.SeatBackupTTL, r.log)

	historyRepo := history.NewRepository(r.db.GetPostgreSQL())
	r.historyService = history.NewService(historyRepo, r.log)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "busbook",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busbook",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthTokenRoutes configures session token routes
func (r *Router) setupAuthTokenRoutes(rg *gin.RouterGroup) {
	authService := authtoken.NewService(r.store)
	authController := authtoken.NewController(authService)

	authtoken.SetupAuthTokenRoutes(rg, authController)
}

// setupSeatMapRoutes configures seat map routes
func (r *Router) setupSeatMapRoutes(rg *gin.RouterGroup) {
	engine := seatmap.NewEngine(r.config.Layout)
	seatMapService := seatmap.NewService(r.client, engine, r.log)
	seatMapController := seatmap.NewController(seatMapService)

	seatmap.SetupSeatMapRoutes(rg, seatMapController)
}

// setupPaymentRoutes configures payment orchestration routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	recorder := history.NewRecorderAdapter(r.historyService)
	redirect := payments.NewRedirectGateway(r.config.Gateway)

	r.orchestrator = payments.NewOrchestrator(r.client, r.store, r.carrier,
		recorder, r.producer, redirect, r.config.Redis.PaymentPendingTTL, r.log)
	paymentController := payments.NewController(r.orchestrator)

	payments.SetupPaymentRoutes(rg, paymentController)
}

// setupCheckoutRoutes configures checkout step routes
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	calculator := fares.NewCalculator(r.config.Fare)
	couponService := fares.NewCouponService(r.client)

	checkoutService := checkout.NewService(r.carrier, calculator, couponService, r.orchestrator)
	checkoutController := checkout.NewController(checkoutService)

	checkout.SetupCheckoutRoutes(rg, checkoutController)
}

// setupHistoryRoutes configures booking history routes
func (r *Router) setupHistoryRoutes(rg *gin.RouterGroup) {
	historyController := history.NewController(r.historyService)

	history.SetupHistoryRoutes(rg, historyController)
}

// setupTicketRoutes configures ticket download routes
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketService := tickets.NewService(r.client, r.historyService, r.log)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController)
}
