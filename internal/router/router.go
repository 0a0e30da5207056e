package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/controller"
	"smart-agriculture/internal/logger"
	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/middleware"
	"smart-agriculture/internal/repository"
	"smart-agriculture/internal/service"
)

// Dependencies are the services the HTTP boundary serves.
type Dependencies struct {
	Records     *service.Records
	Transitions *service.TransitionService
	Analytics   service.AnalyticsService
	Prices      *service.MarketPriceService
	Monitoring  *repository.MonitoringRepository
	Clock       clock.Clock
	Metrics     *metrics.Metrics
	// Ping reports database reachability on /healthz when set.
	Ping func(ctx context.Context) error
}

type registrar interface {
	Register(group *gin.RouterGroup)
}

// New wires the Gin engine with required routes and middlewares.
func New(deps Dependencies, base *zap.Logger) *gin.Engine {
	log := logger.Named(base, "http")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.StructuredLoggingMiddleware(log))
	r.Use(middleware.RequestMetrics(deps.Metrics))

	r.GET("/healthz", health(deps.Ping))
	r.GET("/metrics", middleware.MetricsHandler(deps.Metrics))

	v1 := r.Group("/v1")

	rec := deps.Records
	crud := map[string]registrar{
		"/farms":              controller.NewRecordController(rec.Farms, log, "district"),
		"/crops":              controller.NewRecordController(rec.Crops, log, "crop_type"),
		"/buyers":             controller.NewRecordController(rec.Buyers, log, "buyer_type", "district"),
		"/productions":        controller.NewRecordController(rec.Productions, log, "farm_id", "crop_id", "status"),
		"/fertilizer-usages":  controller.NewRecordController(rec.Fertilizers, log, "farm_id", "crop_production_id"),
		"/irrigation":         controller.NewRecordController(rec.Irrigation, log, "farm_id", "sector"),
		"/market-prices":      controller.NewRecordController(rec.MarketPrices, log, "crop_id", "market_type"),
		"/inventory":          controller.NewRecordController(rec.Inventory, log, "farm_id", "crop_id", "status"),
		"/supply-chain":       controller.NewRecordController(rec.SupplyChain, log, "crop_id", "inventory_id", "stage"),
		"/transactions":       controller.NewRecordController(rec.Transactions, log, "buyer_id", "farmer_id", "crop_id", "status"),
		"/environmental-data": controller.NewRecordController(rec.Environmental, log, "farm_id", "environmental_risk_level"),
		"/alerts":             controller.NewRecordController(rec.Alerts, log, "category", "alert_level", "resolution_status"),
		"/predictions":        controller.NewRecordController(rec.Predictions, log, "crop_id", "farm_id", "validation_status"),
		"/recommendations":    controller.NewRecordController(rec.Recommendations, log, "farm_id", "crop_id", "status"),
		"/policies":           controller.NewRecordController(rec.Policies, log, "status", "policy_type", "policy_category"),
		"/climate-impacts":    controller.NewRecordController(rec.ClimateImpacts, log, "crop_id", "district", "climate_event", "season"),
	}
	for path, c := range crud {
		c.Register(v1.Group(path))
	}

	transitions := controller.NewTransitionController(log)
	v1.POST("/transactions/:id/:action", transitions.Handle(deps.Transitions.Transaction))
	v1.POST("/alerts/:id/:action", transitions.Handle(deps.Transitions.Alert))
	v1.POST("/predictions/:id/:action", transitions.Handle(deps.Transitions.Prediction))
	v1.POST("/recommendations/:id/:action", transitions.Handle(deps.Transitions.Recommendation))
	v1.GET("/transitions", func(c *gin.Context) {
		c.JSON(http.StatusOK, service.Actions())
	})

	analytics := controller.NewAnalyticsController(deps.Analytics, log)
	v1.GET("/farms/:id/irrigation/analytics", analytics.GetIrrigationAnalytics)

	monitoring := controller.NewMonitoringController(deps.Prices, deps.Monitoring, deps.Clock, log)
	v1.GET("/crops/:id/latest-price", monitoring.LatestPrice)
	v1.GET("/monitoring/inventory/expiring", monitoring.ExpiringInventory)
	v1.GET("/monitoring/inventory/low-stock", monitoring.LowStockInventory)
	v1.GET("/monitoring/alerts/active", monitoring.ActiveAlerts)

	log.Info("router initialized")
	return r
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
