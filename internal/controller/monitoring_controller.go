package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/repository"
	"smart-agriculture/internal/service"
)

// MonitoringController serves the dashboard views over prices, stock and alerts.
type MonitoringController struct {
	prices     *service.MarketPriceService
	monitoring *repository.MonitoringRepository
	clock      clock.Clock
	logger     *zap.Logger
}

func NewMonitoringController(prices *service.MarketPriceService, monitoring *repository.MonitoringRepository, clk clock.Clock, logger *zap.Logger) *MonitoringController {
	return &MonitoringController{prices: prices, monitoring: monitoring, clock: clk, logger: logger}
}

// LatestPrice handles GET /v1/crops/{id}/latest-price
func (c *MonitoringController) LatestPrice(ctx *gin.Context) {
	price, err := c.prices.Latest(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"price":           price,
		"adjusted_price":  price.AdjustedPrice(),
		"total_cost":      price.TotalCostPerKg(),
		"recent":          price.RecentPrice(c.clock.Now()),
		"opportunity":     price.MarketOpportunity(),
		"price_formatted": price.PriceFormatted(),
	})
}

// ExpiringInventory handles GET /v1/monitoring/inventory/expiring?days=N (default 7)
func (c *MonitoringController) ExpiringInventory(ctx *gin.Context) {
	days, err := strconv.Atoi(ctx.DefaultQuery("days", "7"))
	if err != nil || days <= 0 || days > 365 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid days",
			"message": "days must be an integer between 1 and 365",
		})
		return
	}

	lots, err := c.monitoring.ExpiringInventory(ctx.Request.Context(), c.clock.Now(), time.Duration(days)*24*time.Hour)
	if err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": lots, "days": days})
}

// LowStockInventory handles GET /v1/monitoring/inventory/low-stock
func (c *MonitoringController) LowStockInventory(ctx *gin.Context) {
	lots, err := c.monitoring.LowStockInventory(ctx.Request.Context())
	if err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": lots})
}

// ActiveAlerts handles GET /v1/monitoring/alerts/active
func (c *MonitoringController) ActiveAlerts(ctx *gin.Context) {
	alerts, err := c.monitoring.ActiveAlerts(ctx.Request.Context(), c.clock.Now())
	if err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": alerts})
}
