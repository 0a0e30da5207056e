package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smart-agriculture/internal/service"
)

const (
	maxFarmIDLength = 64
	maxSectorLength = 100
)

// AnalyticsController handles analytics-related HTTP requests
type AnalyticsController struct {
	analyticsService service.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(analyticsService service.AnalyticsService, logger *zap.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetIrrigationAnalytics handles GET /v1/farms/{id}/irrigation/analytics
// Query parameters:
//   - sector (optional): Filter by sector name
//   - start_date (required): Start of the range, inclusive, in ISO 8601 format (RFC3339 or YYYY-MM-DD)
//   - end_date (required): End of the range, exclusive, in ISO 8601 format (RFC3339 or YYYY-MM-DD)
//   - aggregation (optional): daily, weekly, or monthly (default: daily)
func (c *AnalyticsController) GetIrrigationAnalytics(ctx *gin.Context) {
	startTime := time.Now()

	farmID := ctx.Param("id")
	if farmID == "" || len(farmID) > maxFarmIDLength {
		c.logger.Warn("invalid farm_id", zap.String("farm_id", farmID))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid farm_id",
			"message": fmt.Sprintf("farm_id must be between 1 and %d characters", maxFarmIDLength),
		})
		return
	}

	var sector *string
	if sectorStr, ok := ctx.GetQuery("sector"); ok {
		if sectorStr == "" || len(sectorStr) > maxSectorLength {
			c.logger.Warn("invalid sector",
				zap.String("sector", sectorStr),
				zap.String("farm_id", farmID),
			)
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid sector",
				"message": fmt.Sprintf("sector must be between 1 and %d characters", maxSectorLength),
			})
			return
		}
		sector = &sectorStr
	}

	startDate, ok := c.dateParam(ctx, "start_date", farmID)
	if !ok {
		return
	}
	endDate, ok := c.dateParam(ctx, "end_date", farmID)
	if !ok {
		return
	}

	if !endDate.After(startDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date range",
			"message": "end_date must be after start_date",
		})
		return
	}

	aggregation := ctx.DefaultQuery("aggregation", service.AggregationDaily)
	if aggregation != service.AggregationDaily && aggregation != service.AggregationWeekly && aggregation != service.AggregationMonthly {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid aggregation",
			"message": "aggregation must be one of: daily, weekly, monthly",
		})
		return
	}

	reqCtx := ctx.Request.Context()
	farmExists, err := c.analyticsService.FarmExists(reqCtx, farmID)
	if err != nil {
		c.logger.Error("failed to check farm existence",
			zap.String("farm_id", farmID),
			zap.Error(err),
			zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to verify farm existence",
		})
		return
	}
	if !farmExists {
		c.logger.Warn("farm not found",
			zap.String("farm_id", farmID),
			zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		)
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Farm not found",
			"message": fmt.Sprintf("Farm with ID %s does not exist", farmID),
		})
		return
	}

	fields := []zap.Field{
		zap.String("farm_id", farmID),
		zap.Stringp("sector", sector),
		zap.Time("start_date", startDate),
		zap.Time("end_date", endDate),
		zap.String("aggregation", aggregation),
	}
	c.logger.Debug("processing analytics request", fields...)

	analytics, err := c.analyticsService.GetIrrigationAnalytics(reqCtx, farmID, sector, startDate, endDate, aggregation)
	if err != nil {
		c.logger.Error("failed to retrieve analytics", append(fields,
			zap.Error(err),
			zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		)...)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to retrieve analytics data",
		})
		return
	}

	c.logger.Info("analytics request completed", append(fields,
		zap.Int("data_points", len(analytics.Data)),
		zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)...)

	ctx.JSON(http.StatusOK, analytics)
}

// dateParam reads a required date query parameter, writing the 400 response when
// it is missing or malformed.
func (c *AnalyticsController) dateParam(ctx *gin.Context, name, farmID string) (time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required parameter",
			"message": name + " is required",
		})
		return time.Time{}, false
	}

	t, err := parseISO8601Date(raw)
	if err != nil {
		c.logger.Warn("invalid "+name,
			zap.String(name, raw),
			zap.String("farm_id", farmID),
			zap.Error(err),
		)
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid " + name,
			"message": name + " must be in ISO 8601 format (RFC3339 or YYYY-MM-DD)",
		})
		return time.Time{}, false
	}
	return t, true
}

// parseISO8601Date parses a date string in ISO 8601 format (RFC3339 is ISO 8601 compliant)
// Supports:
//   - RFC3339 (e.g., "2006-01-02T15:04:05Z07:00")
//   - RFC3339Nano (e.g., "2006-01-02T15:04:05.999999999Z07:00")
//   - YYYY-MM-DD (e.g., "2006-01-02")
//   - YYYY-MM-DDTHH:MM:SS (e.g., "2006-01-02T15:04:05")
//
// Results are in UTC.
func parseISO8601Date(dateStr string) (time.Time, error) {
	// RFC3339 also accepts fractional seconds
	if t, err := time.Parse(time.RFC3339Nano, dateStr); err == nil {
		return t.UTC(), nil
	}

	// Try YYYY-MM-DD format (ISO 8601 date format)
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		// Set to start of day in UTC
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	// Try YYYY-MM-DDTHH:MM:SS format, read as UTC
	if t, err := time.Parse("2006-01-02T15:04:05", dateStr); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse ISO 8601 date: %s (expected RFC3339 or YYYY-MM-DD format)", dateStr)
}
