package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
	"smart-agriculture/internal/service"
	"smart-agriculture/internal/validation"
)

// writeError maps service errors to HTTP responses.
func writeError(ctx *gin.Context, logger *zap.Logger, err error) {
	var verr *validation.Error
	var cerr *model.ConservationError

	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Validation failed",
			"message": verr.Error(),
			"fields":  verr.Fields,
		})
	case errors.As(err, &cerr):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Quantity conservation violated",
			"message":       cerr.Reason,
			"quantity_in":   cerr.QuantityIn,
			"quantity_out":  cerr.QuantityOut,
			"loss_quantity": cerr.LossQuantity,
		})
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrUnknownAction):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unknown action",
			"message": err.Error(),
		})
	default:
		logger.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "The request could not be completed",
		})
	}
}
