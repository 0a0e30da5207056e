package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smart-agriculture/internal/service"
)

// TransitionFunc applies a named transition to one record.
type TransitionFunc func(ctx context.Context, id, action string, req service.TransitionRequest) (*service.TransitionResult, error)

// TransitionController handles POST /v1/{entity}/{id}/{action}
type TransitionController struct {
	logger *zap.Logger
}

func NewTransitionController(logger *zap.Logger) *TransitionController {
	return &TransitionController{logger: logger}
}

// Handle returns a handler applying transitions through apply. The body is optional.
func (c *TransitionController) Handle(apply TransitionFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req service.TransitionRequest
		if ctx.Request.ContentLength != 0 {
			if err := ctx.ShouldBindJSON(&req); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error":   "Invalid request body",
					"message": err.Error(),
				})
				return
			}
		}

		id, action := ctx.Param("id"), ctx.Param("action")
		result, err := apply(ctx.Request.Context(), id, action, req)
		if err != nil {
			writeError(ctx, c.logger, err)
			return
		}

		c.logger.Info("transition handled",
			zap.String("id", id),
			zap.String("action", action),
			zap.Bool("applied", result.Applied),
		)
		ctx.JSON(http.StatusOK, result)
	}
}
