package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smart-agriculture/internal/model"
	"smart-agriculture/internal/service"
)

const maxPageSize = 500

// RecordController serves create, read, update, delete and list for one entity kind.
type RecordController[T any, PT interface {
	*T
	model.Entity
}] struct {
	records *service.RecordService[T, PT]
	filters []string
	logger  *zap.Logger
}

// NewRecordController creates a controller. filters names the columns a list
// request may filter on with equally named query parameters.
func NewRecordController[T any, PT interface {
	*T
	model.Entity
}](records *service.RecordService[T, PT], logger *zap.Logger, filters ...string) *RecordController[T, PT] {
	return &RecordController[T, PT]{records: records, filters: filters, logger: logger}
}

// Register mounts the routes on group.
func (c *RecordController[T, PT]) Register(group *gin.RouterGroup) {
	group.POST("", c.Create)
	group.GET("", c.List)
	group.GET("/:id", c.Get)
	group.PUT("/:id", c.Update)
	group.DELETE("/:id", c.Delete)
}

func (c *RecordController[T, PT]) Create(ctx *gin.Context) {
	rec := PT(new(T))
	if err := ctx.ShouldBindJSON(rec); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	rec.Meta().ID = ""
	model.ResetLifecycle(rec)

	if err := c.records.Create(ctx.Request.Context(), rec); err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, rec)
}

// Update applies the fields present in the body to the stored record. Lifecycle
// columns keep their stored values.
func (c *RecordController[T, PT]) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	rec, err := c.records.Get(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, c.logger, err)
		return
	}

	meta := *rec.Meta()
	restore := model.KeepLifecycle(rec)
	if err := ctx.ShouldBindJSON(rec); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	*rec.Meta() = meta
	restore()

	if err := c.records.Update(ctx.Request.Context(), rec); err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, rec)
}

func (c *RecordController[T, PT]) Get(ctx *gin.Context) {
	rec, err := c.records.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, rec)
}

func (c *RecordController[T, PT]) Delete(ctx *gin.Context) {
	if err := c.records.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// List handles GET with optional filters plus limit and offset.
func (c *RecordController[T, PT]) List(ctx *gin.Context) {
	filter := service.ListFilter{Equals: make(map[string]string)}
	for _, name := range c.filters {
		if v := ctx.Query(name); v != "" {
			filter.Equals[name] = v
		}
	}

	var err error
	if filter.Limit, err = pageParam(ctx, "limit", 100); err != nil || filter.Limit > maxPageSize {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid limit",
			"message": "limit must be an integer between 0 and 500",
		})
		return
	}
	if filter.Offset, err = pageParam(ctx, "offset", 0); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid offset",
			"message": "offset must be a non-negative integer",
		})
		return
	}

	items, err := c.records.List(ctx.Request.Context(), filter)
	if err != nil {
		writeError(ctx, c.logger, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items":  items,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func pageParam(ctx *gin.Context, name string, fallback int) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}
