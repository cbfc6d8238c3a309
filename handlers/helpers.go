package handlers

import (
	"strconv"

	"github.com/OpinaApp/opina-backend/errors"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// bindJSONOrError binds the request body into obj, attaching a validation
// error to the context on failure. Returns false when binding failed.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return false
	}
	return true
}

// idParam parses the :id route parameter.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(errors.ValidationFailed("Invalid id", "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// paginationParams reads limit/offset query parameters with defaults.
func paginationParams(c *gin.Context) (limit, offset int) {
	limit = defaultListLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
