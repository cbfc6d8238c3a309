package handlers

import (
	"net/http"

	"github.com/OpinaApp/opina-backend/internal/metrics"
	"github.com/OpinaApp/opina-backend/models"
	"github.com/OpinaApp/opina-backend/types"
	"github.com/gin-gonic/gin"
)

// FeedbackItemHandler serves the suggestion and complaint endpoints. The
// same handler backs both categories; routes bind the category at
// registration time.
type FeedbackItemHandler struct {
	itemModel *models.FeedbackItemModel
}

// NewFeedbackItemHandler creates a new FeedbackItemHandler.
func NewFeedbackItemHandler(itemModel *models.FeedbackItemModel) *FeedbackItemHandler {
	return &FeedbackItemHandler{itemModel: itemModel}
}

// Create godoc
// @Summary      Submit a new feedback item
// @Description  Submits a suggestion or complaint as the category's active item. Previously active items of the category are archived to the terminal status first.
// @Tags         feedback-items
// @Accept       json
// @Produce      json
// @Param        body  body      types.FeedbackItemCreate  true  "Item payload"
// @Success      201   {object}  types.FeedbackItem
// @Failure      400   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /suggestions [post]
// @Security     BearerAuth
func (h *FeedbackItemHandler) Create(category types.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.FeedbackItemCreate
		if !bindJSONOrError(c, &req) {
			return
		}

		item, err := h.itemModel.SubmitActive(c.Request.Context(), category, req.Title, req.Description)
		if err != nil {
			_ = c.Error(err)
			return
		}

		metrics.ItemSubmissions.WithLabelValues(string(category)).Inc()
		c.JSON(http.StatusCreated, item)
	}
}

// List returns a page of the category's items, newest first.
func (h *FeedbackItemHandler) List(category types.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := paginationParams(c)

		page, err := h.itemModel.List(c.Request.Context(), category, limit, offset)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// Get returns a single item by id.
func (h *FeedbackItemHandler) Get(category types.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		item, err := h.itemModel.Get(c.Request.Context(), category, id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// Update applies a partial edit (title, description, status) to an item.
func (h *FeedbackItemHandler) Update(category types.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req types.FeedbackItemUpdate
		if !bindJSONOrError(c, &req) {
			return
		}

		if err := h.itemModel.Update(c.Request.Context(), category, id, &req); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, types.StatusResponse{Status: "Feedback item updated"})
	}
}

// Delete removes an item.
func (h *FeedbackItemHandler) Delete(category types.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		if err := h.itemModel.Delete(c.Request.Context(), category, id); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, types.StatusResponse{Status: "Feedback item deleted"})
	}
}
