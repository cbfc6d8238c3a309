package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/OpinaApp/opina-backend/internal/metrics"
	"github.com/OpinaApp/opina-backend/models"
	"github.com/OpinaApp/opina-backend/types"
	"github.com/gin-gonic/gin"
)

// ResponseHandler serves the public intake form and the admin response
// endpoints (list, dashboard, CSV export, create).
type ResponseHandler struct {
	responseModel *models.ResponseModel
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(responseModel *models.ResponseModel) *ResponseHandler {
	return &ResponseHandler{responseModel: responseModel}
}

// Submit godoc
// @Summary      Submit public feedback
// @Description  Submits a response from the public feedback form. The response is linked to the currently active item of the chosen type.
// @Tags         responses
// @Accept       json
// @Produce      json
// @Param        body  body      types.ResponseSubmit  true  "Feedback payload"
// @Success      201   {object}  types.StatusResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Router       /feedback [post]
func (h *ResponseHandler) Submit(c *gin.Context) {
	var req types.ResponseSubmit
	if !bindJSONOrError(c, &req) {
		return
	}

	// Public submissions attach to the item currently awaiting resolution
	_, err := h.responseModel.SubmitResponse(c.Request.Context(), req.Type, req.Response, types.StatusActive)
	if err != nil {
		_ = c.Error(err)
		return
	}

	metrics.FeedbackSubmissions.WithLabelValues(string(req.Type)).Inc()
	c.JSON(http.StatusCreated, types.StatusResponse{Status: "Feedback submitted successfully"})
}

// Review handles the admin review flow: same body as the public form, but
// the reference resolves against the type's terminal-positive status.
func (h *ResponseHandler) Review(c *gin.Context) {
	var req types.ResponseSubmit
	if !bindJSONOrError(c, &req) {
		return
	}

	resp, err := h.responseModel.SubmitResponse(c.Request.Context(), req.Type, req.Response, req.Type.TerminalStatus())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Create handles the admin create form with an explicit reference id.
func (h *ResponseHandler) Create(c *gin.Context) {
	var req types.ResponseCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	resp, err := h.responseModel.CreateResponse(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns a page of responses, newest first.
func (h *ResponseHandler) List(c *gin.Context) {
	limit, offset := paginationParams(c)

	page, err := h.responseModel.List(c.Request.Context(), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns a single response by id.
func (h *ResponseHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	resp, err := h.responseModel.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary      Response counts by type
// @Tags         responses
// @Produce      json
// @Success      200  {object}  types.DashboardStats
// @Router       /responses/dashboard [get]
// @Security     BearerAuth
func (h *ResponseHandler) Dashboard(c *gin.Context) {
	stats, err := h.responseModel.Dashboard(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportCSV streams the full response set as a CSV attachment.
func (h *ResponseHandler) ExportCSV(c *gin.Context) {
	csv, err := h.responseModel.ExportCSV(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	filename := fmt.Sprintf("feedback-responses-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
