package handlers

import (
	"net/http"

	"github.com/OpinaApp/opina-backend/errors"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 300

// QRHandler serves a QR code image pointing at the public feedback form,
// for printing on receipts and posters.
type QRHandler struct {
	formURL string
}

// NewQRHandler creates a QRHandler encoding the given form URL.
func NewQRHandler(formURL string) *QRHandler {
	return &QRHandler{formURL: formURL}
}

// FeedbackQR godoc
// @Summary      QR code for the public feedback form
// @Tags         feedback
// @Produce      png
// @Success      200  {file}    binary
// @Failure      500  {object}  types.ErrorResponse
// @Router       /feedback/qr [get]
func (h *QRHandler) FeedbackQR(c *gin.Context) {
	png, err := qrcode.Encode(h.formURL, qrcode.Medium, qrSize)
	if err != nil {
		_ = c.Error(errors.Wrap(err, errors.ServerError, "Failed to generate QR code"))
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
