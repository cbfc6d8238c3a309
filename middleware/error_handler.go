package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/OpinaApp/opina-backend/errors"
	"github.com/OpinaApp/opina-backend/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the JSON
// error body. Handlers call c.Error(...) and return; this middleware owns
// status codes, logging and the response shape.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			response := gin.H{
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}
			// Details are safe to expose for client-side errors; server-side
			// details stay in the logs unless debugging.
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError ||
				appError.Type == errors.RateLimitError) {
				response["details"] = appError.Detail
			}

			c.JSON(statusCode, response)
			return
		}

		// Gin binding errors surface as validation failures.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")

			response := gin.H{
				"type":    string(errors.ValidationError),
				"message": "Failed to bind request",
				"code":    "400",
			}
			if gin.IsDebugging() {
				response["details"] = err.Error()
			}
			c.JSON(http.StatusBadRequest, response)
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")

		response := gin.H{
			"type":    string(errors.ServerError),
			"message": "Internal Server Error",
			"code":    "500",
		}
		if gin.IsDebugging() {
			response["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response)
	}
}
