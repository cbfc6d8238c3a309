package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OpinaApp/opina-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

func TestFeedbackRateLimiter_UnderLimit(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()

	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(FeedbackRateLimiter(redisClient, 5, time.Minute))
	router.POST("/feedback", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"status": "ok"})
	})

	key := "ratelimit:feedback:192.168.1.1"
	mock.ExpectTxPipeline()
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/feedback", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRateLimiter_OverLimit(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()

	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(FeedbackRateLimiter(redisClient, 3, time.Minute))
	router.POST("/feedback", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"status": "ok"})
	})

	key := "ratelimit:feedback:10.0.0.9"
	mock.ExpectTxPipeline()
	mock.ExpectIncr(key).SetVal(4)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()
	mock.ExpectTTL(key).SetVal(42 * time.Second)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/feedback", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.9")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	// No expectations registered: every command errors, submissions proceed
	redisClient, _ := redismock.NewClientMock()

	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(FeedbackRateLimiter(redisClient, 1, time.Minute))
	router.POST("/feedback", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/feedback", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
