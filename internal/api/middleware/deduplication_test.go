package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodkg-recommender/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func dedupRouter(window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{DedupEnabled: true, DedupWindow: window}
	router := gin.New()
	router.Use(Deduplication(cfg))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
	router.POST("/dedup", handler)
	router.GET("/dedup", handler)
	return router
}

func postBody(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestDeduplicationBlocksRepeatedPost(t *testing.T) {
	router := dedupRouter(time.Minute)

	assert.Equal(t, http.StatusOK, postBody(router, "/dedup", `{"input": "repeat-a"}`).Code)

	resp := postBody(router, "/dedup", `{"input": "repeat-a"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Contains(t, resp.Body.String(), "Request too frequent")
}

func TestDeduplicationAllowsDifferentBodies(t *testing.T) {
	router := dedupRouter(time.Minute)

	assert.Equal(t, http.StatusOK, postBody(router, "/dedup", `{"input": "distinct-a"}`).Code)
	assert.Equal(t, http.StatusOK, postBody(router, "/dedup", `{"input": "distinct-b"}`).Code)
}

func TestDeduplicationIgnoresGet(t *testing.T) {
	router := dedupRouter(time.Minute)

	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/dedup", nil))
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestDeduplicationExpiresAfterWindow(t *testing.T) {
	router := dedupRouter(30 * time.Millisecond)

	assert.Equal(t, http.StatusOK, postBody(router, "/dedup", `{"input": "expire-a"}`).Code)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, http.StatusOK, postBody(router, "/dedup", `{"input": "expire-a"}`).Code)
}
