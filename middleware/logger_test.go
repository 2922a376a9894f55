package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	originalOut := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	defer logrus.SetOutput(originalOut)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})

	t.Run("Logs completed requests at info level", func(t *testing.T) {
		buf.Reset()
		req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Contains(t, buf.String(), "request completed")
		assert.Contains(t, buf.String(), "/ok")
		assert.Contains(t, buf.String(), "status=200")
	})

	t.Run("Logs server errors at error level", func(t *testing.T) {
		buf.Reset()
		req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Contains(t, buf.String(), "request failed")
		assert.Contains(t, buf.String(), "status=500")
	})
}
