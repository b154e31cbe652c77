package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/fruitstore/fruit-api/pkg/logger"
	"github.com/fruitstore/fruit-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)
	logger.Init("info")

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/fruits/:id", func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "Fruit not found"}) })

	counter := metrics.HTTPRequests.WithLabelValues("GET", "/fruits/:id", "404")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fruits/42", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, before+1, testutil.ToFloat64(counter))
	require.Contains(t, buf.String(), "GET /fruits/42 -> 404")
}
