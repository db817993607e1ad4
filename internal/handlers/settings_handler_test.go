package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubSettings struct {
	threshold int
}

func (s *stubSettings) LotSizeThreshold() int { return s.threshold }
func (s *stubSettings) SetLotSizeThreshold(value int) error {
	s.threshold = value
	return nil
}

func settingsRouter(settings *stubSettings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSettingsHandler(settings)
	router := gin.New()
	router.GET("/api/settings/lot-size-threshold", handler.GetLotSizeThreshold)
	router.PUT("/api/settings/lot-size-threshold", handler.SetLotSizeThreshold)
	return router
}

func TestGetLotSizeThreshold(t *testing.T) {
	router := settingsRouter(&stubSettings{threshold: 3})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings/lot-size-threshold", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"lot_size_threshold":3}`, w.Body.String())
}

func TestSetLotSizeThreshold(t *testing.T) {
	settings := &stubSettings{threshold: 3}
	router := settingsRouter(settings)

	req := httptest.NewRequest(http.MethodPut, "/api/settings/lot-size-threshold", strings.NewReader(`{"value":7}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 7, settings.threshold)
}

func TestSetLotSizeThresholdRejectsNonPositive(t *testing.T) {
	settings := &stubSettings{threshold: 3}
	router := settingsRouter(settings)

	for _, body := range []string{`{"value":0}`, `{"value":-1}`, `{}`, `not json`} {
		req := httptest.NewRequest(http.MethodPut, "/api/settings/lot-size-threshold", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		require.Equal(t, 3, settings.threshold)
	}
}
