package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/mealchain/internal/domain"
)

type stubForecast struct {
	resp        *domain.ForecastResponse
	err         error
	got         domain.ForecastRequest
	invalidated bool
}

func (s *stubForecast) Run(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, error) {
	s.got = req
	return s.resp, s.err
}

func (s *stubForecast) InvalidateCache(ctx context.Context) error {
	s.invalidated = true
	return nil
}

func (s *stubForecast) Seasonality() domain.SeasonalityProfile {
	return domain.SeasonalityProfile{TrendModel: "linear", Categories: map[string][]float64{"fruit": {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}}}
}

type stubScaling struct {
	resp *domain.ScalingResponse
	err  error
}

func (s *stubScaling) Scale(ctx context.Context, req domain.ScalingRequest) (*domain.ScalingResponse, error) {
	return s.resp, s.err
}

func serve(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newTestRouter(forecast *stubForecast, scaling *stubScaling) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(&Services{Forecast: forecast, Scaling: scaling}, nil)
}

func TestForecastEndpoint(t *testing.T) {
	forecast := &stubForecast{resp: &domain.ForecastResponse{
		RunID:            "run-1",
		PredictionPeriod: 14,
		Predictions:      []domain.Prediction{{ItemID: "rice", DaysUntilStockout: 999, ConfidenceScore: 30}},
		Alerts:           []domain.Alert{},
		Recommendations:  []domain.Recommendation{},
	}}
	router := newTestRouter(forecast, &stubScaling{})

	w := serve(t, router, http.MethodPost, "/api/v1/inventory/forecast",
		`{"predictionPeriod":14,"targetItems":["rice"],"includeSeasonality":false,"alertThreshold":0.3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 14, forecast.got.PredictionPeriod)
	assert.Equal(t, []string{"rice"}, forecast.got.TargetItems)
	require.NotNil(t, forecast.got.IncludeSeasonality)
	assert.False(t, *forecast.got.IncludeSeasonality)
	require.NotNil(t, forecast.got.AlertThreshold)
	assert.Equal(t, 0.3, *forecast.got.AlertThreshold)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body["runId"])
	assert.Contains(t, body, "summary")
	predictions := body["predictions"].([]interface{})
	assert.Equal(t, float64(999), predictions[0].(map[string]interface{})["daysUntilStockout"])
}

func TestForecastEndpoint_EmptyBodyUsesDefaults(t *testing.T) {
	forecast := &stubForecast{resp: &domain.ForecastResponse{}}
	router := newTestRouter(forecast, &stubScaling{})

	w := serve(t, router, http.MethodPost, "/api/v1/inventory/forecast", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, forecast.got.PredictionPeriod)
	assert.Nil(t, forecast.got.IncludeSeasonality)
}

func TestForecastEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantDetail bool
	}{
		{"malformed json", `{"predictionPeriod":`, nil, http.StatusBadRequest, true},
		{"wrong type", `{"predictionPeriod":"soon"}`, nil, http.StatusBadRequest, true},
		{"validation", `{}`, fmt.Errorf("period: %w", domain.ErrInvalidRequest), http.StatusBadRequest, true},
		{"fetch failure", `{}`, errors.New("fetch inventory snapshot: dial tcp: refused"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubForecast{err: tt.err}, &stubScaling{})

			w := serve(t, router, http.MethodPost, "/api/v1/inventory/forecast", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			_, hasDetail := body["details"]
			assert.Equal(t, tt.wantDetail, hasDetail)
			assert.NotContains(t, body, "predictions")
		})
	}
}

func TestScaleEndpoint(t *testing.T) {
	scaling := &stubScaling{resp: &domain.ScalingResponse{
		CanProduce: true,
		BatchInfo:  domain.BatchInfo{RecipeID: "nasi-goreng", ScalingFactor: 4},
	}}
	router := newTestRouter(&stubForecast{}, scaling)

	w := serve(t, router, http.MethodPost, "/api/v1/production/scale", `{"recipeId":"nasi-goreng","targetPortions":200}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body domain.ScalingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.CanProduce)
	assert.Equal(t, 4.0, body.BatchInfo.ScalingFactor)
}

func TestScaleEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"missing recipe id", `{"targetPortions":10}`, nil, http.StatusBadRequest},
		{"zero portions", `{"recipeId":"x","targetPortions":0}`, nil, http.StatusBadRequest},
		{"negative portions", `{"recipeId":"x","targetPortions":-5}`, nil, http.StatusBadRequest},
		{"unknown recipe", `{"recipeId":"x","targetPortions":10}`, fmt.Errorf("recipe x: %w", domain.ErrRecipeNotFound), http.StatusNotFound},
		{"unscalable recipe", `{"recipeId":"x","targetPortions":10}`, fmt.Errorf("recipe x: %w", domain.ErrInvalidRecipe), http.StatusUnprocessableEntity},
		{"store down", `{"recipeId":"x","targetPortions":10}`, errors.New("fetch inventory lots: timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubForecast{}, &stubScaling{err: tt.err})

			w := serve(t, router, http.MethodPost, "/api/v1/production/scale", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSeasonalityAndCacheEndpoints(t *testing.T) {
	forecast := &stubForecast{}
	router := newTestRouter(forecast, &stubScaling{})

	w := serve(t, router, http.MethodGet, "/api/v1/inventory/forecast/seasonality", "")
	require.Equal(t, http.StatusOK, w.Code)
	var profile domain.SeasonalityProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "linear", profile.TrendModel)
	assert.Len(t, profile.Categories["fruit"], 12)

	w = serve(t, router, http.MethodDelete, "/api/v1/inventory/forecast/cache", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, forecast.invalidated)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := serve(t, NewRouter(nil, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	down := NewRouter(&Services{Ping: func(ctx context.Context) error { return errors.New("down") }}, nil)
	w = serve(t, down, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"https://a.example, https://b.example", " "})
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)
	assert.False(t, all)

	_, all = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, all)
}
