package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonalModel(t *testing.T) {
	m := NewSeasonalModel(logger.Discard())

	tests := []struct {
		name   string
		req    PredictionRequest
		price  float64
		reason string
	}{
		{"summer", PredictionRequest{BasePrice: 200, Date: "2025-07-14"}, 300, ReasonHighSeason},
		{"september", PredictionRequest{BasePrice: 99.98, Date: "2025-09-30"}, 149.97, ReasonHighSeason},
		{"winter", PredictionRequest{BasePrice: 200, Date: "2025-01-10"}, 160, ReasonLowSeason},
		{"december", PredictionRequest{BasePrice: 10.01, Date: "2025-12-01"}, 8.01, ReasonLowSeason},
		{"spring", PredictionRequest{BasePrice: 200, Date: "2025-04-01"}, 200, ReasonStandard},
		{"default base price", PredictionRequest{Date: "2025-10-01"}, 100, ReasonStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := m.Predict(context.Background(), tt.req)
			assert.Equal(t, tt.price, resp.PredictedPrice)
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestSeasonalModel_BadInputFallsBack(t *testing.T) {
	m := NewSeasonalModel(logger.Discard())

	resp := m.Predict(context.Background(), PredictionRequest{BasePrice: 150, Date: "14/07/2025"})
	assert.Equal(t, 150.0, resp.PredictedPrice)
	assert.Zero(t, resp.Multiplier)
	assert.Contains(t, resp.Reason, "Fallback Used")

	resp = m.Predict(context.Background(), PredictionRequest{BasePrice: 150})
	assert.Equal(t, 150.0, resp.PredictedPrice)
	assert.Contains(t, resp.Reason, "date is required")
}

func TestSeason(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		multiplier, _ := Season(month)
		assert.Contains(t, []float64{0.8, 1.0, 1.5}, multiplier)
	}
}

func newPricingServer(t *testing.T) *httptest.Server {
	router := httprouter.New()
	NewHandler(NewSeasonalModel(logger.Discard()), logger.Discard()).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CallsPricingService(t *testing.T) {
	srv := newPricingServer(t)
	c := NewClient(srv.URL, time.Second, logger.Discard())

	resp := c.Predict(context.Background(), PredictionRequest{BasePrice: 200, Date: "2025-08-01", RoomType: "Suite"})
	assert.Equal(t, 300.0, resp.PredictedPrice)
	assert.Equal(t, 1.5, resp.Multiplier)
	assert.Equal(t, ReasonHighSeason, resp.Reason)
}

func TestClient_FailsOpen(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer slow.Close()

	req := PredictionRequest{BasePrice: 180, Date: "2025-08-01"}
	for _, url := range []string{down.URL, slow.URL, "http://127.0.0.1:1"} {
		resp := NewClient(url, 50*time.Millisecond, logger.Discard()).Predict(context.Background(), req)
		assert.Equal(t, 180.0, resp.PredictedPrice, url)
		assert.Equal(t, ReasonUnavailable, resp.Reason, url)
	}
}

func TestHandler_ProxiesThroughClient(t *testing.T) {
	srv := newPricingServer(t)
	router := httprouter.New()
	NewHandler(NewClient(srv.URL, time.Second, logger.Discard()), logger.Discard()).RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"basePrice":100,"date":"2025-02-01"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"predictedPrice":80,"multiplier":0.8,"reason":"Low Season (Winter)"}}`, rec.Body.String())
}
