package pricing

import (
	"context"
	"time"

	"hotelbook/pkg/client"
	"hotelbook/pkg/logger"
)

// Client calls the pricing service and falls back to the base price on any
// fault.
type Client struct {
	http *client.HttpClient
	log  *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http: client.NewHttpClient(baseURL, timeout),
		log:  log,
	}
}

func (c *Client) Predict(ctx context.Context, req PredictionRequest) PredictionResponse {
	fallback := PredictionResponse{PredictedPrice: req.BasePrice, Reason: ReasonUnavailable}

	resp, err := c.http.POST(ctx, "/predict", req)
	if err != nil {
		c.log.Warn("Pricing service unreachable", "error", err)
		return fallback
	}
	if !resp.IsSuccess() {
		c.log.Warn("Pricing service returned an error", "status", resp.StatusCode)
		return fallback
	}

	var body struct {
		Data PredictionResponse `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil || body.Data.Reason == "" {
		c.log.Warn("Pricing service returned an unexpected body", "error", err)
		return fallback
	}
	return body.Data
}
