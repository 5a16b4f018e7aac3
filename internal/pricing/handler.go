package pricing

import (
	"net/http"

	httputil "hotelbook/pkg/http"
	"hotelbook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	predictor Predictor
	log       *logger.Logger
}

func NewHandler(predictor Predictor, log *logger.Logger) *Handler {
	return &Handler{
		predictor: predictor,
		log:       log,
	}
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req PredictionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, h.predictor.Predict(r.Context(), req)); err != nil {
		h.log.Error("failed to write success response", "handler", "Predict", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/predict", h.Predict)
}
