package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pricewatch/internal/domain"
	"pricewatch/internal/usecase"
)

type Handlers struct {
	alerts        *usecase.AlertUsecase
	evaluator     *usecase.Evaluator
	webhookSecret string
	webhookSource string
	logger        *zap.Logger
}

func NewHandlers(alerts *usecase.AlertUsecase, evaluator *usecase.Evaluator, webhookSecret, webhookSource string, logger *zap.Logger) *Handlers {
	return &Handlers{
		alerts:        alerts,
		evaluator:     evaluator,
		webhookSecret: webhookSecret,
		webhookSource: webhookSource,
		logger:        logger,
	}
}

type registerRequest struct {
	Token     string      `json:"token"`
	Symbol    string      `json:"symbol"`
	Direction string      `json:"direction"`
	Price     json.Number `json:"price"`
	Source    string      `json:"source"`
}

type alertSummary struct {
	ID        uint    `json:"id"`
	Symbol    string  `json:"symbol"`
	Direction string  `json:"direction"`
	Price     float64 `json:"price"`
	Source    string  `json:"source"`
}

func (h *Handlers) RegisterAlert(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	// A missing direction means Above.
	if strings.TrimSpace(req.Direction) == "" {
		req.Direction = string(domain.DirectionAbove)
	}

	price, err := req.Price.Float64()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	alert, err := h.alerts.Register(r.Context(), req.Token, req.Symbol, req.Direction, price, req.Source)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTooManyAlerts):
			writeError(w, http.StatusBadRequest, "Max 10 active alerts per device token")
		case errors.Is(err, usecase.ErrMissingToken),
			errors.Is(err, usecase.ErrMissingSymbol),
			errors.Is(err, usecase.ErrInvalidDirection),
			errors.Is(err, usecase.ErrInvalidPrice):
			writeError(w, http.StatusBadRequest, "Invalid payload")
		default:
			h.logger.Error("failed to register alert", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "id": alert.ID})
}

func (h *Handlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	alerts, err := h.alerts.List(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to list alerts", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	summaries := make([]alertSummary, 0, len(alerts))
	for _, alert := range alerts {
		summaries = append(summaries, alertSummary{
			ID:        alert.ID,
			Symbol:    alert.Symbol,
			Direction: string(alert.Direction),
			Price:     alert.Price,
			Source:    alert.Source,
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handlers) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	token := r.URL.Query().Get("token")

	if err := h.alerts.Delete(r.Context(), uint(id), token); err != nil {
		if errors.Is(err, usecase.ErrAlertNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to delete alert", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type webhookRequest struct {
	Symbol string      `json:"symbol"`
	Price  json.Number `json:"price"`
}

func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.webhookSecret)) != 1 {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	price, err := req.Price.Float64()
	if err != nil || symbol == "" {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	triggered, err := h.evaluator.Evaluate(r.Context(), symbol, price, h.webhookSource)
	if err != nil {
		h.logger.Error("webhook evaluation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "triggered": triggered})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
