// Package relay implements the thin SMS pass-through proxy. It holds no
// business logic: it validates the request shape, appends the optional QR
// link to the message text, and forwards the result to the configured SMS
// gateway.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/orbiapp/splitease/internal/metrics"
)

// Request is the relay's inbound shape.
type Request struct {
	Phone  string `json:"phone"`
	Text   string `json:"text"`
	QRLink string `json:"qrLink,omitempty"`
}

// gatewayPayload is the shape the SMS gateway expects.
type gatewayPayload struct {
	Route    string `json:"route"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Flash    int    `json:"flash"`
	Numbers  string `json:"numbers"`
}

// gatewayResponse is the subset of the gateway reply the relay inspects.
type gatewayResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message,omitempty"`
	Request string `json:"request_id,omitempty"`
}

// Handler forwards SMS requests to the gateway.
type Handler struct {
	gatewayURL string
	apiKey     string
	client     *http.Client
}

// NewHandler creates a relay handler for the given gateway endpoint.
func NewHandler(gatewayURL, apiKey string) *Handler {
	return &Handler{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// ServeHTTP handles POST {phone, text, qrLink?} and relays it to the gateway.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "POST required"})
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}
	if req.Phone == "" || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing phone or text parameter"})
		return
	}

	message := req.Text
	if req.QRLink != "" {
		message = fmt.Sprintf("%s\nQR: %s", req.Text, req.QRLink)
	}

	resp, err := h.forward(r.Context(), gatewayPayload{
		Route:    "v3",
		SenderID: "TXTIND",
		Message:  message,
		Language: "english",
		Flash:    0,
		Numbers:  req.Phone,
	})
	if err != nil {
		slog.Error("SMS relay failed", "error", err)
		metrics.RelayMessages.WithLabelValues("failed").Inc()
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "SMS gateway unreachable"})
		return
	}
	if !resp.Return {
		slog.Warn("SMS gateway rejected message", "details", resp.Message)
		metrics.RelayMessages.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "SMS gateway error", "details": resp.Message})
		return
	}

	metrics.RelayMessages.WithLabelValues("sent").Inc()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "SMS sent!"})
}

func (h *Handler) forward(ctx context.Context, payload gatewayPayload) (*gatewayResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("authorization", h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	var gw gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return &gw, nil
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write relay response", "error", err)
	}
}
