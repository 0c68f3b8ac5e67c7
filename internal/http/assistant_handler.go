package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/assistant"
)

type AssistantHandler struct {
	svc      *assistant.Service
	resolver *assistant.Resolver
	timeout  time.Duration
}

func NewAssistantHandler(svc *assistant.Service, resolver *assistant.Resolver, timeout time.Duration) *AssistantHandler {
	return &AssistantHandler{
		svc:      svc,
		resolver: resolver,
		timeout:  timeout,
	}
}

type SendMessageRequestDTO struct {
	Text string `json:"text"`
}

type ApplyBundleRequestDTO struct {
	Bundle assistant.ProjectBundle `json:"bundle"`
}

func (h *AssistantHandler) Messages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Messages())
}

func (h *AssistantHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SendMessageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "invalid_text", "text is required")
		return
	}

	msg, err := h.svc.Send(ctx, req.Text)
	if errors.Is(err, assistant.ErrNotConfigured) {
		// no credential: guarded no-op, nothing user-visible
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if errors.Is(err, assistant.ErrRequestInFlight) {
		respondError(w, http.StatusConflict, "request_in_flight", "a request is already being processed")
		return
	}
	if err != nil {
		log.Printf("request %s: assistant send error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to send message")
		return
	}

	respondJSON(w, http.StatusOK, msg)
}

func (h *AssistantHandler) ApplyBundle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ApplyBundleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(req.Bundle.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_bundle", "bundle has no items")
		return
	}

	report, err := h.resolver.Apply(ctx, req.Bundle)
	if err != nil {
		log.Printf("request %s: apply bundle error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to apply bundle")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
