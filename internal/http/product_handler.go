package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

type ProductHandler struct {
	store   catalog.Store
	timeout time.Duration
}

func NewProductHandler(store catalog.Store, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		store:   store,
		timeout: timeout,
	}
}

type AddReviewRequestDTO struct {
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := catalog.Filter{
		Category: catalog.Category(r.URL.Query().Get("category")),
		Query:    r.URL.Query().Get("q"),
	}

	products, err := h.store.List(ctx, filter)
	if err != nil {
		log.Printf("request %s: list products error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "product_id")

	product, err := h.store.Get(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("request %s: get product error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "product_id")

	var req AddReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.UserName == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_name", "user_name is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
		return
	}

	product, err := h.store.AddReview(ctx, id, catalog.Review{
		UserName: req.UserName,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("request %s: add review error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add review")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}
