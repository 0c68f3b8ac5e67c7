package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

func productRouter(t *testing.T) (*chi.Mux, catalog.Store) {
	t.Helper()
	store := catalog.NewMemoryStore(catalog.SeedProducts())
	handler := NewProductHandler(store, 5*time.Second)

	r := chi.NewRouter()
	r.Get("/products", handler.List)
	r.Get("/products/{product_id}", handler.Get)
	r.Post("/products/{product_id}/reviews", handler.AddReview)
	return r, store
}

func TestProductHandler_List(t *testing.T) {
	r, _ := productRouter(t)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var products []catalog.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
	assert.Len(t, products, 14)
}

func TestProductHandler_List_Filtered(t *testing.T) {
	r, _ := productRouter(t)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/products?category=Tools+%26+Hardware&q=measuring", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var products []catalog.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Measuring Tape 5m", products[0].Name)
}

func TestProductHandler_Get(t *testing.T) {
	r, _ := productRouter(t)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/products/3", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var product catalog.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &product))
	assert.Equal(t, "Bosch Power Drill", product.Name)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	r, _ := productRouter(t)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("GET", "/products/ghost", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestProductHandler_AddReview(t *testing.T) {
	r, _ := productRouter(t)

	body, _ := json.Marshal(AddReviewRequestDTO{UserName: "Meera", Rating: 5, Comment: "solid"})
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest("POST", "/products/8/reviews", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, recorder.Code)

	var product catalog.Product
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &product))
	require.Len(t, product.Reviews, 2)
	assert.Equal(t, 4.0, product.Rating)
}

func TestProductHandler_AddReview_Validation(t *testing.T) {
	r, _ := productRouter(t)

	tests := []struct {
		name   string
		target string
		body   AddReviewRequestDTO
		status int
	}{
		{"missing user name", "/products/1/reviews", AddReviewRequestDTO{Rating: 4}, http.StatusBadRequest},
		{"rating too low", "/products/1/reviews", AddReviewRequestDTO{UserName: "x", Rating: 0}, http.StatusBadRequest},
		{"rating too high", "/products/1/reviews", AddReviewRequestDTO{UserName: "x", Rating: 6}, http.StatusBadRequest},
		{"unknown product", "/products/ghost/reviews", AddReviewRequestDTO{UserName: "x", Rating: 4}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			recorder := httptest.NewRecorder()
			r.ServeHTTP(recorder, httptest.NewRequest("POST", tt.target, bytes.NewReader(body)))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
