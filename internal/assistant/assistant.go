package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

var (
	// ErrNotConfigured means no AI credential is present; callers treat
	// the send as a guarded no-op rather than a user-facing error.
	ErrNotConfigured = errors.New("assistant is not configured")

	// ErrRequestInFlight rejects a second send while one is pending.
	ErrRequestInFlight = errors.New("an assistant request is already in flight")
)

// BundleItem is one suggested cart addition inside a project bundle.
// The payload comes from the external AI collaborator and is untrusted
// until it passes the resolver.
type BundleItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ProjectBundle is an externally generated set of suggested cart
// additions with a rationale per item.
type ProjectBundle struct {
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Items              []BundleItem `json:"items" validate:"dive"`
	TotalPriceEstimate int64        `json:"totalPriceEstimate"`
}

// Reply is the structured payload expected back from the collaborator.
type Reply struct {
	Response              string         `json:"response" validate:"required"`
	RecommendedProductIDs []string       `json:"recommendedProductIds,omitempty"`
	Bundle                *ProjectBundle `json:"bundle,omitempty"`
}

// Client sends a project description plus catalog context to the AI
// collaborator and returns its structured reply.
type Client interface {
	Estimate(ctx context.Context, userText string, catalogContext []catalog.ProductExcerpt) (*Reply, error)
}

// Message is one entry in the assistant conversation.
type Message struct {
	ID                    string         `json:"id"`
	Role                  string         `json:"role"` // "user" or "model"
	Text                  string         `json:"text"`
	RecommendedProductIDs []string       `json:"recommended_product_ids,omitempty"`
	Bundle                *ProjectBundle `json:"bundle,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)
