// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"

	"github.com/guttosm/college-order-service/internal/domain/model"
)

// MaxMutationsPerRequest caps the mutations accepted in one draft update.
const MaxMutationsPerRequest = 200

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrEmptyDraftUpdate is returned when an update carries no changes.
	ErrEmptyDraftUpdate = &ValidationError{
		Field:   "mutations",
		Message: "store or at least one mutation is required",
	}
	// ErrTooManyMutations is returned when an update exceeds MaxMutationsPerRequest.
	ErrTooManyMutations = &ValidationError{
		Field:   "mutations",
		Message: fmt.Sprintf("at most %d mutations per request", MaxMutationsPerRequest),
	}
)

// UpdateDraftRequest changes the store fields and product selections of a
// draft. Mutations are applied in order, all or nothing.
//
// @Description Batch update of a draft order
// @Example {"store": {"store_number": "42"}, "mutations": [{"op": "quantity", "path": "hat/M100970001 HTSPDD Spartan Dad Hat.png", "quantity": 6}]}
type UpdateDraftRequest struct {
	Store     *model.StoreInfoPatch `json:"store,omitempty"`
	Mutations []model.FormMutation  `json:"mutations,omitempty"`
} // @name UpdateDraftRequest

// Validate checks the request shape before it reaches the draft.
func (r *UpdateDraftRequest) Validate() error {
	if r.Store == nil && len(r.Mutations) == 0 {
		return ErrEmptyDraftUpdate
	}
	if len(r.Mutations) > MaxMutationsPerRequest {
		return ErrTooManyMutations
	}
	for i, m := range r.Mutations {
		if m.Op == "" {
			return &ValidationError{Field: fmt.Sprintf("mutations[%d].op", i), Message: "is required"}
		}
		if m.Path == "" {
			return &ValidationError{Field: fmt.Sprintf("mutations[%d].path", i), Message: "is required"}
		}
	}
	return nil
}

// EvenSplitRequest asks for a case pack spread across sizes.
//
// @Description Request to spread one case pack across sizes
// @Example {"category_path": "tshirt/men", "version": "tshirt", "sizes": ["S", "M", "L"]}
type EvenSplitRequest struct {
	CategoryPath string           `json:"category_path" binding:"required" example:"tshirt/men"`
	Version      model.Version    `json:"version,omitempty" example:"tshirt"`
	ProductName  string           `json:"product_name,omitempty" example:"M100965414 SHOUDC Our House DTF on Forest"`
	Sizes        []string         `json:"sizes,omitempty" example:"S,M,L"`
	Existing     model.SizeCounts `json:"existing,omitempty"`
} // @name EvenSplitRequest

// Validate checks the request.
func (r *EvenSplitRequest) Validate() error {
	if r.CategoryPath == "" {
		return &ValidationError{Field: "category_path", Message: "is required"}
	}
	if r.Version != "" && !r.Version.Valid() {
		return &ValidationError{Field: "version", Message: "unknown shirt version"}
	}
	return r.Existing.Validate()
}

// UpdateOrderStatusRequest moves an order to a new status.
//
// @Description Request to change the status of an order
// @Example {"status": "completed", "notes": "Shipped 2024-03-04"}
type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required" example:"completed"`
	Notes  string            `json:"notes,omitempty" example:"Shipped 2024-03-04"`
} // @name UpdateOrderStatusRequest

// Validate checks the status is known.
func (r *UpdateOrderStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return &ValidationError{Field: "status", Message: "must be one of pending, completed, cancelled"}
	}
	return nil
}

// PackSizeRulesRequest stores a pack size rule set.
//
// @Description Request to store pack size rules
type PackSizeRulesRequest struct {
	Rules model.PackSizeRules `json:"rules"`
} // @name PackSizeRulesRequest
