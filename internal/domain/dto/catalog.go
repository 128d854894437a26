package dto

import (
	"github.com/guttosm/college-order-service/internal/domain/model"
)

// CollegeSummary lists a storefront without its catalog.
//
// @Description College storefront summary
type CollegeSummary struct {
	ID      string      `json:"id" example:"michiganstate"`
	Name    string      `json:"name" example:"Michigan State"`
	LogoURL string      `json:"logo_url,omitempty"`
	Theme   model.Theme `json:"theme"`
} // @name CollegeSummary

// NewCollegeSummary builds the summary of a college.
func NewCollegeSummary(c model.College) CollegeSummary {
	return CollegeSummary{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL, Theme: c.Theme}
}

// ProductResponse is a product with the pack rules that apply to it.
//
// @Description Product detail with pack size rules
type ProductResponse struct {
	model.Product
	PackSize          int                   `json:"pack_size" example:"7"`
	AllowsAnyQuantity bool                  `json:"allows_any_quantity"`
	PackMessage       string                `json:"pack_message" example:"Please ensure all selected garment sizes total to multiples of 7."`
	QuantityMultiples []int                 `json:"quantity_multiples" example:"7,14,21,28,35,42"`
	VersionPackSizes  map[model.Version]int `json:"version_pack_sizes,omitempty"`
} // @name ProductResponse

// PackSizeResolution answers which multiple a product must be ordered in.
//
// @Description Resolved pack size of a product
type PackSizeResolution struct {
	CategoryPath      string        `json:"category_path" example:"tshirt/men"`
	Version           model.Version `json:"version,omitempty" example:"hoodie"`
	PackSize          int           `json:"pack_size" example:"8"`
	AllowsAnyQuantity bool          `json:"allows_any_quantity"`
	Message           string        `json:"message" example:"Please ensure all selected garment sizes total to multiples of 8."`
} // @name PackSizeResolution

// EvenSplitResponse is a size breakdown with one more case pack added.
//
// @Description Size breakdown after an even split
type EvenSplitResponse struct {
	PackSize  int              `json:"pack_size" example:"7"`
	Counts    model.SizeCounts `json:"counts"`
	Total     int              `json:"total" example:"7"`
	Packs     int              `json:"packs" example:"1"`
	Remainder int              `json:"remainder" example:"0"`
	IsValid   bool             `json:"is_valid"`
} // @name EvenSplitResponse
