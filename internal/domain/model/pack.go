// Package model defines the core domain entities of the college order service.
package model

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPackSize is the multiple required when no rule matches.
const DefaultPackSize = 7

// ErrInvalidPackRules is returned when a rule set contains a pack size below one.
var ErrInvalidPackRules = errors.New("invalid pack size rules")

// NameRule assigns a pack size to products whose name contains any of the
// given fragments (case-insensitive).
//
// @Description Product-name pack size rule
type NameRule struct {
	Contains []string `json:"contains" bson:"contains" example:"tie-dye,tie dye"`
	PackSize int      `json:"pack_size" bson:"pack_size" example:"8"`
}

// AnyQuantityRule lets a category (optionally restricted to some shirt
// versions) be ordered in any quantity.
//
// @Description Category allowed to be ordered in any quantity
type AnyQuantityRule struct {
	CategoryPath string    `json:"category_path" bson:"category_path" example:"bottle"`
	Versions     []Version `json:"versions,omitempty" bson:"versions,omitempty"`
}

// PackSizeRules is the complete pack-size policy table.
//
// @Description Pack size policy table
type PackSizeRules struct {
	// Default applies when neither a name rule nor a category matches.
	Default int `json:"default" bson:"default" example:"7"`
	// Categories maps a category path to its pack size.
	Categories map[string]int `json:"categories" bson:"categories"`
	// Versions maps a category path to per-version pack sizes.
	Versions map[string]map[Version]int `json:"versions,omitempty" bson:"versions,omitempty"`
	// NameRules are checked in order before the category table.
	NameRules []NameRule `json:"name_rules,omitempty" bson:"name_rules,omitempty"`
	// AnyQuantity lists categories exempt from pack multiples.
	AnyQuantity []AnyQuantityRule `json:"any_quantity,omitempty" bson:"any_quantity,omitempty"`
}

// Validate checks that every configured pack size is at least one.
func (r PackSizeRules) Validate() error {
	if r.Default < 1 {
		return fmt.Errorf("%w: default pack size %d", ErrInvalidPackRules, r.Default)
	}
	for path, size := range r.Categories {
		if size < 1 {
			return fmt.Errorf("%w: category %q has pack size %d", ErrInvalidPackRules, path, size)
		}
	}
	for path, byVersion := range r.Versions {
		for v, size := range byVersion {
			if size < 1 {
				return fmt.Errorf("%w: %s/%s has pack size %d", ErrInvalidPackRules, path, v, size)
			}
		}
	}
	for i, rule := range r.NameRules {
		if rule.PackSize < 1 || len(rule.Contains) == 0 {
			return fmt.Errorf("%w: name rule %d", ErrInvalidPackRules, i)
		}
	}
	return nil
}

// PackSizeRuleSet is a stored, versioned pack-size policy.
//
// @Description Versioned pack size rule set
type PackSizeRuleSet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Rules     PackSizeRules      `bson:"rules" json:"rules"`
	Active    bool               `bson:"active" json:"active"`
	Version   int                `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy string             `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}
