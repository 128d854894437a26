package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/guttosm/college-order-service/internal/domain/model"
)

// DefaultPackSizeRules returns the built-in pack-size table used until an
// administrator stores a rule set.
func DefaultPackSizeRules() model.PackSizeRules {
	return model.PackSizeRules{
		Default: model.DefaultPackSize,
		Categories: map[string]int{
			"tshirt/men":    7,
			"tshirt/women":  8,
			"jacket":        6,
			"flannels":      8,
			"pants":         6,
			"shorts":        8,
			"hat":           6,
			"beanie":        6,
			"socks":         6,
			"bottle":        1,
			"sticker":       20,
			"plush":         6,
			"card":          1,
			"shelf magnets": 1,
			"rack":          1,
			"signage":       1,
			"infant":        6,
		},
		Versions: map[string]map[model.Version]int{
			"tshirt/men": {
				model.VersionTShirt:     7,
				model.VersionLongSleeve: 7,
				model.VersionCrewneck:   6,
				model.VersionHoodie:     8,
			},
		},
		NameRules: []model.NameRule{
			{Contains: []string{"applique"}, PackSize: 6},
			{Contains: []string{"tie-dye", "tie dye"}, PackSize: 8},
			{Contains: []string{"fleece short"}, PackSize: 4},
			{Contains: []string{"fleece zip", "fleece_zip"}, PackSize: 6},
		},
		AnyQuantity: []model.AnyQuantityRule{
			{CategoryPath: "tshirt/men", Versions: []model.Version{model.VersionTShirt, model.VersionLongSleeve}},
			{CategoryPath: "bottle"},
			{CategoryPath: "card"},
			{CategoryPath: "shelf magnets"},
			{CategoryPath: "rack"},
			{CategoryPath: "signage"},
		},
	}
}

// PackPolicy answers which multiple a product must be ordered in.
// It is immutable and safe for concurrent use.
type PackPolicy struct {
	rules model.PackSizeRules
}

// NewPackPolicy builds a policy from rules. A default below one is
// replaced by model.DefaultPackSize so lookups always yield a usable size.
func NewPackPolicy(rules model.PackSizeRules) *PackPolicy {
	if rules.Default < 1 {
		rules.Default = model.DefaultPackSize
	}
	return &PackPolicy{rules: rules}
}

// Rules returns the table the policy was built from.
func (p *PackPolicy) Rules() model.PackSizeRules {
	return p.rules
}

// PackSize returns the multiple required for a product. Name rules win
// over the category table; per-version sizes win over the category size.
func (p *PackPolicy) PackSize(categoryPath string, version model.Version, productName string) int {
	if size, ok := p.nameRuleSize(productName); ok {
		return size
	}
	if byVersion, ok := p.rules.Versions[categoryPath]; ok && version != "" {
		if size, ok := byVersion[version]; ok && size >= 1 {
			return size
		}
	}
	if size, ok := p.rules.Categories[categoryPath]; ok && size >= 1 {
		return size
	}
	return p.rules.Default
}

func (p *PackPolicy) nameRuleSize(productName string) (int, bool) {
	if productName == "" {
		return 0, false
	}
	lower := strings.ToLower(productName)
	for _, rule := range p.rules.NameRules {
		for _, fragment := range rule.Contains {
			if fragment != "" && strings.Contains(lower, strings.ToLower(fragment)) && rule.PackSize >= 1 {
				return rule.PackSize, true
			}
		}
	}
	return 0, false
}

// AllowsAnyQuantity reports whether a product may be ordered in any
// positive quantity. Applique products never qualify.
func (p *PackPolicy) AllowsAnyQuantity(categoryPath string, version model.Version, productName string) bool {
	if model.IsApplique(productName) {
		return false
	}
	for _, rule := range p.rules.AnyQuantity {
		if rule.CategoryPath != categoryPath {
			continue
		}
		if len(rule.Versions) == 0 {
			return true
		}
		for _, v := range rule.Versions {
			if v == version {
				return true
			}
		}
	}
	return false
}

// PackSizeMessage explains a pack-size requirement to the customer.
func PackSizeMessage(packSize int) string {
	return fmt.Sprintf("Please ensure all selected garment sizes total to multiples of %d.", packSize)
}

// Totals describes how a size breakdown fills case packs.
type Totals struct {
	Total     int  `json:"total"`
	Packs     int  `json:"packs"`
	Remainder int  `json:"remainder"`
	Needed    int  `json:"needed"`
	IsValid   bool `json:"is_valid"`
}

// CalcTotals computes pack totals of counts. A pack size below one is
// treated as one.
func CalcTotals(counts model.SizeCounts, packSize int) Totals {
	if packSize < 1 {
		packSize = 1
	}
	total := counts.Total()
	return Totals{
		Total:     total,
		Packs:     total / packSize,
		Remainder: total % packSize,
		Needed:    (packSize - total%packSize) % packSize,
		IsValid:   total > 0 && total%packSize == 0,
	}
}

// EvenSplit spreads one case pack across sizes and adds it to existing.
// Each size gets packSize/len(sizes); the remainder goes one unit at a time
// to the earliest sizes. With no sizes, model.DefaultSplitSizes is used.
func EvenSplit(packSize int, sizes []string, existing model.SizeCounts) model.SizeCounts {
	if len(sizes) == 0 {
		sizes = model.DefaultSplitSizes
	}
	out := existing.Clone()
	if out == nil {
		out = make(model.SizeCounts, len(sizes))
	}
	if packSize < 1 {
		return out
	}

	base := packSize / len(sizes)
	remainder := packSize % len(sizes)
	for i, size := range sizes {
		add := base
		if i < remainder {
			add++
		}
		out[size] += add
	}
	return out
}

// RoundToMultiple snaps a typed quantity to the nearest pack multiple,
// leaving it unchanged when any quantity is allowed.
func RoundToMultiple(value, packSize int, allowAny bool) int {
	if value <= 0 {
		return 0
	}
	if allowAny || packSize <= 1 {
		return value
	}
	return int(math.Round(float64(value)/float64(packSize))) * packSize
}

// QuantityMultiples suggests the first six order quantities for a product
// from its image and category names.
func QuantityMultiples(imageName, categoryName string) []int {
	name := strings.ToLower(imageName)
	cat := strings.ToLower(categoryName)
	has := func(s string, fragments ...string) bool {
		for _, f := range fragments {
			if strings.Contains(s, f) {
				return true
			}
		}
		return false
	}

	step := 6
	switch {
	case has(cat, "women"):
		step = 8
	case has(name, "crew") || has(cat, "crew"):
		step = 6
	case has(name, "hoodie") || has(cat, "hoodie"):
		step = 8
	case has(cat, "tshirt", "longsleeve", "long sleeve"):
		step = 7
	case has(cat, "sweatpant", "jogger"):
		step = 6
	case has(cat, "short", "flannel"):
		step = 8
	case has(cat, "jacket", "raincoat", "cap", "beanie", "hat", "sock"):
		step = 6
	case has(cat, "bottle"):
		step = 1
	}

	multiples := make([]int, 6)
	for i := range multiples {
		multiples[i] = step * (i + 1)
	}
	return multiples
}
