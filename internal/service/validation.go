package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/college-order-service/internal/domain/model"
)

const (
	// MsgStoreInfoRequired is reported when a store field is empty.
	MsgStoreInfoRequired = "Please fill out all store information fields."
	// MsgEmptyOrder is reported when no product has a positive quantity.
	MsgEmptyOrder = "Cannot submit an empty order. Please select at least one product before submitting."
)

// MaxOrderUnits bounds the units of one order.
const MaxOrderUnits = 1000000

// ValidateQuantities checks every selection of form against the pack-size
// policy. Selections the catalog no longer offers are skipped. Each unit group of a product must either be allowed in any
// quantity or total a multiple of its pack size. Offending image paths are
// reported once each, in path order.
func ValidateQuantities(form model.FormData, college model.College, policy *PackPolicy) model.ValidationResult {
	if limits := checkLimits(form, college); !limits.IsValid {
		return limits
	}
	result := model.ValidationResult{InvalidProductPaths: []string{}}

	for _, imagePath := range form.Paths() {
		sel := form.Selections[imagePath]
		cat, image, ok := college.ResolveCategory(imagePath)
		if !ok {
			continue
		}
		order := model.GroupOrder{Versions: cat.VersionsFor(image), Colors: cat.ColorsFor(image)}
		name := model.DisplayProductName(image)

		invalid := false
		for _, g := range sel.Groups(order) {
			if policy.AllowsAnyQuantity(cat.Path, g.Version, image) {
				continue
			}
			packSize := policy.PackSize(cat.Path, g.Version, image)
			if g.Total%packSize == 0 {
				continue
			}
			label := name
			if g.Label != "" {
				label = fmt.Sprintf("%s (%s)", name, g.Label)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s must be a multiple of %d", label, packSize))
			invalid = true
		}
		if invalid {
			result.InvalidProductPaths = append(result.InvalidProductPaths, imagePath)
		}
	}

	result.IsValid = len(result.Errors) == 0
	if !result.IsValid {
		result.ErrorMessage = strings.Join(result.Errors, "; ")
	}
	return result
}

// ValidateFormData checks the whole order before it moves to review: the
// store fields, then that something was ordered, then the quantities.
func ValidateFormData(form model.FormData, college model.College, policy *PackPolicy) model.ValidationResult {
	if !form.Store.Complete() {
		return model.ValidationResult{
			ErrorMessage:        MsgStoreInfoRequired,
			Errors:              []string{MsgStoreInfoRequired},
			InvalidProductPaths: []string{},
		}
	}
	if limits := checkLimits(form, college); !limits.IsValid {
		return limits
	}
	if !HasOrderProducts(form, college) {
		return model.ValidationResult{
			ErrorMessage:        MsgEmptyOrder,
			Errors:              []string{MsgEmptyOrder},
			InvalidProductPaths: []string{},
		}
	}
	return ValidateQuantities(form, college, policy)
}

// HasOrderProducts reports whether any product the catalog offers has a
// positive quantity.
func HasOrderProducts(form model.FormData, college model.College) bool {
	for p, sel := range form.Selections {
		if _, _, ok := college.ResolveCategory(p); ok && sel.Total() > 0 {
			return true
		}
	}
	return false
}

// OrderedUnits sums the units of the selections the catalog offers.
func OrderedUnits(form model.FormData, college model.College) int {
	total := 0
	for p, sel := range form.Selections {
		if _, _, ok := college.ResolveCategory(p); ok {
			total += sel.Total()
		}
	}
	return total
}

// checkLimits rejects selections with negative or oversized quantities
// and orders above MaxOrderUnits. Drafts loaded from storage never went
// through the form mutators, so their bounds are checked here too.
func checkLimits(form model.FormData, college model.College) model.ValidationResult {
	result := model.ValidationResult{InvalidProductPaths: []string{}}
	for _, imagePath := range form.Paths() {
		_, image, ok := college.ResolveCategory(imagePath)
		if !ok {
			continue
		}
		err := form.Selections[imagePath].Validate()
		if err == nil {
			continue
		}
		name := model.DisplayProductName(image)
		msg := fmt.Sprintf("%s has a negative quantity", name)
		if errors.Is(err, model.ErrQuantityTooLarge) {
			msg = fmt.Sprintf("%s exceeds the maximum of %d units", name, model.MaxQuantity)
		}
		result.Errors = append(result.Errors, msg)
		result.InvalidProductPaths = append(result.InvalidProductPaths, imagePath)
	}
	if len(result.Errors) == 0 {
		if units := OrderedUnits(form, college); units > MaxOrderUnits {
			result.Errors = append(result.Errors, fmt.Sprintf("An order may hold at most %d units", MaxOrderUnits))
		}
	}

	result.IsValid = len(result.Errors) == 0
	if !result.IsValid {
		result.ErrorMessage = strings.Join(result.Errors, "; ")
	}
	return result
}

// ValidProductPaths lists the offered paths holding a positive quantity
// that the validation result did not flag, in path order.
func ValidProductPaths(form model.FormData, college model.College, result model.ValidationResult) []string {
	invalid := make(map[string]bool, len(result.InvalidProductPaths))
	for _, p := range result.InvalidProductPaths {
		invalid[p] = true
	}
	valid := []string{}
	for _, p := range form.Paths() {
		if invalid[p] || form.Selections[p].Total() <= 0 {
			continue
		}
		if _, _, ok := college.ResolveCategory(p); ok {
			valid = append(valid, p)
		}
	}
	return valid
}
