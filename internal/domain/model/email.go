package model

import "strconv"

// AutoAddedCardsCategory is the email category collecting header cards
// shipped with display racks.
const AutoAddedCardsCategory = "Auto-Added Cards"

// EmailItem is one line of the order email.
type EmailItem struct {
	SKU     string  `json:"sku" bson:"sku"`
	Name    string  `json:"name" bson:"name"`
	Qty     string  `json:"qty" bson:"qty"`
	Version Version `json:"version,omitempty" bson:"version,omitempty"`
}

// EmailCategory is a catalog category and its email lines.
type EmailCategory struct {
	Category string      `json:"category" bson:"category"`
	Items    []EmailItem `json:"items" bson:"items"`
}

// TemplateParams is the payload handed to the transactional email
// template.
type TemplateParams struct {
	Company       string          `json:"company" bson:"company"`
	SchoolName    string          `json:"school_name" bson:"school_name"`
	StoreNumber   string          `json:"store_number" bson:"store_number"`
	ManagerName   string          `json:"manager_name" bson:"manager_name"`
	Date          string          `json:"date" bson:"date"`
	OrderNotes    string          `json:"order_notes" bson:"order_notes"`
	Categories    []EmailCategory `json:"categories" bson:"categories"`
	TotalUnits    string          `json:"total_units" bson:"total_units"`
	ProviderEmail string          `json:"provider_email" bson:"provider_email"`
}

// CalculateTotalUnits sums the quantity of every item in categories.
// Quantities that are not integers count as zero.
func CalculateTotalUnits(categories []EmailCategory) int {
	total := 0
	for _, cat := range categories {
		for _, item := range cat.Items {
			if n, err := strconv.Atoi(item.Qty); err == nil {
				total += n
			}
		}
	}
	return total
}
