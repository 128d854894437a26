package model

import (
	"errors"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNegativeQuantity is returned when a quantity or size count is below zero.
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	// ErrQuantityTooLarge is returned when a quantity, size count or group
	// total is above MaxQuantity.
	ErrQuantityTooLarge = errors.New("quantity exceeds the maximum")
	// ErrUnknownProduct is returned when an image path is not in the college catalog.
	ErrUnknownProduct = errors.New("product not found in catalog")
	// ErrAxisMismatch is returned when a selection does not fit the product's category axis.
	ErrAxisMismatch = errors.New("selection does not match the product configuration")
	// ErrUnknownVersion is returned for a shirt version the product does not offer.
	ErrUnknownVersion = errors.New("shirt version not offered for product")
	// ErrUnknownOption is returned for an unknown display or sweatpant/jogger option.
	ErrUnknownOption = errors.New("unknown option")
)

// StoreInfo identifies the store placing the order.
type StoreInfo struct {
	Company      string `json:"company" bson:"company"`
	StoreNumber  string `json:"store_number" bson:"store_number"`
	StoreManager string `json:"store_manager" bson:"store_manager"`
	Date         string `json:"date" bson:"date"`
	OrderNotes   string `json:"order_notes" bson:"order_notes"`
}

// Complete reports whether every required store field is filled in.
// Order notes are optional.
func (s StoreInfo) Complete() bool {
	for _, v := range []string{s.Company, s.StoreNumber, s.StoreManager, s.Date} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// FormData is an in-progress order: store metadata plus one selection per
// product image path.
type FormData struct {
	Store      StoreInfo            `json:"store"`
	Selections map[string]Selection `json:"selections"`
}

// NewFormData returns an empty order dated today.
func NewFormData(date string) FormData {
	return FormData{
		Store:      StoreInfo{Date: date},
		Selections: make(map[string]Selection),
	}
}

// Clone returns a deep copy of f.
func (f FormData) Clone() FormData {
	out := FormData{Store: f.Store, Selections: make(map[string]Selection, len(f.Selections))}
	for path, sel := range f.Selections {
		out.Selections[path] = sel.Clone()
	}
	return out
}

// Selection returns the selection recorded for imagePath.
func (f FormData) Selection(imagePath string) (Selection, bool) {
	sel, ok := f.Selections[imagePath]
	return sel, ok
}

// Paths returns the image paths with a selection, sorted.
func (f FormData) Paths() []string {
	paths := make([]string, 0, len(f.Selections))
	for p := range f.Selections {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TotalUnits sums the units of every selection.
func (f FormData) TotalUnits() int {
	total := 0
	for _, sel := range f.Selections {
		total += sel.Total()
	}
	return total
}

// SelectionEntry is one image path and its selection.
type SelectionEntry struct {
	Path      string    `json:"path" bson:"path"`
	Selection Selection `json:"selection" bson:"selection"`
}

// formDataDocument is the stored shape of FormData. Image paths contain
// dots, so selections are kept as an array instead of a sub-document.
type formDataDocument struct {
	Store      StoreInfo        `bson:"store"`
	Selections []SelectionEntry `bson:"selections"`
}

// MarshalBSON implements bson.Marshaler.
func (f FormData) MarshalBSON() ([]byte, error) {
	doc := formDataDocument{Store: f.Store, Selections: make([]SelectionEntry, 0, len(f.Selections))}
	for _, path := range f.Paths() {
		doc.Selections = append(doc.Selections, SelectionEntry{Path: path, Selection: f.Selections[path]})
	}
	return bson.Marshal(doc)
}

// UnmarshalBSON implements bson.Unmarshaler.
func (f *FormData) UnmarshalBSON(data []byte) error {
	var doc formDataDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	f.Store = doc.Store
	f.Selections = make(map[string]Selection, len(doc.Selections))
	for _, e := range doc.Selections {
		f.Selections[e.Path] = e.Selection
	}
	return nil
}
