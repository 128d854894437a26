package model

// MutationOp names a change to one product selection of a draft.
type MutationOp string

const (
	OpQuantity             MutationOp = "quantity"
	OpShirtVersion         MutationOp = "shirt_version"
	OpSizeCounts           MutationOp = "size_counts"
	OpDisplayOption        MutationOp = "display_option"
	OpSweatpantJogger      MutationOp = "sweatpant_jogger_option"
	OpPantOption           MutationOp = "pant_option"
	OpColorOption          MutationOp = "color_option"
	OpShirtColorSizeCounts MutationOp = "shirt_color_size_counts"
	OpInfantSizeCounts     MutationOp = "infant_size_counts"
	OpEvenSplit            MutationOp = "even_split"
	OpClear                MutationOp = "clear"
)

// FormMutation is a single change request against a draft. Which fields
// are read depends on Op.
//
// @Description Change to one product of a draft order
type FormMutation struct {
	Op       MutationOp  `json:"op" binding:"required" example:"size_counts"`
	Path     string      `json:"path" binding:"required" example:"tshirt/men/M100965414 SHOUDC Our House DTF on Forest.png"`
	Version  Version     `json:"version,omitempty" example:"tshirt"`
	Color    string      `json:"color,omitempty" example:"Black"`
	Option   string      `json:"option,omitempty" example:"displayOnly"`
	Quantity int         `json:"quantity,omitempty" example:"6"`
	Counts   SizeCounts  `json:"counts,omitempty"`
	Pants    *PantOption `json:"pants,omitempty"`
	Sizes    []string    `json:"sizes,omitempty"`
}

// StoreInfoPatch updates the store fields that are set.
//
// @Description Partial update of the store information
type StoreInfoPatch struct {
	Company      *string `json:"company,omitempty"`
	StoreNumber  *string `json:"store_number,omitempty"`
	StoreManager *string `json:"store_manager,omitempty"`
	Date         *string `json:"date,omitempty"`
	OrderNotes   *string `json:"order_notes,omitempty"`
}

// Apply returns s with the patch applied.
func (p StoreInfoPatch) Apply(s StoreInfo) StoreInfo {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.Company, p.Company)
	set(&s.StoreNumber, p.StoreNumber)
	set(&s.StoreManager, p.StoreManager)
	set(&s.Date, p.Date)
	set(&s.OrderNotes, p.OrderNotes)
	return s
}
