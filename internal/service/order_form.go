package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/model"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed on the current page.
	ErrInvalidTransition = errors.New("invalid page transition")
	// ErrNotEditable is returned when a draft is changed outside the form page.
	ErrNotEditable = errors.New("draft can only be changed on the form page")
	// ErrFormInvalid is returned when the form fails validation on submit.
	ErrFormInvalid = errors.New("order form is invalid")
	// ErrEmptyOrder is returned when confirming an order without products.
	ErrEmptyOrder = errors.New("order has no products")
	// ErrAlreadySubmitted is returned when confirming a draft a second time.
	ErrAlreadySubmitted = errors.New("order already submitted")
	// ErrUnknownMutation is returned for an unsupported mutation op.
	ErrUnknownMutation = errors.New("unknown mutation")
)

// OrderForm owns one draft order: its form data, the page it is on and the
// validation derived from it. Every mutator replaces only the entry it
// addresses and re-runs validation before returning. OrderForm is not safe
// for concurrent use; DraftService serializes access per draft.
type OrderForm struct {
	college    model.College
	policy     *PackPolicy
	draft      model.Draft
	validation model.ValidationResult
	validPaths []string
}

// NewOrderForm wraps draft for editing against college's catalog.
func NewOrderForm(college model.College, policy *PackPolicy, draft model.Draft) *OrderForm {
	if draft.Form.Selections == nil {
		draft.Form.Selections = make(map[string]model.Selection)
	}
	if draft.Page == "" {
		draft.Page = model.PageForm
	}
	f := &OrderForm{college: college, policy: policy, draft: draft}
	f.revalidate()
	return f
}

// Draft returns a deep copy of the draft.
func (f *OrderForm) Draft() model.Draft {
	d := f.draft
	d.Form = f.draft.Form.Clone()
	return d
}

// Page returns the current page.
func (f *OrderForm) Page() model.Page { return f.draft.Page }

// Route returns the storefront path of the current page.
func (f *OrderForm) Route() string { return f.draft.Page.Route(f.college.ID) }

// Validation returns the latest validation result.
func (f *OrderForm) Validation() model.ValidationResult { return f.validation }

// ValidProductPaths returns the products holding a valid, positive quantity.
func (f *OrderForm) ValidProductPaths() []string { return f.validPaths }

// ConfirmationError returns the message of the last failed confirmation.
func (f *OrderForm) ConfirmationError() string { return f.draft.ConfirmationError }

func (f *OrderForm) revalidate() {
	f.validation = ValidateQuantities(f.draft.Form, f.college, f.policy)
	f.validPaths = ValidProductPaths(f.draft.Form, f.college, f.validation)
}

func (f *OrderForm) touch() {
	f.draft.UpdatedAt = time.Now().UTC()
	f.revalidate()
}

func (f *OrderForm) editable() error {
	if f.draft.Page != model.PageForm {
		return ErrNotEditable
	}
	return nil
}

// UpdateStoreInfo applies a partial update of the store fields.
func (f *OrderForm) UpdateStoreInfo(patch model.StoreInfoPatch) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.draft.Form.Store = patch.Apply(f.draft.Form.Store)
	f.touch()
	return nil
}

// target resolves imagePath for a selection of kind and returns the
// canonical path, its category and image name.
func (f *OrderForm) target(imagePath string, kind model.SelectionKind) (string, model.Category, string, error) {
	if err := f.editable(); err != nil {
		return "", model.Category{}, "", err
	}
	cat, image, ok := f.college.ResolveCategory(imagePath)
	if !ok {
		return "", model.Category{}, "", fmt.Errorf("%w: %s", model.ErrUnknownProduct, imagePath)
	}
	if !cat.Accepts(kind, image) {
		return "", model.Category{}, "", fmt.Errorf("%w: %s does not take %s", model.ErrAxisMismatch, imagePath, kind)
	}
	return model.ImagePath(cat.Path, image), cat, image, nil
}

// current returns a private copy of the selection at path. A selection of
// another kind is replaced by an empty one of kind.
func (f *OrderForm) current(path string, kind model.SelectionKind) model.Selection {
	sel, ok := f.draft.Form.Selections[path]
	if !ok || sel.Kind != kind {
		return model.Selection{Kind: kind}
	}
	return sel.Clone()
}

func (f *OrderForm) put(path string, sel model.Selection) error {
	if err := sel.Validate(); err != nil {
		return err
	}
	f.draft.Form.Selections[path] = sel
	f.touch()
	return nil
}

func checkVersion(cat model.Category, image string, v model.Version) error {
	for _, offered := range cat.VersionsFor(image) {
		if offered == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", model.ErrUnknownVersion, v)
}

func checkColor(cat model.Category, image, color string) (string, error) {
	for _, offered := range cat.ColorsFor(image) {
		if strings.EqualFold(offered, color) {
			return offered, nil
		}
	}
	return "", fmt.Errorf("%w: colour %q", model.ErrUnknownOption, color)
}

// SetQuantity records a plain quantity.
func (f *OrderForm) SetQuantity(imagePath string, qty int) error {
	path, _, _, err := f.target(imagePath, model.KindSimple)
	if err != nil {
		return err
	}
	sel := f.current(path, model.KindSimple)
	sel.Quantity = qty
	return f.put(path, sel)
}

// SetShirtVersion records a quantity for one shirt version.
func (f *OrderForm) SetShirtVersion(imagePath string, version model.Version, qty int) error {
	path, cat, image, err := f.target(imagePath, model.KindShirtVersions)
	if err != nil {
		return err
	}
	if err := checkVersion(cat, image, version); err != nil {
		return err
	}
	sel := f.current(path, model.KindShirtVersions)
	if sel.Versions == nil {
		sel.Versions = make(map[model.Version]int)
	}
	sel.Versions[version] = qty
	return f.put(path, sel)
}

// SetSizeCounts replaces the size breakdown of one shirt version.
func (f *OrderForm) SetSizeCounts(imagePath string, version model.Version, counts model.SizeCounts) error {
	path, cat, image, err := f.target(imagePath, model.KindSizeBreakdown)
	if err != nil {
		return err
	}
	if err := checkVersion(cat, image, version); err != nil {
		return err
	}
	sel := f.current(path, model.KindSizeBreakdown)
	if sel.Sizes == nil {
		sel.Sizes = make(map[model.Version]model.SizeCounts)
	}
	sel.Sizes[version] = counts.Clone()
	return f.put(path, sel)
}

// SetDisplayOption records one of the two display quantities.
func (f *OrderForm) SetDisplayOption(imagePath string, field model.DisplayField, qty int) error {
	path, _, _, err := f.target(imagePath, model.KindDisplay)
	if err != nil {
		return err
	}
	sel := f.current(path, model.KindDisplay)
	if sel.Display == nil {
		sel.Display = &model.DisplayOption{}
	}
	switch field {
	case model.DisplayOnly:
		sel.Display.DisplayOnly = qty
	case model.DisplayStandardCasePack:
		sel.Display.DisplayStandardCasePack = qty
	default:
		return fmt.Errorf("%w: display option %q", model.ErrUnknownOption, field)
	}
	return f.put(path, sel)
}

// SetSweatpantJoggerOption records one legacy sweatpant/jogger quantity.
func (f *OrderForm) SetSweatpantJoggerOption(imagePath string, field model.SweatpantJoggerField, qty int) error {
	path, _, _, err := f.target(imagePath, model.KindSweatpantJogger)
	if err != nil {
		return err
	}
	sel := f.current(path, model.KindSweatpantJogger)
	if sel.SweatpantJogger == nil {
		sel.SweatpantJogger = &model.SweatpantJoggerOption{}
	}
	switch field {
	case model.SweatpantSteel:
		sel.SweatpantJogger.SweatpantSteel = qty
	case model.SweatpantOxford:
		sel.SweatpantJogger.SweatpantOxford = qty
	case model.JoggerSteel:
		sel.SweatpantJogger.JoggerSteel = qty
	case model.JoggerOxford:
		sel.SweatpantJogger.JoggerOxford = qty
	default:
		return fmt.Errorf("%w: sweatpant/jogger option %q", model.ErrUnknownOption, field)
	}
	return f.put(path, sel)
}

// SetPantOption replaces the whole style/colour/size tree of a pant product.
func (f *OrderForm) SetPantOption(imagePath string, option model.PantOption) error {
	path, _, _, err := f.target(imagePath, model.KindPantStyle)
	if err != nil {
		return err
	}
	sel := model.Selection{Kind: model.KindPantStyle}
	sel.Pants = &option
	return f.put(path, sel.Clone())
}

// SetColorOption records a quantity for one colour.
func (f *OrderForm) SetColorOption(imagePath, color string, qty int) error {
	path, cat, image, err := f.target(imagePath, model.KindColorQuantities)
	if err != nil {
		return err
	}
	color, err = checkColor(cat, image, color)
	if err != nil {
		return err
	}
	sel := f.current(path, model.KindColorQuantities)
	if sel.Colors == nil {
		sel.Colors = make(map[string]int)
	}
	sel.Colors[color] = qty
	return f.put(path, sel)
}

// SetShirtColorSizeCounts replaces the size breakdown of one shirt version
// in one colour.
func (f *OrderForm) SetShirtColorSizeCounts(imagePath string, version model.Version, color string, counts model.SizeCounts) error {
	path, cat, image, err := f.target(imagePath, model.KindColorSizeBreakdown)
	if err != nil {
		return err
	}
	if err := checkVersion(cat, image, version); err != nil {
		return err
	}
	if color, err = checkColor(cat, image, color); err != nil {
		return err
	}
	sel := f.current(path, model.KindColorSizeBreakdown)
	if sel.ColorSizes == nil {
		sel.ColorSizes = make(map[model.Version]map[string]model.SizeCounts)
	}
	if sel.ColorSizes[version] == nil {
		sel.ColorSizes[version] = make(map[string]model.SizeCounts)
	}
	sel.ColorSizes[version][color] = counts.Clone()
	return f.put(path, sel)
}

// SetInfantSizeCounts replaces the infant size breakdown.
func (f *OrderForm) SetInfantSizeCounts(imagePath string, counts model.SizeCounts) error {
	path, _, _, err := f.target(imagePath, model.KindInfantSizes)
	if err != nil {
		return err
	}
	sel := model.Selection{Kind: model.KindInfantSizes, Infant: counts.Clone()}
	return f.put(path, sel)
}

// AddEvenSplit adds one case pack spread evenly across sizes to a shirt
// version (and colour, when given) or to an infant product.
func (f *OrderForm) AddEvenSplit(imagePath string, version model.Version, color string, sizes []string) error {
	cat, image, ok := f.college.ResolveCategory(imagePath)
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownProduct, imagePath)
	}
	path := model.ImagePath(cat.Path, image)
	packSize := f.policy.PackSize(cat.Path, version, image)

	switch {
	case cat.Axis == model.AxisInfantSizes:
		var existing model.SizeCounts
		if sel, ok := f.draft.Form.Selections[path]; ok && sel.Kind == model.KindInfantSizes {
			existing = sel.Infant
		}
		if len(sizes) == 0 {
			sizes = model.InfantSizes
		}
		return f.SetInfantSizeCounts(path, EvenSplit(packSize, sizes, existing))
	case cat.Axis == model.AxisShirtVersions && color != "":
		var existing model.SizeCounts
		if sel, ok := f.draft.Form.Selections[path]; ok && sel.Kind == model.KindColorSizeBreakdown {
			for c, counts := range sel.ColorSizes[version] {
				if strings.EqualFold(c, color) {
					existing = counts
				}
			}
		}
		return f.SetShirtColorSizeCounts(path, version, color, EvenSplit(packSize, sizes, existing))
	case cat.Axis == model.AxisShirtVersions:
		var existing model.SizeCounts
		if sel, ok := f.draft.Form.Selections[path]; ok && sel.Kind == model.KindSizeBreakdown {
			existing = sel.Sizes[version]
		}
		return f.SetSizeCounts(path, version, EvenSplit(packSize, sizes, existing))
	}
	return fmt.Errorf("%w: %s has no size breakdown", model.ErrAxisMismatch, imagePath)
}

// Clear removes the selection of a product.
func (f *OrderForm) Clear(imagePath string) error {
	if err := f.editable(); err != nil {
		return err
	}
	path := imagePath
	if cat, image, ok := f.college.ResolveCategory(imagePath); ok {
		path = model.ImagePath(cat.Path, image)
	}
	delete(f.draft.Form.Selections, path)
	f.touch()
	return nil
}

// Apply dispatches a mutation to the matching setter.
func (f *OrderForm) Apply(m model.FormMutation) error {
	switch m.Op {
	case model.OpQuantity:
		return f.SetQuantity(m.Path, m.Quantity)
	case model.OpShirtVersion:
		return f.SetShirtVersion(m.Path, m.Version, m.Quantity)
	case model.OpSizeCounts:
		return f.SetSizeCounts(m.Path, m.Version, m.Counts)
	case model.OpDisplayOption:
		return f.SetDisplayOption(m.Path, model.DisplayField(m.Option), m.Quantity)
	case model.OpSweatpantJogger:
		return f.SetSweatpantJoggerOption(m.Path, model.SweatpantJoggerField(m.Option), m.Quantity)
	case model.OpPantOption:
		if m.Pants == nil {
			return fmt.Errorf("%w: pants option missing", model.ErrUnknownOption)
		}
		return f.SetPantOption(m.Path, *m.Pants)
	case model.OpColorOption:
		return f.SetColorOption(m.Path, m.Color, m.Quantity)
	case model.OpShirtColorSizeCounts:
		return f.SetShirtColorSizeCounts(m.Path, m.Version, m.Color, m.Counts)
	case model.OpInfantSizeCounts:
		return f.SetInfantSizeCounts(m.Path, m.Counts)
	case model.OpEvenSplit:
		if err := f.editable(); err != nil {
			return err
		}
		return f.AddEvenSplit(m.Path, m.Version, m.Color, m.Sizes)
	case model.OpClear:
		return f.Clear(m.Path)
	}
	return fmt.Errorf("%w: %q", ErrUnknownMutation, m.Op)
}

// Submit moves the form to the summary page when ValidateFormData passes.
// On failure the form stays put and the returned result explains why.
func (f *OrderForm) Submit() (model.ValidationResult, error) {
	if f.draft.Page != model.PageForm {
		return f.validation, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, f.draft.Page)
	}
	result := ValidateFormData(f.draft.Form, f.college, f.policy)
	if !result.IsValid {
		f.validation = result
		f.validPaths = ValidProductPaths(f.draft.Form, f.college, result)
		return result, ErrFormInvalid
	}
	f.validation = result
	f.draft.Page = model.PageSummary
	return result, nil
}

// Back returns from the summary to the form.
func (f *OrderForm) Back() error {
	return f.move(model.PageSummary, model.PageForm)
}

// BackToSummary returns from the receipt to the summary.
func (f *OrderForm) BackToSummary() error {
	return f.move(model.PageReceipt, model.PageSummary)
}

// Exit leaves the receipt for the thank-you page.
func (f *OrderForm) Exit() error {
	return f.move(model.PageReceipt, model.PageThankYou)
}

func (f *OrderForm) move(from, to model.Page) error {
	if f.draft.Page != from {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, f.draft.Page, to)
	}
	f.draft.Page = to
	f.draft.UpdatedAt = time.Now().UTC()
	return nil
}

// BeginConfirm checks that the summary may be submitted.
func (f *OrderForm) BeginConfirm() error {
	f.draft.ConfirmationError = ""
	if f.draft.Page != model.PageSummary {
		return fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, f.draft.Page)
	}
	if f.draft.OrderID != "" {
		return ErrAlreadySubmitted
	}
	if limits := checkLimits(f.draft.Form, f.college); !limits.IsValid {
		f.draft.ConfirmationError = limits.ErrorMessage
		return ErrFormInvalid
	}
	if !HasOrderProducts(f.draft.Form, f.college) {
		f.draft.ConfirmationError = MsgEmptyOrder
		return ErrEmptyOrder
	}
	return nil
}

// FailConfirm records why a confirmation did not go through. The draft
// stays on the summary page so the customer can retry.
func (f *OrderForm) FailConfirm(message string) {
	f.draft.ConfirmationError = message
}

// CompleteConfirm marks the draft as submitted under orderID and shows
// the receipt.
func (f *OrderForm) CompleteConfirm(orderID string) {
	f.draft.ConfirmationError = ""
	f.draft.OrderID = orderID
	f.draft.Page = model.PageReceipt
	f.draft.UpdatedAt = time.Now().UTC()
}
