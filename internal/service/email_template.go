package service

import (
	"sort"
	"strconv"

	"github.com/guttosm/college-order-service/internal/domain/model"
)

// CreateEmailCategories flattens form into email line items, one category
// per catalog category in catalog order. Categories without items are
// left out. Rack units add their header card to a trailing
// model.AutoAddedCardsCategory, grouped by card SKU.
func CreateEmailCategories(form model.FormData, college model.College) []model.EmailCategory {
	categories := make([]model.EmailCategory, 0, len(college.Categories)+1)
	cardQty := make(map[string]int)
	cardNames := make(map[string]string)

	for _, cat := range college.Categories {
		items := make([]model.EmailItem, 0)
		for _, image := range cat.Images {
			imagePath := model.ImagePath(cat.Path, image)
			sel, ok := form.Selections[imagePath]
			if !ok {
				continue
			}
			items = append(items, emailItems(cat, image, sel)...)

			if card, ok := college.RackCards[imagePath]; ok && sel.Kind == model.KindSimple && sel.Quantity > 0 {
				cardQty[card.SKU] += sel.Quantity
				cardNames[card.SKU] = card.Name
			}
		}
		if len(items) > 0 {
			categories = append(categories, model.EmailCategory{Category: cat.Name, Items: items})
		}
	}

	if len(cardQty) > 0 {
		skus := make([]string, 0, len(cardQty))
		for sku := range cardQty {
			skus = append(skus, sku)
		}
		sort.Strings(skus)
		cards := make([]model.EmailItem, 0, len(skus))
		for _, sku := range skus {
			cards = append(cards, model.EmailItem{SKU: sku, Name: cardNames[sku], Qty: strconv.Itoa(cardQty[sku])})
		}
		categories = append(categories, model.EmailCategory{Category: model.AutoAddedCardsCategory, Items: cards})
	}
	return categories
}

// emailItems renders the unit groups of one selection as line items named
// "<product> (<detail>)", or just "<product>" for plain quantities.
func emailItems(cat model.Category, image string, sel model.Selection) []model.EmailItem {
	sku := model.SKU(image)
	name := model.ProductName(image)
	order := model.GroupOrder{Versions: cat.VersionsFor(image), Colors: cat.ColorsFor(image)}

	groups := sel.Groups(order)
	items := make([]model.EmailItem, 0, len(groups))
	for _, g := range groups {
		itemName := name
		if detail := g.Detail(); detail != "" {
			itemName = name + " (" + detail + ")"
		}
		items = append(items, model.EmailItem{
			SKU:     sku,
			Name:    itemName,
			Qty:     strconv.Itoa(g.Total),
			Version: g.Version,
		})
	}
	return items
}

// CreateTemplateParams assembles the transactional email payload for a
// submitted order.
func CreateTemplateParams(form model.FormData, college model.College, providerEmail string) model.TemplateParams {
	categories := CreateEmailCategories(form, college)
	return model.TemplateParams{
		Company:       form.Store.Company,
		SchoolName:    college.Name,
		StoreNumber:   form.Store.StoreNumber,
		ManagerName:   form.Store.StoreManager,
		Date:          form.Store.Date,
		OrderNotes:    form.Store.OrderNotes,
		Categories:    categories,
		TotalUnits:    strconv.Itoa(model.CalculateTotalUnits(categories)),
		ProviderEmail: providerEmail,
	}
}

// OrderLines converts a form into the product lines stored with an order.
func OrderLines(form model.FormData, college model.College) []model.OrderLine {
	var lines []model.OrderLine
	for _, cat := range college.Categories {
		for _, image := range cat.Images {
			imagePath := model.ImagePath(cat.Path, image)
			sel, ok := form.Selections[imagePath]
			if !ok {
				continue
			}
			order := model.GroupOrder{Versions: cat.VersionsFor(image), Colors: cat.ColorsFor(image)}
			for _, g := range sel.Groups(order) {
				lines = append(lines, model.OrderLine{
					Category:    cat.Name,
					ProductName: model.ProductName(image),
					ImagePath:   imagePath,
					SKU:         model.SKU(image),
					Quantities:  g.Sizes.Clone(),
					Quantity:    g.Total,
					Version:     g.Version,
					Color:       g.Color,
					Style:       g.Label,
				})
			}
		}
	}
	return lines
}
