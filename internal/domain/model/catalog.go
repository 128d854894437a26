package model

import "strings"

// Axis names the configuration axis a category exposes for its products.
type Axis string

const (
	AxisQuantity        Axis = "quantity"
	AxisShirtVersions   Axis = "shirt_versions"
	AxisColorOptions    Axis = "color_options"
	AxisDisplayOptions  Axis = "display_options"
	AxisPantOptions     Axis = "pant_options"
	AxisSweatpantJogger Axis = "sweatpant_jogger"
	AxisInfantSizes     Axis = "infant_sizes"
)

// Valid reports whether a is a known axis.
func (a Axis) Valid() bool {
	switch a {
	case AxisQuantity, AxisShirtVersions, AxisColorOptions, AxisDisplayOptions,
		AxisPantOptions, AxisSweatpantJogger, AxisInfantSizes:
		return true
	}
	return false
}

// Theme is the branding of a college storefront.
type Theme struct {
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
	Accent     string `json:"accent,omitempty" yaml:"accent"`
	Background string `json:"background,omitempty" yaml:"background"`
	Text       string `json:"text,omitempty" yaml:"text"`
	FontFamily string `json:"font_family,omitempty" yaml:"font_family"`
	LogoURL    string `json:"logo_url,omitempty" yaml:"logo_url"`
}

// CardRef is the header card shipped with a display rack.
type CardRef struct {
	SKU  string `json:"sku" yaml:"sku"`
	Name string `json:"name" yaml:"name"`
}

// Category groups the product images sharing one configuration axis.
type Category struct {
	Name          string    `json:"name" yaml:"name"`
	Path          string    `json:"path" yaml:"path"`
	Axis          Axis      `json:"axis" yaml:"axis"`
	Images        []string  `json:"images" yaml:"images"`
	ShirtVersions []Version `json:"shirt_versions,omitempty" yaml:"shirt_versions"`
	ColorVersions []string  `json:"color_versions,omitempty" yaml:"color_versions"`
}

// HasImage reports whether image belongs to the category.
func (c Category) HasImage(image string) bool {
	for _, img := range c.Images {
		if img == image {
			return true
		}
	}
	return false
}

// VersionsFor returns the shirt versions offered for image. Applique
// products are only made as crew sweatshirts and hoodies.
func (c Category) VersionsFor(image string) []Version {
	versions := c.ShirtVersions
	if len(versions) == 0 && c.Axis == AxisShirtVersions {
		versions = AllVersions
	}
	if !IsApplique(image) {
		return versions
	}
	out := make([]Version, 0, 2)
	for _, v := range versions {
		if v == VersionCrewneck || v == VersionHoodie {
			out = append(out, v)
		}
	}
	return out
}

// ColorsFor returns the colours offered for image: the category's colour
// versions, or the colours encoded in the filename.
func (c Category) ColorsFor(image string) []string {
	if len(c.ColorVersions) > 0 {
		return c.ColorVersions
	}
	return ColorOptions(image)
}

// Accepts reports whether a selection of kind may be recorded for image.
func (c Category) Accepts(kind SelectionKind, image string) bool {
	switch c.Axis {
	case AxisQuantity:
		return kind == KindSimple || (kind == KindColorQuantities && HasColorOptions(image))
	case AxisShirtVersions:
		switch kind {
		case KindSizeBreakdown, KindShirtVersions:
			return true
		case KindColorSizeBreakdown:
			return len(c.ColorsFor(image)) > 0
		}
	case AxisColorOptions:
		return kind == KindColorQuantities
	case AxisDisplayOptions:
		return kind == KindDisplay || kind == KindSimple
	case AxisPantOptions:
		return kind == KindPantStyle
	case AxisSweatpantJogger:
		return kind == KindSweatpantJogger
	case AxisInfantSizes:
		return kind == KindInfantSizes
	}
	return false
}

// College is one tenant: a catalog, its branding and its order template.
type College struct {
	ID              string             `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	LogoURL         string             `json:"logo_url,omitempty" yaml:"logo_url"`
	OrderTemplateID string             `json:"order_template_id,omitempty" yaml:"order_template_id"`
	Theme           Theme              `json:"theme" yaml:"theme"`
	Categories      []Category         `json:"categories" yaml:"categories"`
	RackCards       map[string]CardRef `json:"rack_cards,omitempty" yaml:"rack_cards"`
}

// Category looks a category up by path.
func (c College) Category(path string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Path == path {
			return cat, true
		}
	}
	return Category{}, false
}

// ResolveCategory finds the category owning imagePath and the image name
// within it. An exact "category/image" match wins; otherwise the first
// category listing the bare filename is used.
func (c College) ResolveCategory(imagePath string) (Category, string, bool) {
	for _, cat := range c.Categories {
		prefix := cat.Path + "/"
		if strings.HasPrefix(imagePath, prefix) {
			image := strings.TrimPrefix(imagePath, prefix)
			if cat.HasImage(image) {
				return cat, image, true
			}
		}
	}

	filename := imagePath
	if i := strings.LastIndex(imagePath, "/"); i >= 0 {
		filename = imagePath[i+1:]
	}
	for _, cat := range c.Categories {
		if cat.HasImage(filename) {
			return cat, filename, true
		}
	}
	return Category{}, "", false
}

// Product returns the catalog product at imagePath.
func (c College) Product(imagePath string) (Product, bool) {
	cat, image, ok := c.ResolveCategory(imagePath)
	if !ok {
		return Product{}, false
	}
	return NewProduct(cat, image), true
}

// ImagePaths lists every "category/image" path in catalog order.
func (c College) ImagePaths() []string {
	var paths []string
	for _, cat := range c.Categories {
		for _, img := range cat.Images {
			paths = append(paths, ImagePath(cat.Path, img))
		}
	}
	return paths
}

// Product is a single orderable image of a category.
type Product struct {
	Category     string    `json:"category"`
	CategoryPath string    `json:"category_path"`
	Image        string    `json:"image"`
	Path         string    `json:"path"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	Axis         Axis      `json:"axis"`
	Versions     []Version `json:"versions,omitempty"`
	Colors       []string  `json:"colors,omitempty"`
}

// NewProduct derives the product view of image inside cat.
func NewProduct(cat Category, image string) Product {
	p := Product{
		Category:     cat.Name,
		CategoryPath: cat.Path,
		Image:        image,
		Path:         ImagePath(cat.Path, image),
		SKU:          SKU(image),
		Name:         ProductName(image),
		DisplayName:  DisplayProductName(image),
		Axis:         cat.Axis,
		Colors:       cat.ColorsFor(image),
	}
	if cat.Axis == AxisShirtVersions {
		p.Versions = cat.VersionsFor(image)
	}
	return p
}

// ImagePath joins a category path and an image name.
func ImagePath(categoryPath, image string) string {
	return categoryPath + "/" + image
}
