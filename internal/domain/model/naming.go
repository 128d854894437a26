package model

import (
	"regexp"
	"strings"
)

var (
	imageExt = regexp.MustCompile(`(?i)\.(png|jpe?g)$`)

	whiteGrayColor   = regexp.MustCompile(`(?i)WhiteGrayor_([a-z]+)`)
	onColorAlternate = regexp.MustCompile(`(?i)on_([a-z]+)_or_([a-z]+)(?:_or_([a-z]+))?`)

	// productNameOverrides rename images whose filenames carry a style suffix
	// that must not reach the order email.
	productNameOverrides = map[string]string{
		"M100447223 SHVSCD Value DTF Gray Pants Jogger.png":            "M100447223 SHVSCD Value DTF Gray Pants",
		"M100446293 SHPSDS Shake it DTF Gray Pants Jogger.png":         "M100446293 SHPSDS Shake it DTF Gray Pants",
		"M100448649 SHFDDS Force Down DTF Gray Pants Straight-Leg.png": "M100448649 SHFDDS Force Down DTF Gray Pants",
	}

	displayNameOverrides = map[string]string{
		"M100447223 SHVSCD Value DTF Gray Pants Jogger.png":            "Value DTF Gray Pants",
		"M100446293 SHPSDS Shake it DTF Gray Pants Jogger.png":         "Shake it DTF Gray Pants",
		"M100448649 SHFDDS Force Down DTF Gray Pants Straight-Leg.png": "Force Down DTF Gray Pants",
	}
)

// SKU returns the stock keeping unit encoded in an image filename: the
// text before the first space.
func SKU(image string) string {
	if i := strings.Index(image, " "); i >= 0 {
		return image[:i]
	}
	return imageExt.ReplaceAllString(image, "")
}

// ProductName returns the order-facing name of an image: the filename
// without its extension.
func ProductName(image string) string {
	if name, ok := productNameOverrides[image]; ok {
		return name
	}
	return imageExt.ReplaceAllString(image, "")
}

// DisplayProductName returns the customer-facing name of an image with the
// product id and style code removed, e.g.
// "M102073197_SDCAVC_Cavalier_DTF_on_Maroon.png" becomes
// "Cavalier DTF on Maroon".
func DisplayProductName(image string) string {
	if name, ok := displayNameOverrides[image]; ok {
		return name
	}
	base := imageExt.ReplaceAllString(image, "")

	if first := strings.Index(base, "_"); first >= 0 {
		if second := strings.Index(base[first+1:], "_"); second >= 0 {
			rest := base[first+1+second+1:]
			if cleaned := strings.TrimSpace(strings.ReplaceAll(rest, "_", " ")); cleaned != "" {
				return cleaned
			}
			return base
		}
	}
	return strings.TrimSpace(strings.ReplaceAll(base, "_", " "))
}

// VersionDisplayName returns the human label of a shirt version.
func VersionDisplayName(v Version) string {
	switch v {
	case VersionTShirt:
		return "T-Shirt"
	case VersionLongSleeve:
		return "Long Sleeve T-shirt"
	case VersionHoodie:
		return "Hoodie"
	case VersionCrewneck:
		return "Crew Sweatshirt"
	}
	return string(v)
}

// HasColorOptions reports whether the filename encodes colour alternatives.
func HasColorOptions(image string) bool {
	return strings.Contains(image, "_or_") || strings.Contains(image, "WhiteGrayor_")
}

// ColorOptions extracts the colour alternatives from a filename:
// "Custom_Hat_on_White_or_Gray_or_Navy.png" yields [White Gray Navy] and
// "Scrap_WhiteGrayor_Navy_Hat.png" yields [White Gray Navy].
func ColorOptions(image string) []string {
	if !HasColorOptions(image) {
		return nil
	}
	if m := whiteGrayColor.FindStringSubmatch(image); m != nil {
		return []string{"White", "Gray", m[1]}
	}
	m := onColorAlternate.FindStringSubmatch(image)
	if m == nil {
		return nil
	}
	colors := []string{m[1], m[2]}
	if m[3] != "" {
		colors = append(colors, m[3])
	}
	return colors
}

// ColorDisplayName capitalises the first letter of a colour and lowercases
// the rest.
func ColorDisplayName(color string) string {
	if color == "" {
		return ""
	}
	return strings.ToUpper(color[:1]) + strings.ToLower(color[1:])
}

// IsApplique reports whether the product name marks an applique item.
func IsApplique(name string) bool {
	return strings.Contains(strings.ToLower(name), "applique")
}
