package model

import (
	"fmt"
	"sort"
)

// SelectionKind tags the variant held by a Selection.
type SelectionKind string

const (
	// KindSimple is a plain unit quantity.
	KindSimple SelectionKind = "simple"
	// KindShirtVersions is a unit quantity per shirt version without sizes.
	KindShirtVersions SelectionKind = "shirt_versions"
	// KindSizeBreakdown is a size breakdown per shirt version.
	KindSizeBreakdown SelectionKind = "size_breakdown"
	// KindColorQuantities is a unit quantity per colour.
	KindColorQuantities SelectionKind = "color_quantities"
	// KindColorSizeBreakdown is a size breakdown per shirt version and colour.
	KindColorSizeBreakdown SelectionKind = "color_size_breakdown"
	// KindDisplay is a display-only / display-with-case-pack pair.
	KindDisplay SelectionKind = "display"
	// KindPantStyle is a size breakdown per pant style and colour.
	KindPantStyle SelectionKind = "pant_style"
	// KindSweatpantJogger is the four legacy sweatpant/jogger quantities.
	KindSweatpantJogger SelectionKind = "sweatpant_jogger"
	// KindInfantSizes is an infant size breakdown.
	KindInfantSizes SelectionKind = "infant_sizes"
)

// DisplayOption is the quantity of a display fixture with and without its
// standard case pack.
type DisplayOption struct {
	DisplayOnly             int `json:"display_only" bson:"display_only"`
	DisplayStandardCasePack int `json:"display_standard_case_pack" bson:"display_standard_case_pack"`
}

// DisplayField names one DisplayOption quantity.
type DisplayField string

const (
	DisplayOnly             DisplayField = "displayOnly"
	DisplayStandardCasePack DisplayField = "displayStandardCasePack"
)

// SweatpantJoggerOption holds the legacy per-style quantities.
type SweatpantJoggerOption struct {
	SweatpantSteel  int `json:"sweatpant_steel" bson:"sweatpant_steel"`
	SweatpantOxford int `json:"sweatpant_oxford" bson:"sweatpant_oxford"`
	JoggerSteel     int `json:"jogger_steel" bson:"jogger_steel"`
	JoggerOxford    int `json:"jogger_oxford" bson:"jogger_oxford"`
}

// SweatpantJoggerField names one SweatpantJoggerOption quantity.
type SweatpantJoggerField string

const (
	SweatpantSteel  SweatpantJoggerField = "sweatpantSteel"
	SweatpantOxford SweatpantJoggerField = "sweatpantOxford"
	JoggerSteel     SweatpantJoggerField = "joggerSteel"
	JoggerOxford    SweatpantJoggerField = "joggerOxford"
)

// SweatpantColors are the size breakdowns of straight-leg sweatpants.
type SweatpantColors struct {
	Steel    SizeCounts `json:"steel,omitempty" bson:"steel,omitempty"`
	Black    SizeCounts `json:"black,omitempty" bson:"black,omitempty"`
	DarkNavy SizeCounts `json:"dark_navy,omitempty" bson:"dark_navy,omitempty"`
}

// JoggerColors are the size breakdowns of joggers.
type JoggerColors struct {
	Steel       SizeCounts `json:"steel,omitempty" bson:"steel,omitempty"`
	DarkHeather SizeCounts `json:"dark_heather,omitempty" bson:"dark_heather,omitempty"`
}

// PantOption is the style/colour/size tree of a pant product.
type PantOption struct {
	Sweatpants SweatpantColors `json:"sweatpants" bson:"sweatpants"`
	Joggers    JoggerColors    `json:"joggers" bson:"joggers"`
}

func (p PantOption) clone() PantOption {
	return PantOption{
		Sweatpants: SweatpantColors{
			Steel:    p.Sweatpants.Steel.Clone(),
			Black:    p.Sweatpants.Black.Clone(),
			DarkNavy: p.Sweatpants.DarkNavy.Clone(),
		},
		Joggers: JoggerColors{
			Steel:       p.Joggers.Steel.Clone(),
			DarkHeather: p.Joggers.DarkHeather.Clone(),
		},
	}
}

type labeledCounts struct {
	label  string
	counts SizeCounts
}

func (p PantOption) groups() []labeledCounts {
	return []labeledCounts{
		{"Sweatpants - Steel", p.Sweatpants.Steel},
		{"Sweatpants - Black", p.Sweatpants.Black},
		{"Sweatpants - Dark Navy", p.Sweatpants.DarkNavy},
		{"Joggers - Steel", p.Joggers.Steel},
		{"Joggers - Dark Heather", p.Joggers.DarkHeather},
	}
}

// Selection is what the customer picked for one product. Kind selects
// which of the remaining fields is meaningful.
type Selection struct {
	Kind            SelectionKind                     `json:"kind" bson:"kind"`
	Quantity        int                               `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Versions        map[Version]int                   `json:"versions,omitempty" bson:"versions,omitempty"`
	Sizes           map[Version]SizeCounts            `json:"sizes,omitempty" bson:"sizes,omitempty"`
	Colors          map[string]int                    `json:"colors,omitempty" bson:"colors,omitempty"`
	ColorSizes      map[Version]map[string]SizeCounts `json:"color_sizes,omitempty" bson:"color_sizes,omitempty"`
	Display         *DisplayOption                    `json:"display,omitempty" bson:"display,omitempty"`
	Pants           *PantOption                       `json:"pants,omitempty" bson:"pants,omitempty"`
	SweatpantJogger *SweatpantJoggerOption            `json:"sweatpant_jogger,omitempty" bson:"sweatpant_jogger,omitempty"`
	Infant          SizeCounts                        `json:"infant,omitempty" bson:"infant,omitempty"`
}

// Clone returns a deep copy of s.
func (s Selection) Clone() Selection {
	out := Selection{Kind: s.Kind, Quantity: s.Quantity, Infant: s.Infant.Clone()}
	if s.Versions != nil {
		out.Versions = make(map[Version]int, len(s.Versions))
		for k, v := range s.Versions {
			out.Versions[k] = v
		}
	}
	if s.Sizes != nil {
		out.Sizes = make(map[Version]SizeCounts, len(s.Sizes))
		for k, v := range s.Sizes {
			out.Sizes[k] = v.Clone()
		}
	}
	if s.Colors != nil {
		out.Colors = make(map[string]int, len(s.Colors))
		for k, v := range s.Colors {
			out.Colors[k] = v
		}
	}
	if s.ColorSizes != nil {
		out.ColorSizes = make(map[Version]map[string]SizeCounts, len(s.ColorSizes))
		for v, byColor := range s.ColorSizes {
			inner := make(map[string]SizeCounts, len(byColor))
			for color, counts := range byColor {
				inner[color] = counts.Clone()
			}
			out.ColorSizes[v] = inner
		}
	}
	if s.Display != nil {
		d := *s.Display
		out.Display = &d
	}
	if s.Pants != nil {
		p := s.Pants.clone()
		out.Pants = &p
	}
	if s.SweatpantJogger != nil {
		sj := *s.SweatpantJogger
		out.SweatpantJogger = &sj
	}
	return out
}

// UnitGroup is the smallest set of units that must satisfy one pack-size
// rule, e.g. all T-Shirt sizes of one product or one pant colour.
type UnitGroup struct {
	// Label describes the group inside a product, empty for plain quantities.
	Label string
	// Version is set for groups belonging to one shirt version.
	Version Version
	// Color is set for groups belonging to one colour.
	Color string
	// Sizes is the size breakdown, nil for plain quantities.
	Sizes SizeCounts
	// Total is the number of units in the group.
	Total int
}

// Detail renders the group suffix used in line item names: the label and
// the size breakdown joined by " - ".
func (g UnitGroup) Detail() string {
	breakdown := ""
	if g.Sizes != nil {
		breakdown = g.Sizes.Breakdown()
		if g.Label == "" {
			breakdown = g.Sizes.InfantBreakdown()
		}
	}
	switch {
	case g.Label == "":
		return breakdown
	case breakdown == "":
		return g.Label
	default:
		return g.Label + " - " + breakdown
	}
}

// GroupOrder fixes the iteration order of versions and colours. Keys not
// listed follow in lexical order.
type GroupOrder struct {
	Versions []Version
	Colors   []string
}

// Groups splits the selection into its non-empty unit groups. Validation
// and the order email both count units through this method.
func (s Selection) Groups(order GroupOrder) []UnitGroup {
	var groups []UnitGroup
	add := func(g UnitGroup) {
		if g.Total > 0 {
			groups = append(groups, g)
		}
	}

	switch s.Kind {
	case KindSimple:
		add(UnitGroup{Total: s.Quantity})
	case KindShirtVersions:
		for _, v := range orderedVersions(order.Versions, keysOf(s.Versions)) {
			add(UnitGroup{Label: VersionDisplayName(v), Version: v, Total: s.Versions[v]})
		}
	case KindSizeBreakdown:
		for _, v := range orderedVersions(order.Versions, keysOf(s.Sizes)) {
			counts := s.Sizes[v]
			add(UnitGroup{Label: VersionDisplayName(v), Version: v, Sizes: counts, Total: counts.Total()})
		}
	case KindColorQuantities:
		for _, c := range orderedStrings(order.Colors, keysOf(s.Colors)) {
			add(UnitGroup{Label: ColorDisplayName(c), Color: c, Total: s.Colors[c]})
		}
	case KindColorSizeBreakdown:
		for _, v := range orderedVersions(order.Versions, keysOf(s.ColorSizes)) {
			byColor := s.ColorSizes[v]
			for _, c := range orderedStrings(order.Colors, keysOf(byColor)) {
				counts := byColor[c]
				add(UnitGroup{
					Label:   fmt.Sprintf("%s - %s", VersionDisplayName(v), ColorDisplayName(c)),
					Version: v,
					Color:   c,
					Sizes:   counts,
					Total:   counts.Total(),
				})
			}
		}
	case KindDisplay:
		if s.Display != nil {
			add(UnitGroup{Label: "Display Only", Total: s.Display.DisplayOnly})
			add(UnitGroup{Label: "Display Standard Case Pack", Total: s.Display.DisplayStandardCasePack})
		}
	case KindPantStyle:
		if s.Pants != nil {
			for _, lc := range s.Pants.groups() {
				add(UnitGroup{Label: lc.label, Sizes: lc.counts, Total: lc.counts.Total()})
			}
		}
	case KindSweatpantJogger:
		if sj := s.SweatpantJogger; sj != nil {
			add(UnitGroup{Label: "Straight-Leg Steel", Total: sj.SweatpantSteel})
			add(UnitGroup{Label: "Straight-Leg Oxford", Total: sj.SweatpantOxford})
			add(UnitGroup{Label: "Jogger Steel", Total: sj.JoggerSteel})
			add(UnitGroup{Label: "Jogger Oxford", Total: sj.JoggerOxford})
		}
	case KindInfantSizes:
		add(UnitGroup{Sizes: s.Infant, Total: s.Infant.Total()})
	}
	return groups
}

// Total returns the number of units across all groups.
func (s Selection) Total() int {
	total := 0
	for _, g := range s.Groups(GroupOrder{}) {
		total += g.Total
	}
	return total
}

// Validate rejects negative quantities anywhere in the selection, and
// fields, groups or a selection total above MaxQuantity.
func (s Selection) Validate() error {
	if err := s.validateFields(); err != nil {
		return err
	}
	if total := s.Total(); total > MaxQuantity {
		return fmt.Errorf("%w: selection totals %d", ErrQuantityTooLarge, total)
	}
	return nil
}

func (s Selection) validateFields() error {
	check := func(label string, n int) error {
		switch {
		case n < 0:
			return fmt.Errorf("%w: %s has %d", ErrNegativeQuantity, label, n)
		case n > MaxQuantity:
			return fmt.Errorf("%w: %s has %d", ErrQuantityTooLarge, label, n)
		}
		return nil
	}
	if err := check("quantity", s.Quantity); err != nil {
		return err
	}
	for v, n := range s.Versions {
		if err := check(string(v), n); err != nil {
			return err
		}
	}
	for _, counts := range s.Sizes {
		if err := counts.Validate(); err != nil {
			return err
		}
	}
	for c, n := range s.Colors {
		if err := check(c, n); err != nil {
			return err
		}
	}
	for _, byColor := range s.ColorSizes {
		for _, counts := range byColor {
			if err := counts.Validate(); err != nil {
				return err
			}
		}
	}
	if d := s.Display; d != nil {
		if err := check(string(DisplayOnly), d.DisplayOnly); err != nil {
			return err
		}
		if err := check(string(DisplayStandardCasePack), d.DisplayStandardCasePack); err != nil {
			return err
		}
	}
	if p := s.Pants; p != nil {
		for _, lc := range p.groups() {
			if err := lc.counts.Validate(); err != nil {
				return err
			}
		}
	}
	if sj := s.SweatpantJogger; sj != nil {
		for _, n := range []int{sj.SweatpantSteel, sj.SweatpantOxford, sj.JoggerSteel, sj.JoggerOxford} {
			if err := check("sweatpant/jogger option", n); err != nil {
				return err
			}
		}
	}
	return s.Infant.Validate()
}

func keysOf[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func orderedVersions(preferred, present []Version) []Version {
	if len(preferred) == 0 {
		preferred = AllVersions
	}
	return ordered(preferred, present)
}

func orderedStrings(preferred, present []string) []string {
	return ordered(preferred, present)
}

// ordered returns present sorted by its position in preferred; entries
// missing from preferred keep their (sorted) order at the end.
func ordered[K comparable](preferred, present []K) []K {
	inPresent := make(map[K]bool, len(present))
	for _, k := range present {
		inPresent[k] = true
	}
	out := make([]K, 0, len(present))
	used := make(map[K]bool, len(present))
	for _, k := range preferred {
		if inPresent[k] && !used[k] {
			out = append(out, k)
			used[k] = true
		}
	}
	for _, k := range present {
		if !used[k] {
			out = append(out, k)
		}
	}
	return out
}
