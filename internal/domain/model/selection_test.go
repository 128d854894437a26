package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Groups(t *testing.T) {
	tests := []struct {
		name       string
		sel        Selection
		order      GroupOrder
		wantLabels []string
		wantTotal  int
	}{
		{
			name:       "simple",
			sel:        Selection{Kind: KindSimple, Quantity: 6},
			wantLabels: []string{""},
			wantTotal:  6,
		},
		{
			name:      "simple zero has no groups",
			sel:       Selection{Kind: KindSimple},
			wantTotal: 0,
		},
		{
			name: "size breakdown in canonical version order",
			sel: Selection{Kind: KindSizeBreakdown, Sizes: map[Version]SizeCounts{
				VersionHoodie:   {"M": 8},
				VersionTShirt:   {"S": 3, "M": 4},
				VersionCrewneck: {},
			}},
			wantLabels: []string{"T-Shirt", "Hoodie"},
			wantTotal:  15,
		},
		{
			name: "colour quantities follow the filename order",
			sel: Selection{Kind: KindColorQuantities, Colors: map[string]int{
				"Navy":  6,
				"White": 6,
				"Gray":  0,
			}},
			order:      GroupOrder{Colors: []string{"White", "Gray", "Navy"}},
			wantLabels: []string{"White", "Navy"},
			wantTotal:  12,
		},
		{
			name: "colour size breakdown",
			sel: Selection{Kind: KindColorSizeBreakdown, ColorSizes: map[Version]map[string]SizeCounts{
				VersionTShirt: {"Gold": {"S": 7}, "Navy": {"M": 7}},
			}},
			order:      GroupOrder{Colors: []string{"Navy", "Gold"}},
			wantLabels: []string{"T-Shirt - Navy", "T-Shirt - Gold"},
			wantTotal:  14,
		},
		{
			name:       "display",
			sel:        Selection{Kind: KindDisplay, Display: &DisplayOption{DisplayOnly: 1, DisplayStandardCasePack: 2}},
			wantLabels: []string{"Display Only", "Display Standard Case Pack"},
			wantTotal:  3,
		},
		{
			name: "pants",
			sel: Selection{Kind: KindPantStyle, Pants: &PantOption{
				Sweatpants: SweatpantColors{Black: SizeCounts{"S": 6}},
				Joggers:    JoggerColors{DarkHeather: SizeCounts{"L": 6}},
			}},
			wantLabels: []string{"Sweatpants - Black", "Joggers - Dark Heather"},
			wantTotal:  12,
		},
		{
			name:       "sweatpant jogger",
			sel:        Selection{Kind: KindSweatpantJogger, SweatpantJogger: &SweatpantJoggerOption{SweatpantOxford: 6, JoggerSteel: 6}},
			wantLabels: []string{"Straight-Leg Oxford", "Jogger Steel"},
			wantTotal:  12,
		},
		{
			name:       "infant",
			sel:        Selection{Kind: KindInfantSizes, Infant: SizeCounts{"6M": 3, "12M": 3}},
			wantLabels: []string{""},
			wantTotal:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := tt.sel.Groups(tt.order)
			labels := make([]string, 0, len(groups))
			for _, g := range groups {
				labels = append(labels, g.Label)
			}
			if len(tt.wantLabels) == 0 {
				assert.Empty(t, groups)
			} else {
				assert.Equal(t, tt.wantLabels, labels)
			}
			assert.Equal(t, tt.wantTotal, tt.sel.Total())
		})
	}
}

func TestUnitGroup_Detail(t *testing.T) {
	tests := []struct {
		name  string
		group UnitGroup
		want  string
	}{
		{name: "plain", group: UnitGroup{Total: 6}, want: ""},
		{name: "label only", group: UnitGroup{Label: "Display Only", Total: 1}, want: "Display Only"},
		{name: "label and sizes", group: UnitGroup{Label: "T-Shirt", Sizes: SizeCounts{"M": 3, "S": 4}}, want: "T-Shirt - S: 4, M: 3"},
		{name: "infant sizes", group: UnitGroup{Sizes: SizeCounts{"12M": 2, "6M": 4}}, want: "6M: 4, 12M: 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.group.Detail())
		})
	}
}

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr error
	}{
		{name: "plain quantity", sel: Selection{Kind: KindSimple, Quantity: 6}},
		{name: "at the cap", sel: Selection{Kind: KindSimple, Quantity: MaxQuantity}},
		{name: "negative quantity", sel: Selection{Kind: KindSimple, Quantity: -1}, wantErr: ErrNegativeQuantity},
		{name: "negative colour", sel: Selection{Kind: KindColorQuantities, Colors: map[string]int{"Navy": -6}}, wantErr: ErrNegativeQuantity},
		{name: "negative display", sel: Selection{Kind: KindDisplay, Display: &DisplayOption{DisplayOnly: -1}}, wantErr: ErrNegativeQuantity},
		{
			name:    "negative jogger size",
			sel:     Selection{Kind: KindPantStyle, Pants: &PantOption{Joggers: JoggerColors{Steel: SizeCounts{"S": -2}}}},
			wantErr: ErrNegativeQuantity,
		},
		{name: "negative infant size", sel: Selection{Kind: KindInfantSizes, Infant: SizeCounts{"6M": -1}}, wantErr: ErrNegativeQuantity},
		{name: "quantity over the cap", sel: Selection{Kind: KindSimple, Quantity: MaxQuantity + 1}, wantErr: ErrQuantityTooLarge},
		{
			name:    "size count that would wrap the total",
			sel:     Selection{Kind: KindSizeBreakdown, Sizes: map[Version]SizeCounts{VersionHoodie: {"S": math.MaxInt, "M": 2}}},
			wantErr: ErrQuantityTooLarge,
		},
		{
			name:    "sizes under the cap summing over it",
			sel:     Selection{Kind: KindSizeBreakdown, Sizes: map[Version]SizeCounts{VersionTShirt: {"S": 60000, "M": 60000}}},
			wantErr: ErrQuantityTooLarge,
		},
		{
			name: "versions summing over the cap",
			sel: Selection{Kind: KindShirtVersions, Versions: map[Version]int{
				VersionTShirt: 60000, VersionHoodie: 60000,
			}},
			wantErr: ErrQuantityTooLarge,
		},
		{
			name:    "legacy sweatpant option over the cap",
			sel:     Selection{Kind: KindSweatpantJogger, SweatpantJogger: &SweatpantJoggerOption{JoggerOxford: math.MaxInt}},
			wantErr: ErrQuantityTooLarge,
		},
		{
			name:    "idle field of another kind is still bounded",
			sel:     Selection{Kind: KindSimple, Quantity: 6, Colors: map[string]int{"Navy": MaxQuantity + 1}},
			wantErr: ErrQuantityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSelection_CloneIsIndependent(t *testing.T) {
	orig := Selection{
		Kind:       KindColorSizeBreakdown,
		ColorSizes: map[Version]map[string]SizeCounts{VersionTShirt: {"Navy": {"S": 7}}},
		Pants:      &PantOption{Sweatpants: SweatpantColors{Steel: SizeCounts{"M": 6}}},
		Display:    &DisplayOption{DisplayOnly: 1},
	}
	clone := orig.Clone()
	clone.ColorSizes[VersionTShirt]["Navy"]["S"] = 1
	clone.Pants.Sweatpants.Steel["M"] = 1
	clone.Display.DisplayOnly = 5

	require.Equal(t, 7, orig.ColorSizes[VersionTShirt]["Navy"]["S"])
	assert.Equal(t, 6, orig.Pants.Sweatpants.Steel["M"])
	assert.Equal(t, 1, orig.Display.DisplayOnly)
}
