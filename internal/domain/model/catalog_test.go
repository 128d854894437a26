package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func testCollege() College {
	return College{
		ID:   "michiganstate",
		Name: "Michigan State University",
		Categories: []Category{
			{
				Name:   "Men's T-Shirts",
				Path:   "tshirt/men",
				Axis:   AxisShirtVersions,
				Images: []string{"M1 TEE Spartans on_Black_or_Forest.png", "M2 CRW Spartan Applique.png"},
			},
			{Name: "Hats", Path: "hat", Axis: AxisQuantity, Images: []string{"M3 HAT Dad Hat.png", "Custom_Hat_on_White_or_Gray.png"}},
			{Name: "Beanies", Path: "beanie", Axis: AxisColorOptions, Images: []string{"M4 BNE Beanie.png"}, ColorVersions: []string{"Green", "Black"}},
			{Name: "Racks", Path: "rack", Axis: AxisDisplayOptions, Images: []string{"M5 RK Rack.png"}},
		},
	}
}

func TestCollege_ResolveCategory(t *testing.T) {
	college := testCollege()

	tests := []struct {
		name      string
		path      string
		wantOK    bool
		wantCat   string
		wantImage string
	}{
		{name: "exact path", path: "hat/M3 HAT Dad Hat.png", wantOK: true, wantCat: "hat", wantImage: "M3 HAT Dad Hat.png"},
		{name: "filename fallback", path: "old/M3 HAT Dad Hat.png", wantOK: true, wantCat: "hat", wantImage: "M3 HAT Dad Hat.png"},
		{name: "bare filename", path: "M4 BNE Beanie.png", wantOK: true, wantCat: "beanie", wantImage: "M4 BNE Beanie.png"},
		{name: "unknown", path: "hat/missing.png", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, image, ok := college.ResolveCategory(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCat, cat.Path)
			assert.Equal(t, tt.wantImage, image)
		})
	}
}

func TestCategory_VersionsAndColors(t *testing.T) {
	college := testCollege()
	tees, ok := college.Category("tshirt/men")
	require.True(t, ok)

	assert.Equal(t, AllVersions, tees.VersionsFor("M1 TEE Spartans on_Black_or_Forest.png"))
	assert.Equal(t, []Version{VersionHoodie, VersionCrewneck}, tees.VersionsFor("M2 CRW Spartan Applique.png"))
	assert.Equal(t, []string{"Black", "Forest"}, tees.ColorsFor("M1 TEE Spartans on_Black_or_Forest.png"))

	beanies, _ := college.Category("beanie")
	assert.Equal(t, []string{"Green", "Black"}, beanies.ColorsFor("M4 BNE Beanie.png"))
}

func TestCategory_Accepts(t *testing.T) {
	college := testCollege()
	tees, _ := college.Category("tshirt/men")
	hats, _ := college.Category("hat")
	racks, _ := college.Category("rack")

	assert.True(t, tees.Accepts(KindSizeBreakdown, "M2 CRW Spartan Applique.png"))
	assert.True(t, tees.Accepts(KindColorSizeBreakdown, "M1 TEE Spartans on_Black_or_Forest.png"))
	assert.False(t, tees.Accepts(KindColorSizeBreakdown, "M2 CRW Spartan Applique.png"))
	assert.False(t, tees.Accepts(KindSimple, "M2 CRW Spartan Applique.png"))

	assert.True(t, hats.Accepts(KindSimple, "M3 HAT Dad Hat.png"))
	assert.False(t, hats.Accepts(KindColorQuantities, "M3 HAT Dad Hat.png"))
	assert.True(t, hats.Accepts(KindColorQuantities, "Custom_Hat_on_White_or_Gray.png"))

	assert.True(t, racks.Accepts(KindDisplay, "M5 RK Rack.png"))
	assert.True(t, racks.Accepts(KindSimple, "M5 RK Rack.png"))
}

func TestCollege_ProductAndImagePaths(t *testing.T) {
	college := testCollege()

	p, ok := college.Product("tshirt/men/M2 CRW Spartan Applique.png")
	require.True(t, ok)
	assert.Equal(t, "M2", p.SKU)
	assert.Equal(t, "tshirt/men/M2 CRW Spartan Applique.png", p.Path)
	assert.Equal(t, []Version{VersionHoodie, VersionCrewneck}, p.Versions)

	_, ok = college.Product("nope.png")
	assert.False(t, ok)

	paths := college.ImagePaths()
	assert.Len(t, paths, 6)
	assert.Equal(t, "tshirt/men/M1 TEE Spartans on_Black_or_Forest.png", paths[0])
}

func TestStoreInfo_Complete(t *testing.T) {
	full := StoreInfo{Company: "Campus Store", StoreNumber: "42", StoreManager: "Pat", Date: "2024-03-01"}
	assert.True(t, full.Complete())

	noNotes := full
	noNotes.OrderNotes = ""
	assert.True(t, noNotes.Complete())

	blank := full
	blank.StoreManager = "  "
	assert.False(t, blank.Complete())
}

func TestFormData_BSONKeepsDottedPaths(t *testing.T) {
	form := NewFormData("2024-03-01")
	form.Selections["hat/M3 HAT Dad Hat.png"] = Selection{Kind: KindSimple, Quantity: 6}
	form.Selections["tshirt/men/M1 TEE.png"] = Selection{
		Kind:  KindSizeBreakdown,
		Sizes: map[Version]SizeCounts{VersionTShirt: {"S": 3, "M": 4}},
	}

	data, err := bson.Marshal(form)
	require.NoError(t, err)

	var decoded FormData
	require.NoError(t, bson.Unmarshal(data, &decoded))
	assert.Equal(t, form.Store, decoded.Store)
	assert.Equal(t, form.Paths(), decoded.Paths())
	assert.Equal(t, 13, decoded.TotalUnits())
}

func TestPage_Route(t *testing.T) {
	assert.Equal(t, "/michiganstate", PageForm.Route("michiganstate"))
	assert.Equal(t, "/michiganstate/summary", PageSummary.Route("michiganstate"))
	assert.Equal(t, "/michiganstate/receipt", PageReceipt.Route("michiganstate"))
	assert.Equal(t, "/michiganstate/thankyou", PageThankYou.Route("michiganstate"))
}

func TestStoreInfoPatch_Apply(t *testing.T) {
	number := "42"
	notes := ""
	store := StoreInfo{Company: "Campus Store", OrderNotes: "rush"}

	got := StoreInfoPatch{StoreNumber: &number, OrderNotes: &notes}.Apply(store)
	assert.Equal(t, StoreInfo{Company: "Campus Store", StoreNumber: "42"}, got)
}
