package model

import (
	"fmt"
	"sort"
	"strings"
)

// Version is one value of the shirt version axis.
type Version string

const (
	VersionTShirt     Version = "tshirt"
	VersionLongSleeve Version = "longsleeve"
	VersionHoodie     Version = "hoodie"
	VersionCrewneck   Version = "crewneck"
)

// AllVersions lists shirt versions in their canonical order.
var AllVersions = []Version{VersionTShirt, VersionLongSleeve, VersionHoodie, VersionCrewneck}

// Valid reports whether v is a known shirt version.
func (v Version) Valid() bool {
	for _, known := range AllVersions {
		if v == known {
			return true
		}
	}
	return false
}

var (
	// SizeOrder is the display order of garment sizes in breakdown strings.
	SizeOrder = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL", "SM", "S/M", "L/XL"}
	// DefaultSplitSizes are the sizes a case pack is spread across when none are given.
	DefaultSplitSizes = []string{"S", "M", "L", "XL", "XXL"}
	// InfantSizes are the sizes used by infant products.
	InfantSizes = []string{"6M", "12M"}

	scaleOrder = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}
)

// SizeCounts maps a garment size to a unit count.
type SizeCounts map[string]int

// Total returns the sum of all counts.
func (c SizeCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns an independent copy of c.
func (c SizeCounts) Clone() SizeCounts {
	if c == nil {
		return nil
	}
	out := make(SizeCounts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// MaxQuantity bounds every quantity field and every unit group total of
// a selection. It keeps totals far from int overflow.
const MaxQuantity = 100000

// Validate rejects negative counts and counts or totals above MaxQuantity.
func (c SizeCounts) Validate() error {
	total := 0
	for size, n := range c {
		if n < 0 {
			return fmt.Errorf("%w: size %s has %d", ErrNegativeQuantity, size, n)
		}
		if n > MaxQuantity {
			return fmt.Errorf("%w: size %s has %d", ErrQuantityTooLarge, size, n)
		}
		total += n
		if total > MaxQuantity {
			return fmt.Errorf("%w: size breakdown totals over %d", ErrQuantityTooLarge, MaxQuantity)
		}
	}
	return nil
}

// Breakdown renders the non-zero counts as "S: 2, M: 3". Sizes outside
// SizeOrder follow in lexical order so no count is dropped.
func (c SizeCounts) Breakdown() string {
	return c.breakdownIn(SizeOrder)
}

// InfantBreakdown renders infant counts as "6M: 3, 12M: 3".
func (c SizeCounts) InfantBreakdown() string {
	return c.breakdownIn(InfantSizes)
}

func (c SizeCounts) breakdownIn(order []string) string {
	if len(c) == 0 {
		return ""
	}
	seen := make(map[string]bool, len(order))
	parts := make([]string, 0, len(c))
	for _, size := range order {
		seen[size] = true
		if n := c[size]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", size, n))
		}
	}

	extra := make([]string, 0)
	for size, n := range c {
		if !seen[size] && n > 0 {
			extra = append(extra, size)
		}
	}
	sort.Strings(extra)
	for _, size := range extra {
		parts = append(parts, fmt.Sprintf("%s: %d", size, c[size]))
	}
	return strings.Join(parts, ", ")
}

// ParseSizeScale expands a garment size scale such as "S-XXXL" into the
// ordered list of sizes it covers. "SM-XL" is the two-bucket scale
// [SM, L/XL]. A single size yields itself; unknown bounds yield nil.
func ParseSizeScale(scale string) []string {
	s := strings.ToUpper(strings.TrimSpace(scale))
	if s == "" {
		return nil
	}
	if s == "SM-XL" {
		return []string{"SM", "L/XL"}
	}

	parts := strings.SplitN(s, "-", 2)
	from := indexOf(scaleOrder, strings.TrimSpace(parts[0]))
	if len(parts) == 1 {
		if from < 0 {
			return nil
		}
		return []string{scaleOrder[from]}
	}
	to := indexOf(scaleOrder, strings.TrimSpace(parts[1]))
	if from < 0 || to < 0 || from > to {
		return nil
	}
	out := make([]string, 0, to-from+1)
	out = append(out, scaleOrder[from:to+1]...)
	return out
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
