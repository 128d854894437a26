// Package catalog loads the tenant catalog: every college storefront with
// its product categories and branding.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is returned when a catalog document fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

type document struct {
	Colleges []model.College `yaml:"colleges"`
}

// Catalog is an immutable set of colleges, safe for concurrent use.
type Catalog struct {
	colleges []model.College
	byID     map[string]int
}

// Load decodes and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(doc.Colleges)
}

// LoadFile loads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(f)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// New validates colleges and builds a catalog from them.
func New(colleges []model.College) (*Catalog, error) {
	if len(colleges) == 0 {
		return nil, fmt.Errorf("%w: no colleges", ErrInvalidCatalog)
	}

	var errs []error
	byID := make(map[string]int, len(colleges))
	for i, college := range colleges {
		if college.ID == "" {
			errs = append(errs, fmt.Errorf("college %d: empty id", i))
			continue
		}
		if _, dup := byID[college.ID]; dup {
			errs = append(errs, fmt.Errorf("college %s: duplicate id", college.ID))
			continue
		}
		byID[college.ID] = i
		errs = append(errs, validateCollege(college)...)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return &Catalog{colleges: colleges, byID: byID}, nil
}

func validateCollege(c model.College) []error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, fmt.Errorf("college %s: empty name", c.ID))
	}
	if len(c.Categories) == 0 {
		errs = append(errs, fmt.Errorf("college %s: no categories", c.ID))
	}

	paths := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		where := fmt.Sprintf("college %s category %q", c.ID, cat.Path)
		switch {
		case cat.Path == "":
			errs = append(errs, fmt.Errorf("college %s category %q: empty path", c.ID, cat.Name))
		case paths[cat.Path]:
			errs = append(errs, fmt.Errorf("%s: duplicate path", where))
		}
		paths[cat.Path] = true

		if !cat.Axis.Valid() {
			errs = append(errs, fmt.Errorf("%s: unknown axis %q", where, cat.Axis))
		}
		for _, v := range cat.ShirtVersions {
			if !v.Valid() {
				errs = append(errs, fmt.Errorf("%s: unknown shirt version %q", where, v))
			}
		}
		images := make(map[string]bool, len(cat.Images))
		for _, img := range cat.Images {
			if strings.TrimSpace(img) == "" {
				errs = append(errs, fmt.Errorf("%s: empty image name", where))
			} else if images[img] {
				errs = append(errs, fmt.Errorf("%s: duplicate image %q", where, img))
			}
			images[img] = true
		}
	}

	for path, card := range c.RackCards {
		if _, _, ok := c.ResolveCategory(path); !ok {
			errs = append(errs, fmt.Errorf("college %s: rack card for unknown product %q", c.ID, path))
		}
		if card.SKU == "" {
			errs = append(errs, fmt.Errorf("college %s: rack card for %q has no sku", c.ID, path))
		}
	}
	return errs
}

// Colleges returns every college in catalog order.
func (c *Catalog) Colleges() []model.College {
	out := make([]model.College, len(c.colleges))
	copy(out, c.colleges)
	return out
}

// College looks a college up by id.
func (c *Catalog) College(id string) (model.College, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.College{}, false
	}
	return c.colleges[i], true
}

// TemplateIDs returns the upstream order template of every college that
// has one.
func (c *Catalog) TemplateIDs() []string {
	ids := make([]string, 0, len(c.colleges))
	for _, college := range c.colleges {
		if college.OrderTemplateID != "" {
			ids = append(ids, college.OrderTemplateID)
		}
	}
	return ids
}
