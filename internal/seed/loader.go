package seed

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a YAML catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing YAML catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are unique, references resolve and every product
// satisfies the storage invariants.
func (c *Catalog) Validate() error {
	categories := make(map[int64]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID <= 0 || categories[cat.ID] {
			return fmt.Errorf("category %d: %w", cat.ID, ErrDuplicateID)
		}
		categories[cat.ID] = true
	}
	for _, cat := range c.Categories {
		if cat.ParentID != nil && !categories[*cat.ParentID] {
			return fmt.Errorf("category %d parent %d: %w", cat.ID, *cat.ParentID, ErrUnknownCategory)
		}
	}

	products := make(map[int64]bool, len(c.Products))
	for _, p := range c.Products {
		if p.ID <= 0 || products[p.ID] {
			return fmt.Errorf("product %d: %w", p.ID, ErrDuplicateID)
		}
		products[p.ID] = true

		if !categories[p.CategoryID] {
			return fmt.Errorf("product %d category %d: %w", p.ID, p.CategoryID, ErrUnknownCategory)
		}
		if err := p.record().Validate(); err != nil {
			return fmt.Errorf("product %d: %w", p.ID, err)
		}

		seen := make(map[string]bool, len(p.Sizes))
		for _, s := range p.Sizes {
			label := strings.TrimSpace(s.Label)
			if label == "" || s.Quantity < 0 || seen[label] {
				return fmt.Errorf("product %d size %q: %w", p.ID, s.Label, ErrInvalidVariant)
			}
			seen[label] = true
		}
		for _, col := range p.Colors {
			if strings.TrimSpace(col.Name) == "" {
				return fmt.Errorf("product %d: %w", p.ID, ErrInvalidVariant)
			}
		}
	}
	return nil
}
