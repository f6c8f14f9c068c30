package seed

import "ziggler-bot/internal/product"

// Catalog is the YAML fixture layout loaded by cmd/seed.
type Catalog struct {
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
}

type Category struct {
	ID        int64  `yaml:"id"`
	ParentID  *int64 `yaml:"parent_id"`
	Name      string `yaml:"name"`
	NameKK    string `yaml:"name_kk"`
	NameEN    string `yaml:"name_en"`
	Emoji     string `yaml:"emoji"`
	SortOrder int    `yaml:"sort_order"`
}

type Product struct {
	ID            int64   `yaml:"id"`
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	Price         int64   `yaml:"price"`
	DiscountPrice *int64  `yaml:"discount_price"`
	CategoryID    int64   `yaml:"category_id"`
	Material      string  `yaml:"material"`
	FitType       string  `yaml:"fit_type"`
	Rating        float64 `yaml:"rating"`
	ReviewCount   int     `yaml:"review_count"`
	Sizes         []Size  `yaml:"sizes"`
	Colors        []Color `yaml:"colors"`
}

type Size struct {
	Label    string `yaml:"size"`
	Quantity int    `yaml:"quantity"`
}

type Color struct {
	Name  string `yaml:"name"`
	Hex   string `yaml:"hex"`
	Emoji string `yaml:"emoji"`
}

func (p Product) record() *product.Product {
	return &product.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		CategoryID:    p.CategoryID,
		Material:      p.Material,
		FitType:       p.FitType,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		IsActive:      true,
	}
}
