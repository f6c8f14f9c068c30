package product

import (
	"sort"
	"time"
)

type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	DiscountPrice *int64    `json:"discount_price,omitempty"`
	CategoryID    int64     `json:"category_id"`
	Material      string    `json:"material"`
	FitType       string    `json:"fit_type"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// EffectivePrice is the unit price a cart line freezes at add time: the
// discount price when it undercuts the base price, the base price otherwise.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// Validate checks the record invariants enforced at the storage boundary.
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return ErrInvalidProduct
	case p.Price <= 0:
		return ErrInvalidPrice
	case p.DiscountPrice != nil && (*p.DiscountPrice <= 0 || *p.DiscountPrice >= p.Price):
		return ErrInvalidPrice
	case p.Rating < 0 || p.Rating > 5:
		return ErrInvalidRating
	case p.ReviewCount < 0:
		return ErrInvalidProduct
	}
	return nil
}

type Size struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Label     string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type Color struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"color_name"`
	Hex       string `json:"color_hex"`
	Emoji     string `json:"emoji"`
}

type ColorOption struct {
	Label  string `json:"label"`
	Swatch string `json:"swatch"`
	Emoji  string `json:"emoji"`
}

type Variants struct {
	Sizes  []string      `json:"sizes"`
	Colors []ColorOption `json:"colors"`
}

type ListResult struct {
	Products []*Product `json:"products"`
	Total    int        `json:"total"`
	HasMore  bool       `json:"has_more"`
}

type GetProductOptions struct {
	ProductID  int64
	OnlyActive bool
}

// SizeScale is the display order for size labels.
var SizeScale = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}

func sizeRank(label string) int {
	for i, s := range SizeScale {
		if s == label {
			return i
		}
	}
	return len(SizeScale)
}

// SortSizes orders labels by SizeScale; labels outside the scale go last,
// alphabetically.
func SortSizes(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		ri, rj := sizeRank(labels[i]), sizeRank(labels[j])
		if ri != rj {
			return ri < rj
		}
		return labels[i] < labels[j]
	})
}
