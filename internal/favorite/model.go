package favorite

import "time"

// Favorite is a saved product as the favorites list shows it. Only active
// products are listed.
type Favorite struct {
	ProductID     int64     `json:"product_id"`
	Name          string    `json:"name"`
	Price         int64     `json:"price"`
	DiscountPrice *int64    `json:"discount_price,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	AddedAt       time.Time `json:"added_at"`
}

// EffectivePrice mirrors product.Product.EffectivePrice.
func (f *Favorite) EffectivePrice() int64 {
	if f.DiscountPrice != nil && *f.DiscountPrice < f.Price {
		return *f.DiscountPrice
	}
	return f.Price
}

// DiscountPercent is the whole percent the discount takes off, 0 without one.
func (f *Favorite) DiscountPercent() int {
	if f.DiscountPrice == nil || *f.DiscountPrice >= f.Price || f.Price <= 0 {
		return 0
	}
	return int((f.Price - *f.DiscountPrice) * 100 / f.Price)
}
