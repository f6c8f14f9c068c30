package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestProduct_EffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected int64
	}{
		{"no discount", Product{Price: 89990}, 89990},
		{"discount below price", Product{Price: 89990, DiscountPrice: int64Ptr(79990)}, 79990},
		{"discount equal to price", Product{Price: 50000, DiscountPrice: int64Ptr(50000)}, 50000},
		{"discount above price", Product{Price: 50000, DiscountPrice: int64Ptr(60000)}, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.EffectivePrice())
		})
	}
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{Name: "Suit", Price: 10000, Rating: 4.5, ReviewCount: 3}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, noName.Validate(), ErrInvalidProduct)

	badDiscount := valid
	badDiscount.DiscountPrice = int64Ptr(10000)
	assert.ErrorIs(t, badDiscount.Validate(), ErrInvalidPrice)

	badRating := valid
	badRating.Rating = 5.1
	assert.ErrorIs(t, badRating.Validate(), ErrInvalidRating)

	badReviews := valid
	badReviews.ReviewCount = -1
	assert.ErrorIs(t, badReviews.Validate(), ErrInvalidProduct)
}

func TestSortSizes(t *testing.T) {
	labels := []string{"XL", "52", "S", "XXL", "48", "M", "XS"}
	SortSizes(labels)
	assert.Equal(t, []string{"XS", "S", "M", "XL", "XXL", "48", "52"}, labels)
}
