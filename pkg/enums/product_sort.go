package enums

import "fmt"

// ProductSort names the orderings supported by the product browse endpoint.
type ProductSort string

const (
	ProductSortFeatured   ProductSort = "featured"
	ProductSortPriceLow   ProductSort = "price-low"
	ProductSortPriceHigh  ProductSort = "price-high"
	ProductSortRating     ProductSort = "rating"
	ProductSortPopularity ProductSort = "popularity"
)

var validProductSorts = []ProductSort{
	ProductSortFeatured,
	ProductSortPriceLow,
	ProductSortPriceHigh,
	ProductSortRating,
	ProductSortPopularity,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductSort.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort converts raw input into a ProductSort, defaulting to featured.
func ParseProductSort(value string) (ProductSort, error) {
	if value == "" {
		return ProductSortFeatured, nil
	}
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product sort %q", value)
}
