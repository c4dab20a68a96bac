package models

import "strings"

// Category labels an expense for aggregation.
type Category string

const (
	CategoryFood       Category = "Food"
	CategoryTransport  Category = "Transport"
	CategoryTravelRoad Category = "Travel_Road"
	CategoryLodging    Category = "Lodging"
	CategoryActivity   Category = "Activity"
	CategoryShopping   Category = "Shopping"
	CategoryOther      Category = "Other"
)

// Categories is the closed set an expense may be recorded under.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryTravelRoad,
	CategoryLodging,
	CategoryActivity,
	CategoryShopping,
	CategoryOther,
}

// ParseCategory matches s case-insensitively against the closed set.
// Empty or unknown values map to CategoryOther.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return CategoryOther
}
