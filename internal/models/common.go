// internal/models/common.go
package models

// Enums shared across the catalog and user models.

type Badge string

const (
	BadgeNone       Badge = ""
	BadgeBestSeller Badge = "best-seller"
	BadgeNew        Badge = "new"
)

type Season string

const (
	SeasonSpring Season = "proljece"
	SeasonSummer Season = "ljeto"
	SeasonAutumn Season = "jesen"
	SeasonWinter Season = "zima"
)

// SortKey selects a comparator for catalog ordering.
type SortKey string

const (
	SortDefault     SortKey = "default"
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortRatingDesc  SortKey = "rating-desc"
	SortReviewsDesc SortKey = "reviews-desc"
	SortNameAsc     SortKey = "name-asc"
	SortSellerAsc   SortKey = "seller-asc"
	SortLocationAsc SortKey = "location-asc"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortRatingDesc,
		SortReviewsDesc, SortNameAsc, SortSellerAsc, SortLocationAsc:
		return true
	}
	return false
}
