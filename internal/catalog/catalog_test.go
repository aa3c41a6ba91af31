// internal/catalog/catalog_test.go
package catalog

import (
	"github.com/medolina/medolina-backend/internal/models"
)

// fixtureProducts is a small hand-built catalog used across the package
// tests. Order matters: several tests assert on source order.
func fixtureProducts() []models.Product {
	return []models.Product{
		{
			ID: 1, Slug: "bagremov-med", Name: "Bagremov med",
			Description: "Svijetli med bagrema", Price: 18, Weight: "450g",
			AvailableWeights: []string{"450g", "850g"},
			Category:         "Bagremov med", CategorySlug: "bagremov-med",
			Season: models.SeasonSpring, Rating: 4.9, ReviewCount: 214,
			StockCount: 34, InStock: true, Badge: models.BadgeBestSeller,
			OnFeaturedOffer: true,
			Seller:          models.Seller{ID: 1, Name: "Pčelarstvo Hadžić", Location: "Gradačac"},
		},
		{
			ID: 2, Slug: "livadski-med", Name: "Livadski med",
			Description: "Polifloralni med", Price: 14, Weight: "450g",
			AvailableWeights: []string{"450g", "850g", "1kg"},
			Category:         "Livadski med", CategorySlug: "livadski-med",
			Season: models.SeasonSummer, Rating: 4.7, ReviewCount: 158,
			StockCount: 52, InStock: true,
			Seller: models.Seller{ID: 2, Name: "OPG Subašić", Location: "Konjic"},
		},
		{
			ID: 3, Slug: "sumski-med", Name: "Šumski med",
			Description: "Tamni med medljike", Price: 20, Weight: "450g",
			AvailableWeights: []string{"450g", "850g"},
			Category:         "Šumski med", CategorySlug: "sumski-med",
			Season: models.SeasonAutumn, Rating: 4.8, ReviewCount: 96,
			StockCount: 18, InStock: true,
			Seller: models.Seller{ID: 3, Name: "Medara Vuković", Location: "Banja Luka"},
		},
		{
			ID: 4, Slug: "med-sa-orasima", Name: "Med sa orasima",
			Description: "Med sa domaćim orasima", Price: 19, Weight: "450g",
			AvailableWeights: []string{"450g"},
			Category:         "Med sa dodacima", CategorySlug: "med-sa-dodacima",
			Additives: []string{"orah"}, Season: models.SeasonAutumn,
			Rating: 4.9, ReviewCount: 189, StockCount: 41, InStock: true,
			Badge: models.BadgeBestSeller, OnFeaturedOffer: true,
			Seller: models.Seller{ID: 2, Name: "OPG Subašić", Location: "Konjic"},
		},
		{
			ID: 5, Slug: "med-sa-cimetom", Name: "Med sa cimetom",
			Description: "Kremasti med sa cimetom", Price: 17, Weight: "450g",
			AvailableWeights: []string{"450g"},
			Category:         "Med sa dodacima", CategorySlug: "med-sa-dodacima",
			Additives: []string{"cimet"}, Season: models.SeasonWinter,
			Rating: 4.5, ReviewCount: 63, StockCount: 37, InStock: true,
			Seller: models.Seller{ID: 5, Name: "Api centar Tica", Location: "Mostar"},
		},
		{
			ID: 6, Slug: "vrijesak-med", Name: "Med od vrijeska",
			Description: "Hercegovački med vrijeska", Price: 25, Weight: "450g",
			AvailableWeights: []string{"450g"},
			Category:         "Šumski med", CategorySlug: "sumski-med",
			Season: models.SeasonAutumn, Rating: 5.0, ReviewCount: 38,
			StockCount: 9, InStock: true, Badge: models.BadgeNew,
			Seller: models.Seller{ID: 6, Name: "Pčelarstvo Zelenika", Location: "Čapljina"},
		},
	}
}

func productIDs(products []models.Product) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
