// internal/services/catalog_service_test.go
package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medolina/medolina-backend/internal/catalog"
	"github.com/medolina/medolina-backend/internal/models"
)

func newRepo(t *testing.T, products []models.Product) *catalog.Repository {
	t.Helper()
	data, err := json.Marshal(products)
	require.NoError(t, err)
	repo, err := catalog.NewRepository(data)
	require.NoError(t, err)
	return repo
}

// storefrontProducts is ten products priced 10 to 25 KM, ids 1..10.
func storefrontProducts() []models.Product {
	prices := []float64{10, 11, 12, 13, 14, 15, 17, 19, 22, 25}
	out := make([]models.Product, 0, len(prices))
	for i, price := range prices {
		out = append(out, models.Product{
			ID:               i + 1,
			Slug:             fmt.Sprintf("med-%d", i+1),
			Name:             fmt.Sprintf("Med %d", i+1),
			Price:            price,
			Weight:           "450g",
			AvailableWeights: []string{"450g", "850g"},
			Category:         "Prirodni med",
			CategorySlug:     "prirodni-med",
			Rating:           4.5,
			InStock:          true,
			Seller:           models.Seller{ID: 1, Name: "OPG Medić", Location: "Gradačac"},
		})
	}
	return out
}

func viewIDs(views []ProductView) []int {
	ids := make([]int, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestListFilterSortPaginatePipeline(t *testing.T) {
	svc := NewCatalogService(newRepo(t, storefrontProducts()))

	maxPrice := 15.0
	page := svc.List(CatalogQuery{
		Filter: catalog.FilterState{MaxPrice: &maxPrice},
		Sort:   models.SortPriceDesc,
		Page:   1,
		Limit:  3,
	})

	// Six products cost at most 15 KM; the first page carries the three most
	// expensive of them in descending order.
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, []int{6, 5, 4}, viewIDs(page.Products))
}

func TestListResetsOutOfRangePageToFirst(t *testing.T) {
	svc := NewCatalogService(newRepo(t, storefrontProducts()))

	page := svc.List(CatalogQuery{Sort: models.SortPriceAsc, Page: 99, Limit: 4})

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, []int{1, 2, 3, 4}, viewIDs(page.Products))
}

func TestListAppliesDefaultLimit(t *testing.T) {
	svc := NewCatalogService(newRepo(t, storefrontProducts()))

	page := svc.List(CatalogQuery{})

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 12, page.Limit)
	assert.Len(t, page.Products, 10)
}

func TestListSearchNarrowsBeforeSorting(t *testing.T) {
	products := storefrontProducts()
	products[2].Name = "Kestenov med"
	products[7].Description = "tamni kestenov okus"
	svc := NewCatalogService(newRepo(t, products))

	page := svc.List(CatalogQuery{Search: "kestenov", Sort: models.SortPriceDesc, Page: 1, Limit: 12})

	assert.Equal(t, []int{8, 3}, viewIDs(page.Products))
}

func TestListMarksFeaturedProductsWithDiscountPrice(t *testing.T) {
	products := storefrontProducts()
	products[0].OnFeaturedOffer = true // 15% off 10 KM = 8.5 -> 9 KM
	svc := NewCatalogService(newRepo(t, products))

	page := svc.List(CatalogQuery{Page: 1, Limit: 12})

	require.Equal(t, 1, page.Products[0].ID)
	require.NotNil(t, page.Products[0].DiscountPrice)
	assert.Equal(t, 9.0, *page.Products[0].DiscountPrice)
	assert.Nil(t, page.Products[1].DiscountPrice)
}

func TestGetBySlugBuildsWeightPriceTable(t *testing.T) {
	svc := NewCatalogService(newRepo(t, storefrontProducts()))

	detail, err := svc.GetBySlug("med-1")
	require.NoError(t, err)

	assert.Equal(t, 10.0, detail.WeightPrices["450g"])
	// 10 x 850/450 = 18.88 -> 19 KM.
	assert.Equal(t, 19.0, detail.WeightPrices["850g"])

	_, err = svc.GetBySlug("nema-takvog")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAutocompleteIsCapped(t *testing.T) {
	svc := NewCatalogService(newRepo(t, storefrontProducts()))

	matches := svc.Autocomplete("med")
	assert.Len(t, matches, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, viewIDs(matches))

	assert.Empty(t, svc.Autocomplete("x"))
}

func TestResolveProductsDropsUnknownIDs(t *testing.T) {
	svc := NewCatalogService(newRepo(t, storefrontProducts()))

	views := svc.ResolveProducts([]int{3, 999, 7})
	assert.Equal(t, []int{3, 7}, viewIDs(views))

	_, ok := svc.ResolveProduct(999)
	assert.False(t, ok)
}

func TestSellerProductsKeepSourceOrder(t *testing.T) {
	products := storefrontProducts()
	products[4].Seller = models.Seller{ID: 2, Name: "Pčelarstvo Konjic", Location: "Konjic"}
	svc := NewCatalogService(newRepo(t, products))

	views := svc.SellerProducts(2)
	assert.Equal(t, []int{5}, viewIDs(views))

	assert.Empty(t, svc.SellerProducts(77))
}
