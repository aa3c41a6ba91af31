// internal/tests/storefront_test.go
package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StorefrontTestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func (suite *StorefrontTestSuite) SetupTest() {
	suite.router = newTestRouter(suite.T(), testConfig())

	w := doJSON(suite.router, "POST", "/v1/auth/register", "", map[string]interface{}{
		"firstName": "Amina",
		"lastName":  "Hodžić",
		"email":     "amina@example.com",
		"password":  "tajna123",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.token = decodeBody(suite.T(), w)["token"].(string)
}

func (suite *StorefrontTestSuite) productIDs(body map[string]interface{}) []int {
	products := body["products"].([]interface{})
	ids := make([]int, 0, len(products))
	for _, p := range products {
		ids = append(ids, int(p.(map[string]interface{})["id"].(float64)))
	}
	return ids
}

func (suite *StorefrontTestSuite) TestProductListingWithSortAndPagination() {
	w := doJSON(suite.router, "GET", "/v1/products?sort=price-asc&limit=5&page=1", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	assert.NotEmpty(suite.T(), w.Header().Get("X-Total-Count"))
	assert.Equal(suite.T(), "1", w.Header().Get("X-Page"))
	assert.Equal(suite.T(), "5", w.Header().Get("X-Per-Page"))

	body := decodeBody(suite.T(), w)
	products := body["products"].([]interface{})
	require.Len(suite.T(), products, 5)

	prev := 0.0
	for _, p := range products {
		price := p.(map[string]interface{})["price"].(float64)
		assert.GreaterOrEqual(suite.T(), price, prev)
		prev = price
	}
}

func (suite *StorefrontTestSuite) TestProductListingRejectsUnknownSortKey() {
	w := doJSON(suite.router, "GET", "/v1/products?sort=cijena-rastuce", "", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *StorefrontTestSuite) TestProductListingMultiValueFilter() {
	w := doJSON(suite.router, "GET",
		"/v1/products?category=sumski-med&category=livadski-med&limit=100", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	for _, p := range body["products"].([]interface{}) {
		slug := p.(map[string]interface{})["category_slug"].(string)
		assert.Contains(suite.T(), []string{"sumski-med", "livadski-med"}, slug)
	}
}

func (suite *StorefrontTestSuite) TestProductDetailCarriesWeightPrices() {
	w := doJSON(suite.router, "GET", "/v1/products/bagremov-med", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	product := body["product"].(map[string]interface{})
	weightPrices := product["weight_prices"].(map[string]interface{})
	assert.Equal(suite.T(), 18.0, weightPrices["450g"])
	// 18 x 850/450 = 34 KM.
	assert.Equal(suite.T(), 34.0, weightPrices["850g"])

	w = doJSON(suite.router, "GET", "/v1/products/nema-takvog", "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *StorefrontTestSuite) TestAutocompleteSuggestions() {
	w := doJSON(suite.router, "GET", "/v1/products/autocomplete?q=bagremov", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	suggestions := body["suggestions"].([]interface{})
	require.NotEmpty(suite.T(), suggestions)
	assert.Equal(suite.T(), "bagremov-med", suggestions[0].(map[string]interface{})["slug"])

	// Single-rune queries return nothing.
	w = doJSON(suite.router, "GET", "/v1/products/autocomplete?q=b", "", nil)
	body = decodeBody(suite.T(), w)
	assert.Empty(suite.T(), body["suggestions"])
}

func (suite *StorefrontTestSuite) TestCategoriesEndpoint() {
	w := doJSON(suite.router, "GET", "/v1/categories", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	assert.NotEmpty(suite.T(), body["categories"])
}

func (suite *StorefrontTestSuite) TestSellerProducts() {
	w := doJSON(suite.router, "GET", "/v1/sellers/1/products", "", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	body := decodeBody(suite.T(), w)
	assert.NotEmpty(suite.T(), body["products"])

	w = doJSON(suite.router, "GET", "/v1/sellers/999/products", "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *StorefrontTestSuite) TestCartRequiresAuth() {
	w := doJSON(suite.router, "GET", "/v1/cart", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *StorefrontTestSuite) cart() map[string]interface{} {
	w := doJSON(suite.router, "GET", "/v1/cart", suite.token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	return decodeBody(suite.T(), w)["cart"].(map[string]interface{})
}

func (suite *StorefrontTestSuite) addToCart(productID, quantity int, weight string) *string {
	w := doJSON(suite.router, "POST", "/v1/cart/items", suite.token, map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
		"weight":     weight,
	})
	if w.Code != http.StatusOK {
		s := w.Body.String()
		return &s
	}
	return nil
}

func (suite *StorefrontTestSuite) TestCartMergesSameProductAndWeight() {
	suite.Require().Nil(suite.addToCart(2, 1, "450g"))
	suite.Require().Nil(suite.addToCart(2, 1, "450g"))

	cart := suite.cart()
	items := cart["items"].([]interface{})
	require.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), 2.0, items[0].(map[string]interface{})["quantity"])

	// A different weight of the same product is its own line.
	suite.Require().Nil(suite.addToCart(2, 1, "850g"))
	cart = suite.cart()
	assert.Len(suite.T(), cart["items"].([]interface{}), 2)
	assert.Equal(suite.T(), 3.0, cart["count"])
}

func (suite *StorefrontTestSuite) TestCartPricesFeaturedProductWithDiscount() {
	// Product 1 is a featured offer: 15% off 18 KM = 15.3 -> 15 KM.
	suite.Require().Nil(suite.addToCart(1, 2, "450g"))

	cart := suite.cart()
	items := cart["items"].([]interface{})
	require.Len(suite.T(), items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(suite.T(), 15.0, line["unit_price"])
	assert.Equal(suite.T(), 30.0, line["line_total"])
	assert.Equal(suite.T(), 30.0, cart["total"])
}

func (suite *StorefrontTestSuite) TestCartRejectsUnofferedWeight() {
	errBody := suite.addToCart(3, 1, "1kg")
	require.NotNil(suite.T(), errBody)
	assert.Contains(suite.T(), *errBody, `"success":false`)
}

func (suite *StorefrontTestSuite) TestCartRejectsUnknownProduct() {
	w := doJSON(suite.router, "POST", "/v1/cart/items", suite.token, map[string]interface{}{
		"product_id": 999,
		"quantity":   1,
		"weight":     "450g",
	})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *StorefrontTestSuite) TestCartUpdateRemoveClear() {
	suite.Require().Nil(suite.addToCart(2, 1, "450g"))

	w := doJSON(suite.router, "PUT", "/v1/cart/items", suite.token, map[string]interface{}{
		"product_id": 2,
		"quantity":   4,
		"weight":     "450g",
	})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), 4.0, suite.cart()["count"])

	w = doJSON(suite.router, "DELETE", "/v1/cart/items?product_id=2&weight=450g", suite.token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), 0.0, suite.cart()["count"])

	suite.Require().Nil(suite.addToCart(2, 1, "450g"))
	w = doJSON(suite.router, "DELETE", "/v1/cart", suite.token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), suite.cart()["items"])
}

func (suite *StorefrontTestSuite) TestFavoritesToggleListRemove() {
	w := doJSON(suite.router, "POST", "/v1/favorites/1/toggle", suite.token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	assert.Equal(suite.T(), true, body["favorited"])
	assert.Equal(suite.T(), 1.0, body["count"])

	w = doJSON(suite.router, "GET", "/v1/favorites", suite.token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	body = decodeBody(suite.T(), w)
	products := body["products"].([]interface{})
	require.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "bagremov-med", products[0].(map[string]interface{})["slug"])

	// Toggling again empties the set.
	w = doJSON(suite.router, "POST", "/v1/favorites/1/toggle", suite.token, nil)
	body = decodeBody(suite.T(), w)
	assert.Equal(suite.T(), false, body["favorited"])
	assert.Equal(suite.T(), 0.0, body["count"])
}

func (suite *StorefrontTestSuite) TestFavoritesRejectUnknownProduct() {
	w := doJSON(suite.router, "POST", "/v1/favorites/999/toggle", suite.token, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *StorefrontTestSuite) TestFavoritesClear() {
	for _, id := range []int{1, 2, 3} {
		w := doJSON(suite.router, "POST", fmt.Sprintf("/v1/favorites/%d/toggle", id), suite.token, nil)
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	w := doJSON(suite.router, "DELETE", "/v1/favorites", suite.token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), 0.0, decodeBody(suite.T(), w)["count"])
}

func (suite *StorefrontTestSuite) TestHealthEndpoint() {
	w := doJSON(suite.router, "GET", "/health", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestStorefrontTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontTestSuite))
}
