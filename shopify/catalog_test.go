package shopify_test

import (
	"testing"

	"github.com/fwojciec/storelens"
	"github.com/fwojciec/storelens/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://shop.example.com"

func TestCatalogParser_ParseCatalog(t *testing.T) {
	t.Parallel()

	t.Run("maps first variant and product URL", func(t *testing.T) {
		t.Parallel()

		body := `{"products":[{
			"id": 123456789,
			"title": "Test Product",
			"handle": "test-product",
			"body_html": "<p>Soft &amp; warm</p>",
			"vendor": "Acme",
			"product_type": "Shirts",
			"tags": ["summer", "cotton"],
			"variants": [{"price": "29.99", "compare_at_price": null}, {"price": "39.99"}],
			"images": [{"src": "https://cdn.example.com/tee.jpg"}]
		}]}`

		products, err := shopify.NewCatalogParser().ParseCatalog(body, baseURL)

		require.NoError(t, err)
		require.Len(t, products, 1)
		p := products[0]
		assert.Equal(t, "123456789", p.ExternalID)
		assert.Equal(t, "Test Product", p.Title)
		assert.Equal(t, "29.99", p.Price)
		assert.Empty(t, p.CompareAtPrice)
		assert.Equal(t, baseURL+"/products/test-product", p.ProductURL)
		assert.True(t, p.Availability)
		assert.Equal(t, "Soft & warm", p.Description)
		assert.Equal(t, "https://cdn.example.com/tee.jpg", p.ImageURL)
		assert.Equal(t, []string{"summer", "cotton"}, p.Tags)
		assert.False(t, p.IsHero)
	})

	t.Run("trims trailing slash from base", func(t *testing.T) {
		t.Parallel()

		body := `{"products":[{"title":"Tee","handle":"tee"}]}`

		products, err := shopify.NewCatalogParser().ParseCatalog(body, baseURL+"/")

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, baseURL+"/products/tee", products[0].ProductURL)
	})

	t.Run("accepts loose field shapes", func(t *testing.T) {
		t.Parallel()

		body := `{"products":[{
			"id": "gid-7",
			"title": "Cap",
			"handle": "cap",
			"tags": "hats, summer ,",
			"variants": [{"price": 15, "compare_at_price": "20.00", "available": false}],
			"images": ["https://cdn.example.com/cap.jpg"]
		}]}`

		products, err := shopify.NewCatalogParser().ParseCatalog(body, baseURL)

		require.NoError(t, err)
		require.Len(t, products, 1)
		p := products[0]
		assert.Equal(t, "gid-7", p.ExternalID)
		assert.Equal(t, "15", p.Price)
		assert.Equal(t, "20.00", p.CompareAtPrice)
		assert.False(t, p.Availability)
		assert.Equal(t, "https://cdn.example.com/cap.jpg", p.ImageURL)
		assert.Equal(t, []string{"hats", "summer"}, p.Tags)
	})

	t.Run("skips records without title or with bad shape", func(t *testing.T) {
		t.Parallel()

		body := `{"products":[
			{"handle":"untitled"},
			{"title":"   "},
			{"title":"Broken","variants":"nope"},
			{"title":"Kept","handle":"kept"}
		]}`

		products, err := shopify.NewCatalogParser().ParseCatalog(body, baseURL)

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Kept", products[0].Title)
		assert.NotNil(t, products[0].Tags)
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()

		products, err := shopify.NewCatalogParser().ParseCatalog(`{"products":[]}`, baseURL)

		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("repairs truncated payload", func(t *testing.T) {
		t.Parallel()

		body := `{"products":[{"title":"A","handle":"a"},{"title":"B","handle":"b"}`

		products, err := shopify.NewCatalogParser().ParseCatalog(body, baseURL)

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "B", products[1].Title)
	})

	t.Run("rejects non-JSON payload", func(t *testing.T) {
		t.Parallel()

		_, err := shopify.NewCatalogParser().ParseCatalog(`<html>not json</html>`, baseURL)

		require.Error(t, err)
		assert.Equal(t, storelens.EINVALID, storelens.ErrorCode(err))
	})
}
