// Package shopify decodes the public Shopify storefront catalog endpoint.
package shopify

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fwojciec/storelens"
	"github.com/fwojciec/storelens/goquery"
	"github.com/kaptinlin/jsonrepair"
)

// Ensure CatalogParser implements storelens.CatalogParser at compile time.
var _ storelens.CatalogParser = (*CatalogParser)(nil)

// CatalogParser maps a /products.json payload to products.
type CatalogParser struct{}

// NewCatalogParser creates a new CatalogParser.
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// catalog is the top-level payload. Records are decoded one at a time so a
// single malformed record does not discard the rest.
type catalog struct {
	Products []json.RawMessage `json:"products"`
}

type product struct {
	ID          flexString        `json:"id"`
	Title       flexString        `json:"title"`
	Handle      flexString        `json:"handle"`
	BodyHTML    flexString        `json:"body_html"`
	Vendor      flexString        `json:"vendor"`
	ProductType flexString        `json:"product_type"`
	Tags        json.RawMessage   `json:"tags"`
	Variants    []variant         `json:"variants"`
	Images      []json.RawMessage `json:"images"`
}

type variant struct {
	Price          flexString `json:"price"`
	CompareAtPrice flexString `json:"compare_at_price"`
	Available      *bool      `json:"available"`
}

type image struct {
	Src string `json:"src"`
}

// ParseCatalog decodes body and returns every product record that has a
// title. A payload that is not valid JSON is repaired once before giving up.
func (p *CatalogParser) ParseCatalog(body string, baseURL string) ([]storelens.Product, error) {
	// Non-Shopify sites often answer with an HTML page; only objects are
	// worth repairing.
	if !strings.HasPrefix(strings.TrimSpace(body), "{") {
		return nil, storelens.Errorf(storelens.EINVALID, "catalog payload is not a JSON object")
	}

	var c catalog
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(body)
		if repairErr != nil {
			return nil, storelens.Errorf(storelens.EINVALID, "invalid catalog payload: %v", err)
		}
		if err := json.Unmarshal([]byte(repaired), &c); err != nil {
			return nil, storelens.Errorf(storelens.EINVALID, "invalid catalog payload: %v", err)
		}
	}

	products := make([]storelens.Product, 0, len(c.Products))
	for _, raw := range c.Products {
		var rec product
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		title := strings.TrimSpace(string(rec.Title))
		if title == "" {
			continue
		}
		products = append(products, rec.toProduct(title, baseURL))
	}
	return products, nil
}

func (r *product) toProduct(title, baseURL string) storelens.Product {
	p := storelens.Product{
		ExternalID:   string(r.ID),
		Title:        title,
		Handle:       string(r.Handle),
		Description:  goquery.CleanText(string(r.BodyHTML)),
		Availability: true,
		ProductURL:   storelens.JoinPath(baseURL, "/products/"+string(r.Handle)),
		Vendor:       string(r.Vendor),
		ProductType:  string(r.ProductType),
		Tags:         parseTags(r.Tags),
	}

	if len(r.Variants) > 0 {
		v := r.Variants[0]
		p.Price = string(v.Price)
		p.CompareAtPrice = string(v.CompareAtPrice)
		if v.Available != nil {
			p.Availability = *v.Available
		}
	}

	if len(r.Images) > 0 {
		p.ImageURL = imageURL(r.Images[0])
	}
	return p
}

// imageURL accepts an image given either as a URL string or as an object
// with a src field.
func imageURL(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var img image
	if err := json.Unmarshal(raw, &img); err == nil {
		return img.Src
	}
	return ""
}

// parseTags accepts tags given either as an array or as a comma-separated
// string. The result is never nil.
func parseTags(raw json.RawMessage) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, t := range list {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		for _, t := range strings.Split(joined, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// flexString decodes a JSON string, number or boolean into its text form.
// null decodes to the empty string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*f = flexString(strconv.FormatBool(b))
	return nil
}
