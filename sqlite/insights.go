package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/storelens"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ storelens.InsightsService = (*InsightsService)(nil)

// Contact point kinds stored in contact_points.kind.
const (
	contactEmail = "email"
	contactPhone = "phone"
)

// InsightsService implements storelens.InsightsService using SQLite.
type InsightsService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(db *DB) *InsightsService {
	return &InsightsService{db: db, Now: time.Now}
}

// SaveInsights upserts insights by domain. The row id and creation time of
// an existing aggregate are kept; every nested collection is replaced.
func (s *InsightsService) SaveInsights(ctx context.Context, insights *storelens.BrandInsights) error {
	insights.Domain = strings.ToLower(insights.Domain)
	if err := insights.Validate(); err != nil {
		return err
	}

	fingerprint, err := Fingerprint(insights)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	id, createdAt := uuid.New().String(), now

	var existingID, existingCreated string
	err = tx.QueryRowContext(ctx, "SELECT id, created_at FROM insights WHERE domain = ?", insights.Domain).
		Scan(&existingID, &existingCreated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO insights (id, domain, brand_name, brand_description, brand_story, total_products,
				extraction_success, extraction_timestamp, fingerprint, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, insights.Domain, insights.BrandName, insights.BrandDescription, insights.BrandStory,
			insights.TotalProducts, insights.ExtractionSuccess, formatTime(insights.ExtractionTimestamp),
			fingerprint, formatTime(now), formatTime(now))
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		id = existingID
		if createdAt, err = parseTime(existingCreated, "created_at"); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE insights
			SET brand_name = ?, brand_description = ?, brand_story = ?, total_products = ?,
				extraction_success = ?, extraction_timestamp = ?, fingerprint = ?, updated_at = ?
			WHERE id = ?
		`, insights.BrandName, insights.BrandDescription, insights.BrandStory, insights.TotalProducts,
			insights.ExtractionSuccess, formatTime(insights.ExtractionTimestamp), fingerprint,
			formatTime(now), id)
		if err != nil {
			return err
		}
		for _, table := range childTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE insights_id = ?", id); err != nil {
				return err
			}
		}
	}

	if err := insertChildren(ctx, tx, id, insights); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	insights.ID = id
	insights.Fingerprint = fingerprint
	insights.CreatedAt = createdAt
	insights.UpdatedAt = now
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, id string, b *storelens.BrandInsights) error {
	products := make([]storelens.Product, 0, len(b.ProductCatalog)+len(b.HeroProducts))
	products = append(products, b.ProductCatalog...)
	products = append(products, b.HeroProducts...)
	for i, p := range products {
		tags, err := json.Marshal(nonNil(p.Tags))
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (insights_id, position, is_hero, external_id, title, handle, description,
				price, compare_at_price, availability, image_url, product_url, vendor, product_type, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i, p.IsHero, p.ExternalID, p.Title, p.Handle, p.Description, p.Price, p.CompareAtPrice,
			p.Availability, p.ImageURL, p.ProductURL, p.Vendor, p.ProductType, string(tags)); err != nil {
			return err
		}
	}

	policies := []struct {
		kind   storelens.PolicyKind
		policy *storelens.Policy
	}{
		{storelens.PolicyPrivacy, b.PrivacyPolicy},
		{storelens.PolicyReturnRefund, b.ReturnRefundPolicy},
		{storelens.PolicyTerms, b.TermsOfService},
	}
	for _, p := range policies {
		if p.policy == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO policies (insights_id, kind, title, content, url) VALUES (?, ?, ?, ?, ?)
		`, id, string(p.kind), p.policy.Title, p.policy.Content, p.policy.URL); err != nil {
			return err
		}
	}

	for i, f := range b.FAQs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO faqs (insights_id, position, question, answer, category) VALUES (?, ?, ?, ?, ?)
		`, id, i, f.Question, f.Answer, f.Category); err != nil {
			return err
		}
	}

	for i, h := range b.SocialHandles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO social_handles (insights_id, position, platform, url, username) VALUES (?, ?, ?, ?, ?)
		`, id, i, string(h.Platform), h.URL, h.Username); err != nil {
			return err
		}
	}

	for i, l := range b.ImportantLinks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO important_links (insights_id, position, title, url, category) VALUES (?, ?, ?, ?, ?)
		`, id, i, l.Title, l.URL, string(l.Category)); err != nil {
			return err
		}
	}

	position := 0
	for _, points := range []struct {
		kind   string
		values []string
	}{
		{contactEmail, b.ContactInfo.Emails},
		{contactPhone, b.ContactInfo.PhoneNumbers},
	} {
		for _, v := range points.values {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO contact_points (insights_id, position, kind, value) VALUES (?, ?, ?, ?)
			`, id, position, points.kind, v); err != nil {
				return err
			}
			position++
		}
	}

	for i, msg := range b.ErrorsEncountered {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO extraction_errors (insights_id, position, message) VALUES (?, ?, ?)
		`, id, i, msg); err != nil {
			return err
		}
	}
	return nil
}

const insightsColumns = `id, domain, brand_name, brand_description, brand_story, total_products,
	extraction_success, extraction_timestamp, fingerprint, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInsights(row rowScanner) (*storelens.BrandInsights, error) {
	var b storelens.BrandInsights
	var extractedAt, createdAt, updatedAt string
	if err := row.Scan(&b.ID, &b.Domain, &b.BrandName, &b.BrandDescription, &b.BrandStory,
		&b.TotalProducts, &b.ExtractionSuccess, &extractedAt, &b.Fingerprint, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if b.ExtractionTimestamp, err = parseTime(extractedAt, "extraction_timestamp"); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &b, nil
}

// FindInsightsByDomain retrieves the aggregate stored for domain with all
// nested collections.
func (s *InsightsService) FindInsightsByDomain(ctx context.Context, domain string) (*storelens.BrandInsights, error) {
	b, err := scanInsights(s.db.QueryRowContext(ctx,
		"SELECT "+insightsColumns+" FROM insights WHERE domain = ?", strings.ToLower(domain)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storelens.Errorf(storelens.ENOTFOUND, "insights for %s not found", domain)
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadChildren(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *InsightsService) loadChildren(ctx context.Context, b *storelens.BrandInsights) error {
	b.ProductCatalog = []storelens.Product{}
	b.HeroProducts = []storelens.Product{}
	b.FAQs = []storelens.FAQ{}
	b.SocialHandles = []storelens.SocialHandle{}
	b.ImportantLinks = []storelens.ImportantLink{}
	b.ErrorsEncountered = []string{}
	b.ContactInfo = storelens.ContactInfo{Emails: []string{}, PhoneNumbers: []string{}, Addresses: []string{}}

	err := s.each(ctx, `
		SELECT is_hero, external_id, title, handle, description, price, compare_at_price, availability,
			image_url, product_url, vendor, product_type, tags
		FROM products WHERE insights_id = ? ORDER BY position
	`, b.ID, func(rows *sql.Rows) error {
		var p storelens.Product
		var tags string
		if err := rows.Scan(&p.IsHero, &p.ExternalID, &p.Title, &p.Handle, &p.Description, &p.Price,
			&p.CompareAtPrice, &p.Availability, &p.ImageURL, &p.ProductURL, &p.Vendor, &p.ProductType, &tags); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return fmt.Errorf("failed to decode tags: %w", err)
		}
		p.Tags = nonNil(p.Tags)
		if p.IsHero {
			b.HeroProducts = append(b.HeroProducts, p)
		} else {
			b.ProductCatalog = append(b.ProductCatalog, p)
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = s.each(ctx, "SELECT kind, title, content, url FROM policies WHERE insights_id = ?", b.ID,
		func(rows *sql.Rows) error {
			var kind string
			var p storelens.Policy
			if err := rows.Scan(&kind, &p.Title, &p.Content, &p.URL); err != nil {
				return err
			}
			switch storelens.PolicyKind(kind) {
			case storelens.PolicyPrivacy:
				b.PrivacyPolicy = &p
			case storelens.PolicyReturnRefund:
				b.ReturnRefundPolicy = &p
			case storelens.PolicyTerms:
				b.TermsOfService = &p
			}
			return nil
		})
	if err != nil {
		return err
	}

	err = s.each(ctx, "SELECT question, answer, category FROM faqs WHERE insights_id = ? ORDER BY position", b.ID,
		func(rows *sql.Rows) error {
			var f storelens.FAQ
			if err := rows.Scan(&f.Question, &f.Answer, &f.Category); err != nil {
				return err
			}
			b.FAQs = append(b.FAQs, f)
			return nil
		})
	if err != nil {
		return err
	}

	err = s.each(ctx, "SELECT platform, url, username FROM social_handles WHERE insights_id = ? ORDER BY position", b.ID,
		func(rows *sql.Rows) error {
			var h storelens.SocialHandle
			var platform string
			if err := rows.Scan(&platform, &h.URL, &h.Username); err != nil {
				return err
			}
			h.Platform = storelens.Platform(platform)
			b.SocialHandles = append(b.SocialHandles, h)
			return nil
		})
	if err != nil {
		return err
	}

	err = s.each(ctx, "SELECT title, url, category FROM important_links WHERE insights_id = ? ORDER BY position", b.ID,
		func(rows *sql.Rows) error {
			var l storelens.ImportantLink
			var category string
			if err := rows.Scan(&l.Title, &l.URL, &category); err != nil {
				return err
			}
			l.Category = storelens.LinkCategory(category)
			b.ImportantLinks = append(b.ImportantLinks, l)
			return nil
		})
	if err != nil {
		return err
	}

	err = s.each(ctx, "SELECT kind, value FROM contact_points WHERE insights_id = ? ORDER BY position", b.ID,
		func(rows *sql.Rows) error {
			var kind, value string
			if err := rows.Scan(&kind, &value); err != nil {
				return err
			}
			switch kind {
			case contactEmail:
				b.ContactInfo.Emails = append(b.ContactInfo.Emails, value)
			case contactPhone:
				b.ContactInfo.PhoneNumbers = append(b.ContactInfo.PhoneNumbers, value)
			}
			return nil
		})
	if err != nil {
		return err
	}

	return s.each(ctx, "SELECT message FROM extraction_errors WHERE insights_id = ? ORDER BY position", b.ID,
		func(rows *sql.Rows) error {
			var msg string
			if err := rows.Scan(&msg); err != nil {
				return err
			}
			b.ErrorsEncountered = append(b.ErrorsEncountered, msg)
			return nil
		})
}

// each runs query and calls fn for every row.
func (s *InsightsService) each(ctx context.Context, query string, id string, fn func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// FindInsights retrieves aggregates matching the filter, most recently
// updated first. Nested collections are not loaded.
func (s *InsightsService) FindInsights(ctx context.Context, filter storelens.InsightsFilter) ([]*storelens.BrandInsights, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + insightsColumns + " FROM insights WHERE 1=1")

	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, strings.ToLower(*filter.Domain))
	}
	if filter.ExtractionSuccess != nil {
		query.WriteString(" AND extraction_success = ?")
		args = append(args, *filter.ExtractionSuccess)
	}

	query.WriteString(" ORDER BY updated_at DESC, domain")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []*storelens.BrandInsights
	for rows.Next() {
		b, err := scanInsights(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, b)
	}
	return all, rows.Err()
}

// DeleteInsights removes the aggregate stored for domain. Nested
// collections go with it through ON DELETE CASCADE.
func (s *InsightsService) DeleteInsights(ctx context.Context, domain string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM insights WHERE domain = ?", strings.ToLower(domain))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storelens.Errorf(storelens.ENOTFOUND, "insights for %s not found", domain)
	}
	return nil
}

func (s *InsightsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
