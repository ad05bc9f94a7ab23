package mock

import (
	"context"

	"github.com/fwojciec/storelens"
)

var _ storelens.InsightsService = (*InsightsService)(nil)

// InsightsService is a mock implementation of storelens.InsightsService.
type InsightsService struct {
	SaveInsightsFn         func(ctx context.Context, insights *storelens.BrandInsights) error
	FindInsightsByDomainFn func(ctx context.Context, domain string) (*storelens.BrandInsights, error)
	FindInsightsFn         func(ctx context.Context, filter storelens.InsightsFilter) ([]*storelens.BrandInsights, error)
	DeleteInsightsFn       func(ctx context.Context, domain string) error
}

func (s *InsightsService) SaveInsights(ctx context.Context, insights *storelens.BrandInsights) error {
	return s.SaveInsightsFn(ctx, insights)
}

func (s *InsightsService) FindInsightsByDomain(ctx context.Context, domain string) (*storelens.BrandInsights, error) {
	return s.FindInsightsByDomainFn(ctx, domain)
}

func (s *InsightsService) FindInsights(ctx context.Context, filter storelens.InsightsFilter) ([]*storelens.BrandInsights, error) {
	return s.FindInsightsFn(ctx, filter)
}

func (s *InsightsService) DeleteInsights(ctx context.Context, domain string) error {
	return s.DeleteInsightsFn(ctx, domain)
}

var _ storelens.InsightsExtractor = (*InsightsExtractor)(nil)

// InsightsExtractor is a mock implementation of storelens.InsightsExtractor.
type InsightsExtractor struct {
	ExtractInsightsFn func(ctx context.Context, baseURL string) (*storelens.BrandInsights, error)
}

func (e *InsightsExtractor) ExtractInsights(ctx context.Context, baseURL string) (*storelens.BrandInsights, error) {
	return e.ExtractInsightsFn(ctx, baseURL)
}
