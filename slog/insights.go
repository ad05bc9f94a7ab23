package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storelens"
)

var _ storelens.InsightsExtractor = (*LoggingInsightsExtractor)(nil)

// LoggingInsightsExtractor wraps an InsightsExtractor, logging a summary
// of every extraction.
type LoggingInsightsExtractor struct {
	next   storelens.InsightsExtractor
	logger *slog.Logger
}

// NewLoggingInsightsExtractor creates a new LoggingInsightsExtractor.
func NewLoggingInsightsExtractor(next storelens.InsightsExtractor, logger *slog.Logger) *LoggingInsightsExtractor {
	return &LoggingInsightsExtractor{next: next, logger: logger}
}

// ExtractInsights delegates to the wrapped extractor and logs the outcome.
func (e *LoggingInsightsExtractor) ExtractInsights(ctx context.Context, baseURL string) (insights *storelens.BrandInsights, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Error("extract insights", "url", baseURL, "duration", time.Since(begin), "err", err)
			return
		}
		e.logger.Info("extract insights",
			"url", baseURL,
			"domain", insights.Domain,
			"products", insights.TotalProducts,
			"errors", len(insights.ErrorsEncountered),
			"success", insights.ExtractionSuccess,
			"duration", time.Since(begin),
		)
		for _, msg := range insights.ErrorsEncountered {
			e.logger.Warn("category failed", "domain", insights.Domain, "err", msg)
		}
	}(time.Now())
	return e.next.ExtractInsights(ctx, baseURL)
}

var _ storelens.InsightsService = (*LoggingInsightsService)(nil)

// LoggingInsightsService wraps an InsightsService with debug logging.
type LoggingInsightsService struct {
	next   storelens.InsightsService
	logger *slog.Logger
}

// NewLoggingInsightsService creates a new LoggingInsightsService.
func NewLoggingInsightsService(next storelens.InsightsService, logger *slog.Logger) *LoggingInsightsService {
	return &LoggingInsightsService{next: next, logger: logger}
}

func (s *LoggingInsightsService) SaveInsights(ctx context.Context, insights *storelens.BrandInsights) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save insights",
			"domain", insights.Domain,
			"fingerprint", insights.Fingerprint,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveInsights(ctx, insights)
}

func (s *LoggingInsightsService) FindInsightsByDomain(ctx context.Context, domain string) (insights *storelens.BrandInsights, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find insights by domain", "domain", domain, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindInsightsByDomain(ctx, domain)
}

func (s *LoggingInsightsService) FindInsights(ctx context.Context, filter storelens.InsightsFilter) (all []*storelens.BrandInsights, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find insights", "count", len(all), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindInsights(ctx, filter)
}

func (s *LoggingInsightsService) DeleteInsights(ctx context.Context, domain string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete insights", "domain", domain, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.DeleteInsights(ctx, domain)
}
