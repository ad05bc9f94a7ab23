package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/storelens"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter storelens.InsightsFilter
	if c.Failed {
		success := false
		filter.ExtractionSuccess = &success
	}

	all, err := deps.Insights.FindInsights(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storelens.ErrorMessage(err))
		return err
	}

	if len(all) == 0 {
		fmt.Fprintln(deps.Stdout, "No storefronts found. Use 'storelens extract' to add one.")
		return nil
	}

	for _, b := range all {
		status := "ok"
		if !b.ExtractionSuccess {
			status = "errors"
		}
		brand := b.BrandName
		if brand == "" {
			brand = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d products  %s  %s\n",
			b.Domain, brand, b.TotalProducts, status, b.ExtractionTimestamp.UTC().Format(time.RFC3339))
	}

	return nil
}
