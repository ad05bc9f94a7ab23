package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/storelens"
)

// extractResponse is the JSON envelope printed by the extract command.
type extractResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    *storelens.BrandInsights `json:"data"`
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	baseURL, err := NormalizeURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storelens.ErrorMessage(err))
		return err
	}

	insights, err := deps.Extractor.ExtractInsights(deps.Ctx, baseURL)
	if err != nil {
		_ = writeJSON(deps, extractResponse{Message: storelens.ErrorMessage(err)})
		if storelens.ErrorCode(err) == storelens.EUNAVAILABLE {
			fmt.Fprintf(deps.Stderr, "error: website not accessible: %s\n", baseURL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storelens.ErrorMessage(err))
		}
		return err
	}

	if !c.NoSave {
		if err := deps.Insights.SaveInsights(deps.Ctx, insights); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to save insights: %s\n", storelens.ErrorMessage(err))
			return err
		}
	}

	message := "Brand insights extracted successfully"
	if !insights.ExtractionSuccess {
		message = fmt.Sprintf("Brand insights extracted with %d errors", len(insights.ErrorsEncountered))
	}
	return writeJSON(deps, extractResponse{
		Success: insights.ExtractionSuccess,
		Message: message,
		Data:    insights,
	})
}

// NormalizeURL turns user input into a storefront base URL: https is
// assumed when no scheme is given, the host is lower-cased and trailing
// slashes are dropped.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", storelens.Errorf(storelens.EINVALID, "URL required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", storelens.Errorf(storelens.EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", storelens.Errorf(storelens.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", storelens.Errorf(storelens.EINVALID, "URL %q has no host", raw)
	}

	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
