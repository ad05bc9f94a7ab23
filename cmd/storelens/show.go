package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/storelens"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	domain := strings.ToLower(strings.TrimSpace(c.Domain))
	insights, err := deps.Insights.FindInsightsByDomain(deps.Ctx, domain)
	if err != nil {
		if storelens.ErrorCode(err) == storelens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no insights stored for %q. Use 'storelens list' to see stored storefronts.\n", domain)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storelens.ErrorMessage(err))
		}
		return err
	}
	return writeJSON(deps, insights)
}
