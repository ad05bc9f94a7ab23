package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/storelens"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return storelens.Errorf(storelens.EINVALID, "use --force to confirm deletion")
	}

	domain := strings.ToLower(strings.TrimSpace(c.Domain))
	if err := deps.Insights.DeleteInsights(deps.Ctx, domain); err != nil {
		if storelens.ErrorCode(err) == storelens.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no insights stored for %q. Use 'storelens list' to see stored storefronts.\n", domain)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storelens.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted insights for %q\n", domain)
	return nil
}
