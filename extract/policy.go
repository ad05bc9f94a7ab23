package extract

import (
	"context"

	"github.com/fwojciec/storelens"
)

// PolicyExtractor finds the privacy, return/refund and terms policies by
// probing each kind's candidate paths in order.
type PolicyExtractor struct {
	Parser storelens.PageParser
}

func (x *PolicyExtractor) Category() storelens.Category { return storelens.CategoryPolicies }

// Extract never fails as a whole. A kind whose candidates all fail at the
// network level is reported in PolicySet.Failures; any other miss leaves
// the kind empty.
func (x *PolicyExtractor) Extract(ctx context.Context, site storelens.Site) (storelens.Section, error) {
	var set storelens.PolicySet
	for _, candidate := range storelens.PolicyCandidates {
		var policy *storelens.Policy
		_, failures, err := probe(ctx, site, candidate.Paths, func(resp *storelens.Response) bool {
			p, err := x.Parser.ParsePolicy(resp.Body, resp.URL, candidate.Kind)
			if err != nil || p == nil {
				return false
			}
			policy = p
			return true
		})

		switch {
		case policy != nil:
			set.Set(candidate.Kind, policy)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case failures == len(candidate.Paths):
			set.Failures = append(set.Failures, storelens.PolicyFailure{Kind: candidate.Kind, Err: err})
		}
	}
	return set, nil
}
