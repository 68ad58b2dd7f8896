package client

import (
	"context"
	"net/url"

	"github.com/gstdraft-dev/gstdraft/internal/model"
)

// minHSNQuery is the shortest partial code worth a lookup.
const minHSNQuery = 2

// SuggestHSN returns HSN code suggestions for a partial code, ordered by
// code. Queries shorter than two characters return no suggestions without a
// network call. Results are display hints only; the draft is never
// validated against them.
func (c *Client) SuggestHSN(ctx context.Context, query string) ([]model.HSNSuggestion, error) {
	if len(query) < minHSNQuery {
		return nil, nil
	}
	var out []model.HSNSuggestion
	if err := c.get(ctx, "/hsn?q="+url.QueryEscape(query), &out); err != nil {
		return nil, err
	}
	return out, nil
}
