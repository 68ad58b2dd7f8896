package client

import (
	"context"

	"github.com/gstdraft-dev/gstdraft/internal/model"
)

// Sellers fetches the seller directory.
func (c *Client) Sellers(ctx context.Context) ([]model.Party, error) {
	var out []model.Party
	if err := c.get(ctx, "/sellers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Buyers fetches the buyer directory.
func (c *Client) Buyers(ctx context.Context) ([]model.Party, error) {
	var out []model.Party
	if err := c.get(ctx, "/buyers", &out); err != nil {
		return nil, err
	}
	return out, nil
}
