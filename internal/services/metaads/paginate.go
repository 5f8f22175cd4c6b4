package metaads

import (
	"context"
	"fmt"
	"net/url"
)

// Paging is the cursor block the platform attaches to list responses.
type Paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next"`
}

type page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

// collectPages follows the after-cursor until the platform stops returning
// one, accumulating every row in order. The first page error aborts the whole
// aggregate: partial listings are worse than failed ones, because callers
// cannot tell they are incomplete.
func collectPages[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var all []T
	after := ""
	for {
		pageParams := url.Values{}
		for key, values := range params {
			for _, value := range values {
				pageParams.Add(key, value)
			}
		}
		if after != "" {
			pageParams.Set("after", after)
		}

		var current page[T]
		if err := c.GetJSON(ctx, path, pageParams, &current); err != nil {
			return nil, fmt.Errorf("fetch page of %s: %w", path, err)
		}
		all = append(all, current.Data...)

		if current.Paging.Next == "" || current.Paging.Cursors.After == "" {
			return all, nil
		}
		after = current.Paging.Cursors.After
	}
}
