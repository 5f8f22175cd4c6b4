package metaads

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"adsync/internal/cache"
)

// Campaign is one row of the account campaign listing.
type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

// AdSet is one row of a campaign's ad-set listing.
type AdSet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CampaignID string `json:"campaign_id"`
}

// Insight is one aggregated metric row for an ad.
type Insight struct {
	DateStart   string `json:"date_start"`
	DateStop    string `json:"date_stop"`
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Spend       string `json:"spend"`
	CPM         string `json:"cpm"`
	CTR         string `json:"ctr"`
}

// Thumbnail is one preview image for an uploaded video.
type Thumbnail struct {
	VideoID     string `json:"-"`
	URI         string `json:"uri"`
	IsPreferred bool   `json:"is_preferred"`
}

const discoveryFields = "id,name,status"

// ListCampaigns returns every campaign in the ad account, memoized.
func (c *Client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	key := cache.CampaignsKey(c.cfg.AdAccountID)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached.([]Campaign), nil
		}
	}

	params := url.Values{}
	params.Set("fields", discoveryFields+",objective")
	campaigns, err := collectPages[Campaign](ctx, c, c.AccountPath()+"/campaigns", params)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, campaigns)
	}
	return campaigns, nil
}

// ListAdSets returns every ad set under the campaign, memoized.
func (c *Client) ListAdSets(ctx context.Context, campaignID string) ([]AdSet, error) {
	key := cache.AdSetsKey(campaignID)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached.([]AdSet), nil
		}
	}

	params := url.Values{}
	params.Set("fields", discoveryFields+",campaign_id")
	adSets, err := collectPages[AdSet](ctx, c, campaignID+"/adsets", params)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, adSets)
	}
	return adSets, nil
}

// AdInsights returns the metric rows for an ad over the inclusive date range,
// memoized per (ad, range).
func (c *Client) AdInsights(ctx context.Context, adID string, since, until time.Time) ([]Insight, error) {
	sinceStr := since.Format("2006-01-02")
	untilStr := until.Format("2006-01-02")
	key := cache.InsightsKey(adID, sinceStr, untilStr)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached.([]Insight), nil
		}
	}

	params := url.Values{}
	params.Set("fields", "impressions,clicks,spend,cpm,ctr")
	params.Set("time_range", fmt.Sprintf(`{"since":%q,"until":%q}`, sinceStr, untilStr))
	insights, err := collectPages[Insight](ctx, c, adID+"/insights", params)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, insights)
	}
	return insights, nil
}

// VideoThumbnails looks up the preferred thumbnail for each video id using
// bounded fan-out. Videos whose lookup fails are omitted from the result.
func (c *Client) VideoThumbnails(ctx context.Context, videoIDs []string) []Thumbnail {
	return fanOut(ctx, c.logger, videoIDs, func(ctx context.Context, videoID string) (Thumbnail, error) {
		key := cache.VideoThumbnailKey(videoID)
		if c.cache != nil {
			if cached, ok := c.cache.Get(key); ok {
				return cached.(Thumbnail), nil
			}
		}

		var resp struct {
			Data []Thumbnail `json:"data"`
		}
		if err := c.GetJSON(ctx, videoID+"/thumbnails", nil, &resp); err != nil {
			return Thumbnail{}, err
		}
		if len(resp.Data) == 0 {
			return Thumbnail{}, fmt.Errorf("video %s has no thumbnails", videoID)
		}
		chosen := resp.Data[0]
		for _, t := range resp.Data {
			if t.IsPreferred {
				chosen = t
				break
			}
		}
		chosen.VideoID = videoID
		if c.cache != nil {
			c.cache.Set(key, chosen)
		}
		return chosen, nil
	})
}

// ImageURL resolves an uploaded image hash to its hosted URL, memoized per
// hash. Hashes are stable, so a cached URL never goes stale within the TTL.
func (c *Client) ImageURL(ctx context.Context, hash string) (string, error) {
	if hash == "" {
		return "", fmt.Errorf("image hash required")
	}
	key := cache.ImageKey(hash)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached.(string), nil
		}
	}

	params := url.Values{}
	params.Set("fields", "url")
	params.Set("hashes", fmt.Sprintf(`[%q]`, hash))

	var resp struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := c.GetJSON(ctx, c.AccountPath()+"/adimages", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image %s has no hosted url", hash)
	}
	if c.cache != nil {
		c.cache.Set(key, resp.Data[0].URL)
	}
	return resp.Data[0].URL, nil
}

// CreateAdCreative submits a creative body and returns the new creative id.
// The body is deliberately loosely typed at this boundary; callers construct
// it through the assembly package's typed spec. Platform rejections propagate
// verbatim.
func (c *Client) CreateAdCreative(ctx context.Context, body any) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.PostJSON(ctx, c.AccountPath()+"/adcreatives", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// CreateAd attaches a creative to an ad set and returns the new ad id.
func (c *Client) CreateAd(ctx context.Context, adSetID, creativeID, name string) (string, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("adset_id", adSetID)
	params.Set("creative", fmt.Sprintf(`{"creative_id":%q}`, creativeID))
	params.Set("status", "PAUSED")

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.PostJSON(ctx, c.AccountPath()+"/ads", params, nil, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}
