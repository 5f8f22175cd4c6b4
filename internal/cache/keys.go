package cache

import "fmt"

// Key builders namespace cached resources by kind and parameters so that
// substring invalidation can target one resource family (e.g. "adsets:").

// CampaignsKey identifies the campaign listing for an ad account.
func CampaignsKey(accountID string) string {
	return fmt.Sprintf("campaigns:%s", accountID)
}

// AdSetsKey identifies the ad-set listing for a campaign.
func AdSetsKey(campaignID string) string {
	return fmt.Sprintf("adsets:%s", campaignID)
}

// InsightsKey identifies the insight rows for an ad over a date range.
func InsightsKey(adID, since, until string) string {
	return fmt.Sprintf("insights:%s:%s:%s", adID, since, until)
}

// ImageKey identifies an uploaded image by its platform hash.
func ImageKey(hash string) string {
	return fmt.Sprintf("image:%s", hash)
}

// VideoThumbnailKey identifies the thumbnail lookup for a video.
func VideoThumbnailKey(videoID string) string {
	return fmt.Sprintf("videothumb:%s", videoID)
}

// DiscoveryKey identifies the discovered asset list for a creative package.
func DiscoveryKey(packageID string) string {
	return fmt.Sprintf("discovery:%s", packageID)
}
