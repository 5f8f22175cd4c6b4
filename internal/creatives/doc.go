// Package creatives implements the creative synchronization pipeline: it
// discovers advertising assets in the file store, validates them by content,
// and uploads them to the ad platform with retry and pacing, producing one
// upload result per asset.
package creatives
