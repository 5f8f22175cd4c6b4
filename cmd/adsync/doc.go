// Command adsync syncs creative packages from the asset store into the ad
// platform and assembles placement-aware rotation creatives from the
// uploaded media.
package main
