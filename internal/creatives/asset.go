package creatives

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// AspectRatio identifies the two supported creative shapes.
type AspectRatio string

const (
	// AspectFeed is the near-square 4x5 shape shown in feed placements.
	AspectFeed AspectRatio = "4x5"
	// AspectStory is the portrait 9x16 shape shown in story and reel placements.
	AspectStory AspectRatio = "9x16"
)

// MediaKind distinguishes image and video assets.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Variant numbers run 1 through maxVariant; each is a distinct creative
// concept for the package.
const (
	minVariant = 1
	maxVariant = 5
)

// Asset is one discovered creative file. Immutable after discovery,
// identified by its store file id.
type Asset struct {
	FileID   string
	Name     string
	MimeType string
	Size     int64
	Variant  int
	Aspect   AspectRatio
	Kind     MediaKind
}

// Label returns the operator-facing identity of the asset.
func (a Asset) Label() string {
	return fmt.Sprintf("v%d/%s %s", a.Variant, a.Aspect, a.Kind)
}

// UploadResult is the per-asset outcome of one pipeline run.
type UploadResult struct {
	Asset     Asset
	Success   bool
	ImageHash string
	VideoID   string
	Err       error
}

// PlatformID returns whichever platform identifier the upload produced.
func (r UploadResult) PlatformID() string {
	if r.ImageHash != "" {
		return r.ImageHash
	}
	return r.VideoID
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".webm": {},
	".avi":  {},
}

// parseVariant extracts a variant number 1-5 from a folder name. Accepted
// spellings: "3", "v3", "variant-3", "variant3". Anything else is skipped.
func parseVariant(name string) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	trimmed = strings.TrimPrefix(trimmed, "variant")
	trimmed = strings.TrimPrefix(trimmed, "v")
	trimmed = strings.TrimLeft(trimmed, "-_ ")
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < minVariant || n > maxVariant {
		return 0, false
	}
	return n, true
}

// parseAspect reads the required file-name prefix. Files without a recognized
// prefix carry no placement information and are skipped.
func parseAspect(fileName string) (AspectRatio, bool) {
	lower := strings.ToLower(fileName)
	switch {
	case strings.HasPrefix(lower, string(AspectStory)):
		return AspectStory, true
	case strings.HasPrefix(lower, string(AspectFeed)):
		return AspectFeed, true
	default:
		return "", false
	}
}

// classifyKind maps a file extension onto a media kind.
func classifyKind(fileName string) (MediaKind, bool) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := imageExtensions[ext]; ok {
		return KindImage, true
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo, true
	}
	return "", false
}
