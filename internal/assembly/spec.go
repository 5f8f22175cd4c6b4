package assembly

// The platform's creative bodies are heterogeneous, so each creative kind gets
// its own concrete type behind the Creative marker. Shape errors surface at
// compile time instead of at submission.

// Creative is the tagged union of creative bodies the gateway can submit.
type Creative interface {
	CreativeKind() string
}

// AdLabel tags an asset so the platform can rotate everything sharing the tag.
type AdLabel struct {
	Name string `json:"name"`
}

// TextAsset is one rotating body or title.
type TextAsset struct {
	Text     string    `json:"text"`
	AdLabels []AdLabel `json:"adlabels"`
}

// ImageAsset references an uploaded image by platform hash.
type ImageAsset struct {
	Hash     string    `json:"hash"`
	AdLabels []AdLabel `json:"adlabels"`
}

// VideoAsset references an uploaded video by platform id.
type VideoAsset struct {
	VideoID  string    `json:"video_id"`
	AdLabels []AdLabel `json:"adlabels"`
}

// LinkAsset is the shared destination URL.
type LinkAsset struct {
	WebsiteURL string    `json:"website_url"`
	AdLabels   []AdLabel `json:"adlabels"`
}

// SurfaceSpec names the display surfaces a placement rule covers.
type SurfaceSpec struct {
	PublisherPlatforms []string `json:"publisher_platforms"`
	FacebookPositions  []string `json:"facebook_positions,omitempty"`
	InstagramPositions []string `json:"instagram_positions,omitempty"`
}

// PlacementRule binds one media label and the shared text labels to a surface
// set. The platform requires at least two rules per creative.
type PlacementRule struct {
	CustomizationSpec SurfaceSpec `json:"customization_spec"`
	ImageLabel        *AdLabel    `json:"image_label,omitempty"`
	VideoLabel        *AdLabel    `json:"video_label,omitempty"`
	BodyLabel         AdLabel     `json:"body_label"`
	TitleLabel        AdLabel     `json:"title_label"`
	LinkURLLabel      AdLabel     `json:"link_url_label"`
	Priority          int         `json:"priority"`
}

// AssetFeedSpec is the rotation-capable asset collection of a creative.
type AssetFeedSpec struct {
	Bodies                  []TextAsset     `json:"bodies"`
	Titles                  []TextAsset     `json:"titles"`
	Images                  []ImageAsset    `json:"images,omitempty"`
	Videos                  []VideoAsset    `json:"videos,omitempty"`
	LinkURLs                []LinkAsset     `json:"link_urls"`
	CallToActionTypes       []string        `json:"call_to_action_types"`
	AssetCustomizationRules []PlacementRule `json:"asset_customization_rules"`
}

// StorySpec anchors the creative to the page that owns it.
type StorySpec struct {
	PageID string `json:"page_id"`
}

// WelcomeMessage is the structured, pre-filled conversational opening attached
// as the call-to-action payload. Ref is a trackable identifier.
type WelcomeMessage struct {
	Type     string   `json:"type"`
	Version  int      `json:"version"`
	Greeting string   `json:"greeting"`
	Ref      string   `json:"ref"`
	Prompts  []Prompt `json:"prompts,omitempty"`
}

// Prompt is one tappable conversation opener shown under the greeting.
type Prompt struct {
	Text string `json:"text"`
}

// RotationCreative is the placement-aware, rotation-capable creative this
// package assembles. Submitted once, never mutated.
type RotationCreative struct {
	Name            string         `json:"name"`
	ObjectStorySpec StorySpec      `json:"object_story_spec"`
	AssetFeedSpec   AssetFeedSpec  `json:"asset_feed_spec"`
	WelcomeMessage  WelcomeMessage `json:"page_welcome_message"`
}

func (RotationCreative) CreativeKind() string { return "rotation" }

// ImageCreative is a single-image creative without rotation.
type ImageCreative struct {
	Name      string `json:"name"`
	PageID    string `json:"page_id"`
	ImageHash string `json:"image_hash"`
	Body      string `json:"body"`
	Title     string `json:"title"`
	LinkURL   string `json:"link_url"`
}

func (ImageCreative) CreativeKind() string { return "image" }

// VideoCreative is a single-video creative without rotation.
type VideoCreative struct {
	Name    string `json:"name"`
	PageID  string `json:"page_id"`
	VideoID string `json:"video_id"`
	Body    string `json:"body"`
	Title   string `json:"title"`
	LinkURL string `json:"link_url"`
}

func (VideoCreative) CreativeKind() string { return "video" }
