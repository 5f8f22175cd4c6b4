package assembly

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"adsync/internal/creatives"
)

// Copy is one rotating text variant.
type Copy struct {
	Variant int
	Body    string
	Title   string
}

// Media is one uploaded asset available to the creative.
type Media struct {
	Kind      creatives.MediaKind
	ImageHash string
	VideoID   string
}

// Input gathers everything Assemble needs. Media maps each aspect ratio to
// the uploaded assets available for it.
type Input struct {
	PackageName string
	Copy        []Copy
	Media       map[creatives.AspectRatio][]Media
	Greeting    string
	Prompts     []string
	LinkURL     string
	PageID      string
}

// MediaFromResults buckets successful pipeline results by aspect ratio so
// they can feed directly into Assemble.
func MediaFromResults(results []creatives.UploadResult) map[creatives.AspectRatio][]Media {
	media := make(map[creatives.AspectRatio][]Media)
	for _, r := range results {
		if !r.Success {
			continue
		}
		media[r.Asset.Aspect] = append(media[r.Asset.Aspect], Media{
			Kind:      r.Asset.Kind,
			ImageHash: r.ImageHash,
			VideoID:   r.VideoID,
		})
	}
	return media
}

// Assemble builds the placement-aware rotation creative: shared labels for
// body and title rotation, one media label per surface class (the story rule
// reuses the feed label when no distinct story asset exists), and exactly two
// placement rules. Pure; submission is the caller's concern.
func Assemble(in Input) (*RotationCreative, error) {
	if len(in.Copy) == 0 {
		return nil, errors.New("assemble: at least one copy variant required")
	}
	if len(in.Media) == 0 {
		return nil, errors.New("assemble: at least one uploaded media asset required")
	}
	for aspect := range in.Media {
		if aspect != creatives.AspectFeed && aspect != creatives.AspectStory {
			return nil, fmt.Errorf("assemble: unknown aspect ratio %q", aspect)
		}
	}

	bodyLabel := newLabel("body")
	titleLabel := newLabel("title")
	linkLabel := newLabel("link")

	feed := pickMedia(in.Media[creatives.AspectFeed])
	story := pickMedia(in.Media[creatives.AspectStory])
	if feed == nil && story == nil {
		return nil, errors.New("assemble: no usable media in any aspect ratio")
	}
	// A package with only vertical assets still needs a feed rule; promote the
	// story asset into the feed slot rather than emitting a one-rule creative.
	if feed == nil {
		feed = story
		story = nil
	}

	feedLabel := newLabel("media-feed")
	storyLabel := feedLabel
	if story != nil {
		storyLabel = newLabel("media-story")
	}

	spec := AssetFeedSpec{
		LinkURLs:          []LinkAsset{{WebsiteURL: in.LinkURL, AdLabels: []AdLabel{linkLabel}}},
		CallToActionTypes: []string{"MESSAGE_PAGE"},
	}
	for _, c := range in.Copy {
		spec.Bodies = append(spec.Bodies, TextAsset{Text: c.Body, AdLabels: []AdLabel{bodyLabel}})
		spec.Titles = append(spec.Titles, TextAsset{Text: c.Title, AdLabels: []AdLabel{titleLabel}})
	}

	feedRule := PlacementRule{
		CustomizationSpec: SurfaceSpec{
			PublisherPlatforms: []string{"facebook", "instagram"},
			FacebookPositions:  []string{"feed", "marketplace"},
			InstagramPositions: []string{"stream", "explore"},
		},
		BodyLabel:    bodyLabel,
		TitleLabel:   titleLabel,
		LinkURLLabel: linkLabel,
		Priority:     1,
	}
	storyRule := PlacementRule{
		CustomizationSpec: SurfaceSpec{
			PublisherPlatforms: []string{"facebook", "instagram"},
			FacebookPositions:  []string{"story"},
			InstagramPositions: []string{"story", "reels"},
		},
		BodyLabel:    bodyLabel,
		TitleLabel:   titleLabel,
		LinkURLLabel: linkLabel,
		Priority:     2,
	}

	attach := func(rule *PlacementRule, m *Media, label AdLabel) {
		switch m.Kind {
		case creatives.KindVideo:
			rule.VideoLabel = &label
		default:
			rule.ImageLabel = &label
		}
	}
	addMedia := func(m *Media, label AdLabel) {
		switch m.Kind {
		case creatives.KindVideo:
			spec.Videos = append(spec.Videos, VideoAsset{VideoID: m.VideoID, AdLabels: []AdLabel{label}})
		default:
			spec.Images = append(spec.Images, ImageAsset{Hash: m.ImageHash, AdLabels: []AdLabel{label}})
		}
	}

	addMedia(feed, feedLabel)
	attach(&feedRule, feed, feedLabel)
	if story != nil {
		addMedia(story, storyLabel)
		attach(&storyRule, story, storyLabel)
	} else {
		attach(&storyRule, feed, storyLabel)
	}

	spec.AssetCustomizationRules = []PlacementRule{feedRule, storyRule}

	return &RotationCreative{
		Name:            displayName(in.PackageName),
		ObjectStorySpec: StorySpec{PageID: in.PageID},
		AssetFeedSpec:   spec,
		WelcomeMessage:  newWelcomeMessage(in.Greeting, in.Prompts),
	}, nil
}

// pickMedia resolves one slot per aspect ratio: when both an image and a
// video are present, the video wins.
func pickMedia(candidates []Media) *Media {
	var image *Media
	for i := range candidates {
		switch candidates[i].Kind {
		case creatives.KindVideo:
			return &candidates[i]
		case creatives.KindImage:
			if image == nil {
				image = &candidates[i]
			}
		}
	}
	return image
}

func newLabel(prefix string) AdLabel {
	return AdLabel{Name: prefix + "-" + uuid.NewString()[:8]}
}

func newWelcomeMessage(greeting string, prompts []string) WelcomeMessage {
	msg := WelcomeMessage{
		Type:     "VISUAL_EDITOR",
		Version:  2,
		Greeting: greeting,
		Ref:      "adsync-" + uuid.NewString(),
	}
	for _, p := range prompts {
		if p = strings.TrimSpace(p); p != "" {
			msg.Prompts = append(msg.Prompts, Prompt{Text: p})
		}
	}
	return msg
}

// displayName derives a human ad name from the package folder name.
func displayName(packageName string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(packageName))
	if cleaned == "" {
		return "Untitled Creative"
	}
	return cases.Title(language.English).String(cleaned)
}
