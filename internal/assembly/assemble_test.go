package assembly_test

import (
	"testing"

	"adsync/internal/assembly"
	"adsync/internal/creatives"
)

func baseInput() assembly.Input {
	return assembly.Input{
		PackageName: "summer-launch",
		Copy: []assembly.Copy{
			{Variant: 1, Body: "Body one", Title: "Title one"},
			{Variant: 2, Body: "Body two", Title: "Title two"},
		},
		Media: map[creatives.AspectRatio][]assembly.Media{
			creatives.AspectFeed:  {{Kind: creatives.KindImage, ImageHash: "feed-hash"}},
			creatives.AspectStory: {{Kind: creatives.KindVideo, VideoID: "story-vid"}},
		},
		Greeting: "Hi there!",
		Prompts:  []string{"Tell me more", "  ", "Pricing?"},
		LinkURL:  "https://example.com/landing",
		PageID:   "42",
	}
}

func TestAssembleBuildsExactlyTwoPlacementRules(t *testing.T) {
	t.Parallel()

	creative, err := assembly.Assemble(baseInput())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	rules := creative.AssetFeedSpec.AssetCustomizationRules
	if len(rules) != 2 {
		t.Fatalf("expected exactly two placement rules, got %d", len(rules))
	}
	feed, story := rules[0], rules[1]
	if feed.Priority != 1 || story.Priority != 2 {
		t.Fatalf("unexpected priorities: %d, %d", feed.Priority, story.Priority)
	}
	if len(feed.CustomizationSpec.FacebookPositions) == 0 || feed.CustomizationSpec.FacebookPositions[0] != "feed" {
		t.Fatalf("unexpected feed surfaces: %+v", feed.CustomizationSpec)
	}
	if story.CustomizationSpec.FacebookPositions[0] != "story" {
		t.Fatalf("unexpected story surfaces: %+v", story.CustomizationSpec)
	}
}

func TestAssembleSharesTextLabelsAcrossVariants(t *testing.T) {
	t.Parallel()

	creative, err := assembly.Assemble(baseInput())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	spec := creative.AssetFeedSpec
	if len(spec.Bodies) != 2 || len(spec.Titles) != 2 {
		t.Fatalf("expected 2 bodies and 2 titles, got %d/%d", len(spec.Bodies), len(spec.Titles))
	}
	bodyLabel := spec.Bodies[0].AdLabels[0].Name
	if spec.Bodies[1].AdLabels[0].Name != bodyLabel {
		t.Fatal("all bodies must share one label")
	}
	titleLabel := spec.Titles[0].AdLabels[0].Name
	if spec.Titles[1].AdLabels[0].Name != titleLabel {
		t.Fatal("all titles must share one label")
	}
	if bodyLabel == titleLabel {
		t.Fatal("body and title labels must differ")
	}

	rules := spec.AssetCustomizationRules
	for _, rule := range rules {
		if rule.BodyLabel.Name != bodyLabel || rule.TitleLabel.Name != titleLabel {
			t.Fatalf("rules must reference the shared text labels: %+v", rule)
		}
	}
}

func TestAssembleDistinctStoryAssetGetsOwnLabel(t *testing.T) {
	t.Parallel()

	creative, err := assembly.Assemble(baseInput())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	rules := creative.AssetFeedSpec.AssetCustomizationRules
	feed, story := rules[0], rules[1]
	if feed.ImageLabel == nil {
		t.Fatal("feed rule should carry the image label")
	}
	if story.VideoLabel == nil {
		t.Fatal("story rule should carry the video label")
	}
	if feed.ImageLabel.Name == story.VideoLabel.Name {
		t.Fatal("distinct story asset must get its own label")
	}
	if len(creative.AssetFeedSpec.Images) != 1 || creative.AssetFeedSpec.Images[0].Hash != "feed-hash" {
		t.Fatalf("unexpected images: %+v", creative.AssetFeedSpec.Images)
	}
	if len(creative.AssetFeedSpec.Videos) != 1 || creative.AssetFeedSpec.Videos[0].VideoID != "story-vid" {
		t.Fatalf("unexpected videos: %+v", creative.AssetFeedSpec.Videos)
	}
}

func TestAssembleStoryRuleReusesFeedLabelWithoutStoryAsset(t *testing.T) {
	t.Parallel()

	in := baseInput()
	delete(in.Media, creatives.AspectStory)

	creative, err := assembly.Assemble(in)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	rules := creative.AssetFeedSpec.AssetCustomizationRules
	feed, story := rules[0], rules[1]
	if feed.ImageLabel == nil || story.ImageLabel == nil {
		t.Fatalf("both rules should carry image labels: %+v", rules)
	}
	if feed.ImageLabel.Name != story.ImageLabel.Name {
		t.Fatal("story rule must reuse the feed label when no story asset exists")
	}
	if len(creative.AssetFeedSpec.Images) != 1 {
		t.Fatalf("the shared asset must appear once, got %+v", creative.AssetFeedSpec.Images)
	}
}

func TestAssemblePromotesStoryOnlyMediaIntoFeedSlot(t *testing.T) {
	t.Parallel()

	in := baseInput()
	delete(in.Media, creatives.AspectFeed)

	creative, err := assembly.Assemble(in)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	rules := creative.AssetFeedSpec.AssetCustomizationRules
	if len(rules) != 2 {
		t.Fatalf("expected two rules, got %d", len(rules))
	}
	if rules[0].VideoLabel == nil || rules[1].VideoLabel == nil {
		t.Fatalf("promoted story video should back both rules: %+v", rules)
	}
	if rules[0].VideoLabel.Name != rules[1].VideoLabel.Name {
		t.Fatal("promoted asset must be shared, not duplicated")
	}
}

func TestAssembleVideoBeatsImageWithinAspect(t *testing.T) {
	t.Parallel()

	in := baseInput()
	in.Media[creatives.AspectFeed] = []assembly.Media{
		{Kind: creatives.KindImage, ImageHash: "feed-hash"},
		{Kind: creatives.KindVideo, VideoID: "feed-vid"},
	}

	creative, err := assembly.Assemble(in)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	feed := creative.AssetFeedSpec.AssetCustomizationRules[0]
	if feed.VideoLabel == nil || feed.ImageLabel != nil {
		t.Fatalf("video must win the feed slot: %+v", feed)
	}
	if len(creative.AssetFeedSpec.Videos) != 2 {
		t.Fatalf("expected feed and story videos, got %+v", creative.AssetFeedSpec.Videos)
	}
}

func TestAssembleWelcomeMessageAndCallToAction(t *testing.T) {
	t.Parallel()

	creative, err := assembly.Assemble(baseInput())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if got := creative.AssetFeedSpec.CallToActionTypes; len(got) != 1 || got[0] != "MESSAGE_PAGE" {
		t.Fatalf("unexpected call to action: %v", got)
	}
	msg := creative.WelcomeMessage
	if msg.Type != "VISUAL_EDITOR" || msg.Version != 2 {
		t.Fatalf("unexpected template envelope: %+v", msg)
	}
	if msg.Greeting != "Hi there!" {
		t.Fatalf("unexpected greeting: %q", msg.Greeting)
	}
	if len(msg.Prompts) != 2 {
		t.Fatalf("blank prompts must be dropped: %+v", msg.Prompts)
	}
	if msg.Ref == "" {
		t.Fatal("expected trackable ref token")
	}
	if creative.ObjectStorySpec.PageID != "42" {
		t.Fatalf("unexpected page id %q", creative.ObjectStorySpec.PageID)
	}
}

func TestAssembleDerivesDisplayName(t *testing.T) {
	t.Parallel()

	creative, err := assembly.Assemble(baseInput())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if creative.Name != "Summer Launch" {
		t.Fatalf("unexpected creative name %q", creative.Name)
	}
}

func TestAssembleValidatesInput(t *testing.T) {
	t.Parallel()

	noCopy := baseInput()
	noCopy.Copy = nil
	if _, err := assembly.Assemble(noCopy); err == nil {
		t.Fatal("expected error without copy variants")
	}

	noMedia := baseInput()
	noMedia.Media = nil
	if _, err := assembly.Assemble(noMedia); err == nil {
		t.Fatal("expected error without media")
	}

	badAspect := baseInput()
	badAspect.Media["1x1"] = []assembly.Media{{Kind: creatives.KindImage, ImageHash: "x"}}
	if _, err := assembly.Assemble(badAspect); err == nil {
		t.Fatal("expected error for unknown aspect ratio")
	}
}

func TestMediaFromResultsKeepsOnlySuccesses(t *testing.T) {
	t.Parallel()

	results := []creatives.UploadResult{
		{
			Asset:     creatives.Asset{Aspect: creatives.AspectFeed, Kind: creatives.KindImage},
			Success:   true,
			ImageHash: "h1",
		},
		{
			Asset:   creatives.Asset{Aspect: creatives.AspectStory, Kind: creatives.KindVideo},
			Success: true,
			VideoID: "v1",
		},
		{
			Asset: creatives.Asset{Aspect: creatives.AspectStory, Kind: creatives.KindVideo},
		},
	}

	media := assembly.MediaFromResults(results)
	if len(media[creatives.AspectFeed]) != 1 || media[creatives.AspectFeed][0].ImageHash != "h1" {
		t.Fatalf("unexpected feed media: %+v", media[creatives.AspectFeed])
	}
	if len(media[creatives.AspectStory]) != 1 || media[creatives.AspectStory][0].VideoID != "v1" {
		t.Fatalf("failed uploads must be excluded: %+v", media[creatives.AspectStory])
	}
}
