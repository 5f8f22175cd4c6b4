package creatives

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"

	"adsync/internal/services"
)

const (
	// MaxImageBytes is the platform's cap on image uploads.
	MaxImageBytes = 30 * 1024 * 1024
	// MaxVideoBytes is the platform's cap on video uploads.
	MaxVideoBytes = 4 * 1024 * 1024 * 1024
)

type signature struct {
	name   string
	offset int
	magic  []byte
}

var imageSignatures = []signature{
	{name: "jpeg", magic: []byte{0xFF, 0xD8, 0xFF}},
	{name: "png", magic: []byte{0x89, 0x50, 0x4E, 0x47}},
	{name: "gif", magic: []byte("GIF8")},
	{name: "webp", offset: 8, magic: []byte("WEBP")},
}

var videoSignatures = []signature{
	{name: "mp4/mov", offset: 4, magic: []byte("ftyp")},
	{name: "mov", offset: 4, magic: []byte("moov")},
	{name: "webm", magic: []byte{0x1A, 0x45, 0xDF, 0xA3}},
	{name: "avi", offset: 8, magic: []byte("AVI ")},
}

func matchesAny(data []byte, sigs []signature) bool {
	for _, sig := range sigs {
		end := sig.offset + len(sig.magic)
		if len(data) >= end && bytes.Equal(data[sig.offset:end], sig.magic) {
			return true
		}
	}
	return false
}

// ValidationWarning is a non-fatal finding from Validate.
type ValidationWarning struct {
	Asset  Asset
	Detail string
}

// Validate checks the downloaded bytes before any upload is attempted. Images
// must match a recognized format signature; videos only warn on unrecognized
// containers because container variety makes hard-failing unreliable. The
// returned error is tagged services.ErrValidation.
func Validate(asset Asset, data []byte) (*ValidationWarning, error) {
	if len(data) == 0 {
		return nil, services.Wrap(services.ErrValidation, "validate", asset.Label(), "asset is empty", nil)
	}

	switch asset.Kind {
	case KindImage:
		if len(data) > MaxImageBytes {
			return nil, services.Wrap(services.ErrValidation, "validate", asset.Label(),
				fmt.Sprintf("image size %s exceeds %s cap", humanize.IBytes(uint64(len(data))), humanize.IBytes(MaxImageBytes)), nil)
		}
		if !matchesAny(data, imageSignatures) {
			return nil, services.Wrap(services.ErrValidation, "validate", asset.Label(),
				"content does not match any recognized image format (jpeg/png/gif/webp)", nil)
		}
	case KindVideo:
		if len(data) > MaxVideoBytes {
			return nil, services.Wrap(services.ErrValidation, "validate", asset.Label(),
				fmt.Sprintf("video size %s exceeds %s cap", humanize.IBytes(uint64(len(data))), humanize.IBytes(MaxVideoBytes)), nil)
		}
		if !matchesAny(data, videoSignatures) {
			return &ValidationWarning{
				Asset:  asset,
				Detail: "content does not match a known video container signature",
			}, nil
		}
	default:
		return nil, services.Wrap(services.ErrValidation, "validate", asset.Label(),
			fmt.Sprintf("unknown media kind %q", asset.Kind), nil)
	}
	return nil, nil
}
