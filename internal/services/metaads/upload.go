package metaads

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
)

// UploadImage submits encoded image bytes and returns the opaque hash the
// platform assigns. The hash, not the file, is what creatives reference.
func (c *Client) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image data must not be empty")
	}

	params := url.Values{}
	params.Set("name", name)
	params.Set("bytes", base64.StdEncoding.EncodeToString(data))

	var resp struct {
		Images map[string]struct {
			Hash string `json:"hash"`
		} `json:"images"`
	}
	path := c.AccountPath() + "/adimages"
	if err := c.PostForm(ctx, path, params, &resp); err != nil {
		return "", err
	}
	for _, img := range resp.Images {
		if img.Hash != "" {
			return img.Hash, nil
		}
	}
	return "", fmt.Errorf("image upload for %q returned no hash", name)
}

// UploadVideo submits raw video bytes through the binary endpoint and returns
// the platform video id.
func (c *Client) UploadVideo(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("video data must not be empty")
	}

	var resp struct {
		ID string `json:"id"`
	}
	path := c.AccountPath() + "/advideos"
	fields := map[string]string{"name": name}
	if err := c.PostMultipart(ctx, path, fields, "source", name, data, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("video upload for %q returned no id", name)
	}
	return resp.ID, nil
}
