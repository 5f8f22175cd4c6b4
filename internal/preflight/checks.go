package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"adsync/internal/config"
	"adsync/internal/logging"
	"adsync/internal/services/drive"
	"adsync/internal/services/metaads"
)

const checkTimeout = 10 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDrive confirms the asset store is reachable and the configured root
// folder can be listed with the configured token.
func CheckDrive(ctx context.Context, cfg *config.Config) Result {
	const name = "Asset store"
	client, err := drive.New(cfg.Drive.BaseURL, cfg.Drive.Token, time.Duration(cfg.Drive.TimeoutSeconds)*time.Second)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	children, err := client.ListChildren(checkCtx, cfg.Drive.RootFolderID, "")
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %s", summarizeNetworkError(err))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("root folder reachable (%d entries)", len(children))}
}

// CheckPlatform confirms the ad platform token is valid by fetching the
// identity of the token holder.
func CheckPlatform(ctx context.Context, cfg *config.Config) Result {
	const name = "Ad platform"
	client, err := metaads.New(metaads.Config{
		BaseURL:        cfg.Meta.BaseURL,
		APIVersion:     cfg.Meta.APIVersion,
		AccessToken:    cfg.Meta.AccessToken,
		AdAccountID:    cfg.Meta.AdAccountID,
		PageID:         cfg.Meta.PageID,
		TimeoutSeconds: cfg.Meta.TimeoutSeconds,
	}, logging.NewNop())
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	var me struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := client.GetJSON(checkCtx, "me", url.Values{}, &me); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %s", summarizeNetworkError(err))}
	}
	detail := fmt.Sprintf("token valid (account %s)", cfg.Meta.AdAccountID)
	if me.Name != "" {
		detail = fmt.Sprintf("token valid for %s (account %s)", me.Name, cfg.Meta.AdAccountID)
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func summarizeNetworkError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (service unreachable)"
	}
	return err.Error()
}
