package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"adsync/internal/api"
	"adsync/internal/config"
	"adsync/internal/logging"
)

func pngBytes() []byte {
	return append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 32)...)
}

// fakeBackends serves a one-package, one-asset store plus a platform that
// accepts every image upload.
func fakeBackends(t *testing.T) (driveURL, metaURL string) {
	t.Helper()

	driveSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/folders/root/children":
			fmt.Fprint(w, `{"files":[{"id":"pkg-1","name":"summer-launch","folder":true}]}`)
		case "/folders/pkg-1/children":
			fmt.Fprint(w, `{"files":[{"id":"var-1","name":"v1","folder":true}]}`)
		case "/folders/var-1/children":
			fmt.Fprint(w, `{"files":[{"id":"f1","name":"4x5-hero.png","size":40}]}`)
		case "/files/f1/content":
			w.Write(pngBytes())
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(driveSrv.Close)

	metaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/adimages") {
			fmt.Fprint(w, `{"images":{"4x5-hero.png":{"hash":"hash-1"}}}`)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(metaSrv.Close)

	return driveSrv.URL, metaSrv.URL
}

func testConfig(t *testing.T, driveURL, metaURL string) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Drive.BaseURL = driveURL
	cfg.Drive.Token = "drive-token"
	cfg.Drive.RootFolderID = "root"
	cfg.Meta.BaseURL = metaURL
	cfg.Meta.AccessToken = "meta-token"
	cfg.Meta.AdAccountID = "123456"
	cfg.Meta.PageID = "42"
	return &cfg
}

func TestRunSyncUploadsAndRecordsRun(t *testing.T) {
	t.Parallel()

	driveURL, metaURL := fakeBackends(t)
	cfg := testConfig(t, driveURL, metaURL)
	rt, err := api.NewRuntime(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	outcome, err := api.RunSync(context.Background(), rt, "summer-launch")
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if outcome.RunID == "" {
		t.Fatal("expected a run id")
	}
	if outcome.Summary.Succeeded != 1 || outcome.Summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", outcome.Summary)
	}
	if len(outcome.Results) != 1 || outcome.Results[0].ImageHash != "hash-1" {
		t.Fatalf("unexpected results: %+v", outcome.Results)
	}

	store, err := api.OpenJournal(cfg)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	defer store.Close()
	run, err := store.GetRun(context.Background(), outcome.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.PackageID != "summer-launch" || run.Succeeded != 1 {
		t.Fatalf("unexpected recorded run: %+v", run)
	}
	if len(run.Assets) != 1 || run.Assets[0].PlatformID != "hash-1" {
		t.Fatalf("unexpected recorded assets: %+v", run.Assets)
	}
}

func TestRunSyncRefusesWhenLockHeld(t *testing.T) {
	t.Parallel()

	driveURL, metaURL := fakeBackends(t)
	cfg := testConfig(t, driveURL, metaURL)
	rt, err := api.NewRuntime(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	holder := flock.New(filepath.Join(cfg.Paths.DataDir, "adsync.lock"))
	held, err := holder.TryLock()
	if err != nil || !held {
		t.Fatalf("seed lock: held=%v err=%v", held, err)
	}
	defer holder.Unlock()

	_, err = api.RunSync(context.Background(), rt, "summer-launch")
	if err == nil || !strings.Contains(err.Error(), "another sync is already running") {
		t.Fatalf("expected lock contention error, got %v", err)
	}
}

func TestRunSyncReleasesLockAfterRun(t *testing.T) {
	t.Parallel()

	driveURL, metaURL := fakeBackends(t)
	cfg := testConfig(t, driveURL, metaURL)
	rt, err := api.NewRuntime(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	if _, err := api.RunSync(context.Background(), rt, "summer-launch"); err != nil {
		t.Fatalf("first RunSync: %v", err)
	}
	if _, err := api.RunSync(context.Background(), rt, "summer-launch"); err != nil {
		t.Fatalf("second RunSync should reacquire the lock: %v", err)
	}
}

func TestNewRuntimeRejectsBrokenConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	if _, err := api.NewRuntime(&cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for config without store credentials")
	}
	if _, err := api.NewRuntime(nil, logging.NewNop()); err == nil {
		t.Fatal("expected error for nil config")
	}
}
