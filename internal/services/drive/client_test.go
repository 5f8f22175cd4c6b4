package drive_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"adsync/internal/services/drive"
)

func newTestClient(t *testing.T, handler http.Handler) *drive.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := drive.New(srv.URL, "secret-token", 5*time.Second, drive.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestListChildrenSendsBearerTokenAndFilter(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/folders/root-1/children" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("name") != "summer-launch" {
			t.Errorf("unexpected filter %q", r.URL.Query().Get("name"))
		}
		fmt.Fprint(w, `{"files":[{"id":"f1","name":"summer-launch","folder":true}]}`)
	}))

	files, err := client.ListChildren(context.Background(), "root-1", "summer-launch")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(files) != 1 || files[0].ID != "f1" || !files[0].Folder {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestListChildrenRejectsEmptyParent(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	if _, err := client.ListChildren(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for empty parent id")
	}
}

func TestListChildrenReportsHTTPStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	_, err := client.ListChildren(context.Background(), "root-1", "")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestDownloadReturnsRawBytes(t *testing.T) {
	t.Parallel()

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/f9/content" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(payload)
	}))

	data, err := client.Download(context.Background(), "f9")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("unexpected content: %v", data)
	}
}

func TestNewValidatesArguments(t *testing.T) {
	t.Parallel()

	if _, err := drive.New("", "token", time.Second); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := drive.New("https://files.example.com", "  ", time.Second); err == nil {
		t.Fatal("expected error for empty token")
	}
}
