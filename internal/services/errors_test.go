package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"adsync/internal/services"
)

func TestWrapTagsWithMarker(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := services.Wrap(services.ErrTransport, "uploader", "download", "fetch asset bytes", cause)

	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to remain reachable")
	}
	for _, fragment := range []string{"uploader", "download", "fetch asset bytes", "connection reset"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("message missing %q: %s", fragment, err)
		}
	}
}

func TestWrapWithoutCauseOrMarker(t *testing.T) {
	t.Parallel()

	err := services.Wrap(nil, "pipeline", "filter", "no assets match", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("nil marker should default to transport, got %v", err)
	}

	empty := services.Wrap(services.ErrValidation, "", "", "", nil)
	if !strings.Contains(empty.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %s", empty)
	}
}

func TestTerminalClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		marker   error
		terminal bool
	}{
		{services.ErrValidation, true},
		{services.ErrConfiguration, true},
		{services.ErrNotFound, true},
		{services.ErrTransport, false},
		{services.ErrPlatform, false},
		{services.ErrTimeout, false},
	}
	for _, tc := range cases {
		err := services.Wrap(tc.marker, "c", "op", "msg", nil)
		if services.Terminal(err) != tc.terminal {
			t.Fatalf("Terminal(%v) = %v, want %v", tc.marker, !tc.terminal, tc.terminal)
		}
	}
	if services.Terminal(nil) {
		t.Fatal("nil error must not be terminal")
	}
}

func TestContextCarriesIdentifiers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, ok := services.PackageIDFromContext(ctx); ok {
		t.Fatal("empty context should carry no package id")
	}

	ctx = services.WithPackageID(ctx, "summer-launch")
	ctx = services.WithRunID(ctx, "run-1")

	if got, ok := services.PackageIDFromContext(ctx); !ok || got != "summer-launch" {
		t.Fatalf("package id = %q (ok=%v)", got, ok)
	}
	if got, ok := services.RunIDFromContext(ctx); !ok || got != "run-1" {
		t.Fatalf("run id = %q (ok=%v)", got, ok)
	}

	same := services.WithPackageID(context.Background(), "")
	if _, ok := services.PackageIDFromContext(same); ok {
		t.Fatal("empty id must not be stored")
	}
}
