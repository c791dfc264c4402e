package stores

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	rerrors "github.com/rediacc/rdc/internal/errors"
)

// testAdapterContract runs the behavior every Adapter must share against a
// freshly created, empty backend.
func testAdapterContract(t *testing.T, newAdapter func(t *testing.T) Adapter) {
	t.Helper()

	t.Run("EmptyListIsNotAnError", func(t *testing.T) {
		adapter := newAdapter(t)
		names, err := adapter.List(context.Background())
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if names == nil || len(names) != 0 {
			t.Fatalf("Expected empty slice, got %#v", names)
		}
	})

	t.Run("PushPullScenario", func(t *testing.T) {
		ctx := context.Background()
		adapter := newAdapter(t)

		v1 := &RdcConfig{
			ID:       "g1",
			Version:  1,
			Machines: map[string]any{"web-1": map[string]any{"ip": "10.0.0.1"}},
		}
		mustPush(t, adapter, v1, "prod")

		pulled, err := adapter.Pull(ctx, "prod")
		if err != nil {
			t.Fatalf("Pull failed: %v", err)
		}
		if !pulled.Success || !reflect.DeepEqual(pulled.Config, v1) {
			t.Fatalf("Pull = %+v, want %+v", pulled.Config, v1)
		}

		mustPush(t, adapter, &RdcConfig{ID: "g1", Version: 2}, "prod")

		stale, err := adapter.Push(ctx, &RdcConfig{ID: "g1", Version: 1}, "prod")
		if err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if stale.Success || !errors.Is(stale.Err, rerrors.ErrVersionConflict) {
			t.Fatalf("Expected version conflict, got %+v", stale)
		}
		if !strings.Contains(stale.Err.Error(), "newer") {
			t.Errorf("Conflict error should say the remote is newer: %v", stale.Err)
		}
		if stale.RemoteVersion != 2 {
			t.Errorf("RemoteVersion = %d, want 2", stale.RemoteVersion)
		}

		foreign, err := adapter.Push(ctx, &RdcConfig{ID: "g2", Version: 1}, "prod")
		if err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if foreign.Success || !errors.Is(foreign.Err, rerrors.ErrGUIDMismatch) {
			t.Fatalf("Expected GUID mismatch, got %+v", foreign)
		}

		// A higher version from another lineage is still rejected.
		foreign, err = adapter.Push(ctx, &RdcConfig{ID: "g2", Version: 99}, "prod")
		if err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if !errors.Is(foreign.Err, rerrors.ErrGUIDMismatch) {
			t.Fatalf("Expected GUID mismatch regardless of version, got %+v", foreign)
		}
	})

	t.Run("RepushSameVersionIsIdempotent", func(t *testing.T) {
		ctx := context.Background()
		adapter := newAdapter(t)
		config := &RdcConfig{ID: "g1", Version: 3, Storages: map[string]any{"s3": "bucket"}}

		mustPush(t, adapter, config, "staging")
		mustPush(t, adapter, config, "staging")

		pulled, err := adapter.Pull(ctx, "staging")
		if err != nil || !pulled.Success {
			t.Fatalf("Pull = %+v, %v", pulled, err)
		}
		if !reflect.DeepEqual(pulled.Config, config) {
			t.Errorf("Pull = %+v, want %+v", pulled.Config, config)
		}
	})

	t.Run("ListDeleteLifecycle", func(t *testing.T) {
		ctx := context.Background()
		adapter := newAdapter(t)

		for _, name := range []string{"zeta", "alpha", "mid"} {
			mustPush(t, adapter, &RdcConfig{ID: "id-" + name, Version: 1}, name)
		}

		names, err := adapter.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if want := []string{"alpha", "mid", "zeta"}; !reflect.DeepEqual(names, want) {
			t.Fatalf("List = %v, want %v", names, want)
		}

		deleted, err := adapter.Delete(ctx, "mid")
		if err != nil || !deleted.Success {
			t.Fatalf("Delete = %+v, %v", deleted, err)
		}

		missing, err := adapter.Delete(ctx, "mid")
		if err != nil {
			t.Fatalf("Delete of missing config returned an error: %v", err)
		}
		if missing.Success || !errors.Is(missing.Err, rerrors.ErrConfigNotFound) {
			t.Fatalf("Expected not-found result, got %+v", missing)
		}

		pulled, err := adapter.Pull(ctx, "mid")
		if err != nil {
			t.Fatalf("Pull failed: %v", err)
		}
		if pulled.Success || !errors.Is(pulled.Err, rerrors.ErrConfigNotFound) {
			t.Fatalf("Expected not-found pull, got %+v", pulled)
		}
	})

	t.Run("InvalidInputIsReported", func(t *testing.T) {
		ctx := context.Background()
		adapter := newAdapter(t)

		result, err := adapter.Push(ctx, &RdcConfig{ID: "g1", Version: 0}, "prod")
		if err != nil || !errors.Is(result.Err, rerrors.ErrInvalidConfig) {
			t.Fatalf("Expected invalid config result, got %+v, %v", result, err)
		}

		result, err = adapter.Push(ctx, &RdcConfig{ID: "g1", Version: 1}, "../escape")
		if err != nil || !errors.Is(result.Err, rerrors.ErrInvalidConfig) {
			t.Fatalf("Expected invalid name result, got %+v, %v", result, err)
		}
	})
}

func mustPush(t *testing.T, adapter Adapter, config *RdcConfig, name string) {
	t.Helper()
	result, err := adapter.Push(context.Background(), config, name)
	if err != nil {
		t.Fatalf("Push(%s v%d) failed: %v", name, config.Version, err)
	}
	if !result.Success {
		t.Fatalf("Push(%s v%d) rejected: %v", name, config.Version, result.Err)
	}
}
