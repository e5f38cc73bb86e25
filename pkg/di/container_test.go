package di

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-easeform-client/cache"
	"github.com/goliatone/go-easeform-client/formclient"
)

func newContainer(t *testing.T, opts ...ContainerOption) *Container {
	t.Helper()
	c, err := NewContainer(cache.DefaultConfig(), formclient.DefaultConfig(), formclient.StaticToken("token"), opts...)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewContainer(t *testing.T) {
	c := newContainer(t)

	if c.Store() == nil {
		t.Error("expected a store instance")
	}
	if c.Client() == nil {
		t.Error("expected a client instance")
	}
	if c.CacheConfig().FormatVersion != "v1" {
		t.Errorf("unexpected cache config: %+v", c.CacheConfig())
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := cache.DefaultConfig()
	cfg.FormatVersion = ""
	if _, err := NewContainer(cfg, formclient.DefaultConfig(), formclient.StaticToken("token")); err == nil {
		t.Fatal("expected an error for invalid cache config")
	}
}

func TestContainer_SessionPathSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	first := newContainer(t, WithSessionPath(path))
	first.Store().Set("forms::list", json.RawMessage(`[]`), time.Minute)
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second := newContainer(t, WithSessionPath(path))
	entry, ok := second.Store().GetEntry("forms::list")
	if !ok {
		t.Fatal("expected entry to hydrate from the session database")
	}
	if string(entry.Data) != `[]` {
		t.Errorf("unexpected hydrated data %q", entry.Data)
	}
}

func TestContainer_WithoutDurableTier(t *testing.T) {
	c := newContainer(t, WithoutDurableTier())

	c.Store().Set("k", json.RawMessage(`1`), time.Minute)
	if _, ok := c.Store().Get("k"); !ok {
		t.Error("expected volatile cache to work without a durable tier")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close without a tier returned error: %v", err)
	}
}

func TestContainer_IsolatedInstances(t *testing.T) {
	a := newContainer(t, WithoutDurableTier())
	b := newContainer(t, WithoutDurableTier())

	a.Store().Set("k", json.RawMessage(`1`), time.Minute)
	if _, ok := b.Store().Get("k"); ok {
		t.Error("expected containers to hold independent caches")
	}
}
