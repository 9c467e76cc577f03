package bootstrap

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"Vineyard/internal/cli/repo"
	"Vineyard/internal/cli/session"
	"Vineyard/internal/config"
)

func TestOpenKV_Backends(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	dir := t.TempDir()
	cfgs := map[string]*config.Config{
		config.BackendFS:     {SessionBackend: config.BackendFS, SessionDir: filepath.Join(dir, "fs")},
		config.BackendSQLite: {SessionBackend: config.BackendSQLite, ClientDBPath: filepath.Join(dir, "c.sqlite")},
		config.BackendRedis:  {SessionBackend: config.BackendRedis, RedisAddr: mr.Addr(), RedisPrefix: "t:"},
		config.BackendMemory: {SessionBackend: config.BackendMemory},
	}
	for name, cfg := range cfgs {
		kv, cleanup, err := OpenKV(cfg)
		if err != nil {
			t.Fatalf("%s: open: %v", name, err)
		}
		if !repo.IsAvailable(kv) {
			t.Fatalf("%s: must be available", name)
		}
		if err := kv.Write("auth", "v"); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		v, ok, err := kv.Read("auth")
		if err != nil || !ok || v != "v" {
			t.Fatalf("%s: read: %q ok=%v err=%v", name, v, ok, err)
		}
		if err := cleanup(); err != nil {
			t.Fatalf("%s: cleanup: %v", name, err)
		}
	}
	if !mr.Exists("t:auth") {
		t.Fatalf("redis backend must use configured prefix")
	}
}

func TestOpenKV_None(t *testing.T) {
	kv, cleanup, err := OpenKV(&config.Config{SessionBackend: config.BackendNone})
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if repo.IsAvailable(kv) {
		t.Fatalf("none backend must be unavailable")
	}
}

func TestOpenSession_MalformedState(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{SessionBackend: config.BackendFS, SessionDir: dir, LogLevel: "error"}
	kv, _, _ := OpenKV(cfg)
	if err := kv.Write(session.StorageKey, "{oops"); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := OpenSession(cfg, NewLogger(cfg))
	if !errors.Is(err, session.ErrMalformedState) {
		t.Fatalf("expected ErrMalformedState, got %v", err)
	}
}

func TestOpenSession_PersistsAcrossOpens(t *testing.T) {
	cfg := &config.Config{SessionBackend: config.BackendSQLite, ClientDBPath: filepath.Join(t.TempDir(), "c.sqlite")}
	st, _, cleanup, err := OpenSession(cfg, NewLogger(cfg))
	if err != nil {
		t.Fatal(err)
	}
	st.Update(session.NewState("acc", "ref"))
	_ = cleanup()

	st2, _, cleanup2, err := OpenSession(cfg, NewLogger(cfg))
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup2()
	if !st2.Read().Equal(session.NewState("acc", "ref")) {
		t.Fatalf("state not persisted: %+v", st2.Read())
	}
}

func TestNewClient_UsesServerURL(t *testing.T) {
	c := NewClient(&config.Config{ServerURL: "http://h:1"})
	if c.BaseURL() != "http://h:1" {
		t.Fatalf("base url %q", c.BaseURL())
	}
}
