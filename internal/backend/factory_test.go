package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"spendtrack/internal/config"
)

func TestCreateBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		name   string
		config Config
	}{
		{"memory", Config{Type: MemoryBackend}},
		{"file", Config{Type: FileBackend, DataDirectory: filepath.Join(dir, "files")}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "db", "spendtrack.db")}},
		{"redis", Config{Type: RedisBackend, RedisAddr: mr.Addr()}},
	}

	ctx := context.Background()
	factory := NewFactory(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := factory.CreateBackend(ctx, tt.config)
			if err != nil {
				t.Fatalf("CreateBackend() error = %v", err)
			}
			defer result.Close()

			if err := result.Store.Set(ctx, "spending-tracker-budgets", "[]"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, ok, err := result.Store.Get(ctx, "spending-tracker-budgets")
			if err != nil || !ok || got != "[]" {
				t.Fatalf("Get() = %q, %v, %v", got, ok, err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "files", "spending-tracker-budgets.json")); err != nil {
		t.Errorf("file backend should write into its directory: %v", err)
	}
}

func TestCreateBackendRejectsInvalidConfig(t *testing.T) {
	factory := NewFactory(nil)
	for _, cfg := range []Config{
		{Type: "sheets"},
		{Type: FileBackend},
		{Type: SQLiteBackend},
		{Type: RedisBackend},
	} {
		if _, err := factory.CreateBackend(context.Background(), cfg); err == nil {
			t.Errorf("CreateBackend(%+v) should fail", cfg)
		}
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("nil app config should fail")
	}

	app := &config.Config{DataBackend: "redis", RedisAddr: "cache:6379", RedisDB: 2, DataDir: "d"}
	cfg, err := FromAppConfig(app)
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != RedisBackend || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 2 || cfg.DataDirectory != "d" {
		t.Errorf("FromAppConfig() = %+v", cfg)
	}

	app.DataBackend = "sheets"
	if _, err := FromAppConfig(app); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	want := []string{"memory", "file", "sqlite", "redis"}
	if len(got) != len(want) {
		t.Fatalf("GetBackendTypeStrings() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetBackendTypeStrings()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
