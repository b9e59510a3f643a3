package config

import (
	"os"
	"path/filepath"
	"testing"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "neurograph.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[physics]
link_distance = 80
charge_strength = -250

[viewport]
width = 1024
height = 768

[palette]
drug = "#112233"

[cache]
backend = "redis"

[cache.redis]
addr = "redis.internal:6379"
db = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Physics.LinkDistance != 80 {
		t.Errorf("LinkDistance = %v, want 80", cfg.Physics.LinkDistance)
	}
	if cfg.Physics.ChargeStrength != -250 {
		t.Errorf("ChargeStrength = %v, want -250", cfg.Physics.ChargeStrength)
	}
	// Omitted fields keep their defaults.
	if cfg.Physics.CollideRadius != Default().Physics.CollideRadius {
		t.Errorf("CollideRadius = %v, want default", cfg.Physics.CollideRadius)
	}
	if cfg.Palette.Drug != "#112233" {
		t.Errorf("Palette.Drug = %q, want #112233", cfg.Palette.Drug)
	}
	if cfg.Palette.Protein != Default().Palette.Protein {
		t.Errorf("Palette.Protein = %q, want default", cfg.Palette.Protein)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("Cache.Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("Redis = %+v, want addr redis.internal:6379 db 2", cfg.Cache.Redis)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "NonPositiveLinkDistance",
			content: `[physics]
link_distance = 0`,
		},
		{
			name: "RepulsionMustBeNegative",
			content: `[physics]
charge_strength = 100`,
		},
		{
			name: "ZeroViewport",
			content: `[viewport]
width = 0`,
		},
		{
			name: "UnknownCacheBackend",
			content: `[cache]
backend = "memcached"`,
		},
		{
			name: "RedisBackendWithoutAddr",
			content: `[cache]
backend = "redis"

[cache.redis]
addr = ""`,
		},
		{
			name:    "MalformedTOML",
			content: `[physics`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestForceConfig(t *testing.T) {
	cfg := Default()
	cfg.Physics.Seed = 42

	fc := cfg.ForceConfig()
	if fc.LinkDistance != cfg.Physics.LinkDistance {
		t.Errorf("LinkDistance = %v, want %v", fc.LinkDistance, cfg.Physics.LinkDistance)
	}
	if fc.Width != 800 || fc.Height != 600 {
		t.Errorf("dimensions = %vx%v, want 800x600", fc.Width, fc.Height)
	}
	if fc.Seed != 42 {
		t.Errorf("Seed = %v, want 42", fc.Seed)
	}
}
