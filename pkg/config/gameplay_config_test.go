package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseGameplayConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GameplayConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
run:
  duration: 90
  maxLives: 5
scoring:
  basePoints: 50
  zoneMultipliers: {body: 1, head: 2, beak: 4}
  chainMultiplier: 0.5
levels:
  baseThreshold: 500
  thresholdFactor: 2
  offerCount: 2
camera:
  position: {x: 1, y: 2, z: 30}
  focalLength: 500
  screenWidth: 800
  screenHeight: 600
`,
			validate: func(t *testing.T, cfg *GameplayConfig) {
				if cfg.Run.Duration != 90 || cfg.Run.MaxLives != 5 {
					t.Errorf("run mismatch: %+v", cfg.Run)
				}
				if cfg.Scoring.ZoneMultipliers.Beak != 4 {
					t.Errorf("expected beak multiplier 4, got %v", cfg.Scoring.ZoneMultipliers.Beak)
				}
				if cfg.Levels.ThresholdFactor != 2 {
					t.Errorf("expected threshold factor 2, got %v", cfg.Levels.ThresholdFactor)
				}
				if cfg.Camera.Position.Z != 30 {
					t.Errorf("expected camera z 30, got %v", cfg.Camera.Position.Z)
				}
				// 未配置的段落保留默认值
				if cfg.Targets.Lifetime != 5 {
					t.Errorf("expected default lifetime 5, got %v", cfg.Targets.Lifetime)
				}
				if cfg.Freeze.Duration != 10 {
					t.Errorf("expected default freeze 10, got %v", cfg.Freeze.Duration)
				}
			},
		},
		{
			name:        "threshold factor must grow",
			yamlContent: "levels:\n  thresholdFactor: 1\n",
			wantErr:     true,
			errContains: "levels.thresholdFactor must be > 1",
		},
		{
			name:        "zero lives",
			yamlContent: "run:\n  maxLives: 0\n",
			wantErr:     true,
			errContains: "run.maxLives must be >= 1",
		},
		{
			name:        "negative zone multiplier",
			yamlContent: "scoring:\n  zoneMultipliers: {body: 1, head: -2, beak: 3}\n",
			wantErr:     true,
			errContains: "zoneMultipliers",
		},
		{
			name:        "malformed yaml",
			yamlContent: "run: [unterminated",
			wantErr:     true,
			errContains: "failed to parse gameplay config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseGameplayConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadGameplayConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gameplay.yaml")
	if err := os.WriteFile(path, []byte("run:\n  duration: 30\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := LoadGameplayConfig(path)
	if err != nil {
		t.Fatalf("LoadGameplayConfig failed: %v", err)
	}
	if cfg.Run.Duration != 30 {
		t.Errorf("expected duration 30, got %v", cfg.Run.Duration)
	}

	if _, err := LoadGameplayConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultGameplayConfigIsValid(t *testing.T) {
	if err := validateGameplayConfig(DefaultGameplayConfig()); err != nil {
		t.Errorf("default gameplay config should be valid: %v", err)
	}
}
