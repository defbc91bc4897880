package config

import (
	"strings"
	"testing"
)

func TestParsePowerUpsConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		wantCount   int
	}{
		{
			name: "valid config",
			yamlContent: `
powerUps:
  - id: ducktonium_detonator
    name: Ducktonium Detonator
    kind: comboExplosion
    level: 1
    upgradeable: true
    description: Big combos go boom.
  - id: one_more_quack
    name: One More Quack
    kind: acquisition
    level: 1
`,
			wantCount: 2,
		},
		{
			name:        "empty list",
			yamlContent: "powerUps: []\n",
			wantErr:     true,
			errContains: "powerUps cannot be empty",
		},
		{
			name: "duplicate id",
			yamlContent: `
powerUps:
  - {id: a, name: A, kind: comboExplosion, level: 1}
  - {id: a, name: B, kind: acquisition, level: 1}
`,
			wantErr:     true,
			errContains: "duplicate power-up id",
		},
		{
			name:        "level out of range",
			yamlContent: "powerUps:\n  - {id: a, name: A, kind: comboExplosion, level: 4}\n",
			wantErr:     true,
			errContains: "level must be between 1 and 3",
		},
		{
			name:        "missing kind",
			yamlContent: "powerUps:\n  - {id: a, name: A, level: 1}\n",
			wantErr:     true,
			errContains: "kind cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParsePowerUpsConfig([]byte(tt.yamlContent))
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
			if len(cfg.PowerUps) != tt.wantCount {
				t.Errorf("expected %d power-ups, got %d", tt.wantCount, len(cfg.PowerUps))
			}
		})
	}
}
