package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultMachineConfigValid(t *testing.T) {
	cfg := DefaultMachineConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultMachineConfig() is invalid: %v", err)
	}
	if len(cfg.Prizes) != 10 {
		t.Errorf("expected 10 default prizes, got %d", len(cfg.Prizes))
	}
}

func TestEmbeddedMachineYAMLMatchesDefaults(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "machine.yaml"))
	if err != nil {
		t.Skipf("data/machine.yaml not available: %v", err)
	}

	cfg, err := ParseMachineConfig(data)
	if err != nil {
		t.Fatalf("ParseMachineConfig(data/machine.yaml) error: %v", err)
	}

	def := DefaultMachineConfig()
	if cfg.Machine != def.Machine {
		t.Errorf("machine geometry differs from defaults: got %+v, want %+v", cfg.Machine, def.Machine)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("timing differs from defaults: got %+v, want %+v", cfg.Timing, def.Timing)
	}
	if len(cfg.Prizes) != len(def.Prizes) {
		t.Fatalf("prize count: got %d, want %d", len(cfg.Prizes), len(def.Prizes))
	}
	for i := range def.Prizes {
		if cfg.Prizes[i] != def.Prizes[i] {
			t.Errorf("prize #%d: got %+v, want %+v", i, cfg.Prizes[i], def.Prizes[i])
		}
	}
}

func TestParseMachineConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *MachineConfig)
	}{
		{
			name: "partial config keeps defaults",
			yamlContent: `
machine:
  neutralX: 180
prizes:
  - { id: 1, x: 200, y: 300, radius: 16, weight: 1, rarity: rare }
`,
			validate: func(t *testing.T, cfg *MachineConfig) {
				if cfg.Machine.NeutralX != 180 {
					t.Errorf("expected neutralX = 180, got %f", cfg.Machine.NeutralX)
				}
				if cfg.Machine.MaxDescentY != 400 {
					t.Errorf("expected default maxDescentY = 400, got %f", cfg.Machine.MaxDescentY)
				}
				if cfg.Timing.Descent != 1.5 {
					t.Errorf("expected default descent = 1.5, got %f", cfg.Timing.Descent)
				}
				if len(cfg.Prizes) != 1 {
					t.Fatalf("prize list must replace defaults, got %d prizes", len(cfg.Prizes))
				}
				if cfg.Prizes[0].Rarity != "rare" {
					t.Errorf("expected rare prize, got %s", cfg.Prizes[0].Rarity)
				}
			},
		},
		{
			name:        "invalid yaml",
			yamlContent: "machine: [1, 2",
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name: "duplicate prize id",
			yamlContent: `
prizes:
  - { id: 1, x: 10, y: 10, radius: 5, rarity: normal }
  - { id: 1, x: 20, y: 10, radius: 5, rarity: normal }
`,
			wantErr:     true,
			errContains: "duplicate id",
		},
		{
			name: "unknown rarity",
			yamlContent: `
prizes:
  - { id: 1, x: 10, y: 10, radius: 5, rarity: legendary }
`,
			wantErr:     true,
			errContains: "unknown rarity",
		},
		{
			name: "neutral outside range",
			yamlContent: `
machine:
  neutralX: 10
`,
			wantErr:     true,
			errContains: "neutralX",
		},
		{
			name: "bad damping",
			yamlContent: `
cable:
  damping: 1.5
`,
			wantErr:     true,
			errContains: "damping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseMachineConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
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

func TestLoadMachineConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.yaml")
	content := `
session:
  startingCoins: 3
prizes:
  - { id: 42, x: 100, y: 400, radius: 20, rarity: normal }
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadMachineConfig(path)
	if err != nil {
		t.Fatalf("LoadMachineConfig() error: %v", err)
	}
	if cfg.Session.StartingCoins != 3 {
		t.Errorf("expected startingCoins = 3, got %d", cfg.Session.StartingCoins)
	}
	if cfg.Prizes[0].ID != 42 {
		t.Errorf("expected prize id 42, got %d", cfg.Prizes[0].ID)
	}

	if _, err := LoadMachineConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRewardFor(t *testing.T) {
	r := RewardConfig{Normal: 10, RareMultiplier: 5}
	if got := r.RewardFor("normal"); got != 10 {
		t.Errorf("normal reward: got %d, want 10", got)
	}
	if got := r.RewardFor("rare"); got != 50 {
		t.Errorf("rare reward: got %d, want 50", got)
	}
}
