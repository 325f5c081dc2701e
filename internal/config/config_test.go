package config

import "testing"

func TestDefault(t *testing.T) {
	d := Default()
	if d.DevelCost != 100 || d.MaxTrainByCommand != 80 || d.TrainDelta != 0.05 {
		t.Errorf("unexpected defaults: %+v", d)
	}
	if d.SabotageDamageMin != 100 || d.SabotageDamageMax != 800 {
		t.Errorf("sabotage damage defaults: %d..%d", d.SabotageDamageMin, d.SabotageDamageMax)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENSAM_DEVEL_COST", "250")
	t.Setenv("OPENSAM_TRAIN_DELTA", "0.1")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DevelCost != 250 {
		t.Errorf("DevelCost = %d, want 250", got.DevelCost)
	}
	if got.TrainDelta != 0.1 {
		t.Errorf("TrainDelta = %v, want 0.1", got.TrainDelta)
	}
	if got.BaseGold != 1000 {
		t.Errorf("BaseGold = %d, want default 1000", got.BaseGold)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("OPENSAM_DEVEL_COST", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestIsTechLimited(t *testing.T) {
	d := Default()
	tests := []struct {
		name    string
		relYear int
		tech    float64
		want    bool
	}{
		{"fresh world, no tech", 0, 0, false},
		{"fresh world, level one reached", 0, 1000, true},
		{"five years in", 5, 1500, false},
		{"five years in, capped", 5, 2000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsTechLimited(tt.relYear, tt.tech); got != tt.want {
				t.Errorf("IsTechLimited(%d, %v) = %v, want %v", tt.relYear, tt.tech, got, tt.want)
			}
		})
	}
}
