package systems

import (
	"fmt"
	"math"
	"testing"

	"opensam-core/internal/domain"
	"opensam-core/pkg/rng"
)

func TestExpLevelBonus(t *testing.T) {
	if got := ExpLevelBonus(0); got != 1 {
		t.Errorf("got %v", got)
	}
	if got := ExpLevelBonus(50); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("got %v", got)
	}
}

func TestCriticalRatio(t *testing.T) {
	tests := []struct {
		name                 string
		g                    domain.General
		stat                 string
		wantSuccess, wantFail float64
	}{
		{"dominant stat", domain.General{Leadership: 10, Strength: 10, Intel: 100}, domain.StatIntel, 0, 0},
		{"zero stat treated as one", domain.General{Leadership: 90, Strength: 90, Intel: 0}, domain.StatIntel, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, f := CriticalRatio(&tt.g, tt.stat)
			if math.Abs(s-tt.wantSuccess) > 1e-12 || math.Abs(f-tt.wantFail) > 1e-12 {
				t.Errorf("got (%v, %v), want (%v, %v)", s, f, tt.wantSuccess, tt.wantFail)
			}
		})
	}
}

func TestCriticalRatioBalanced(t *testing.T) {
	g := domain.General{Leadership: 50, Strength: 50, Intel: 50}
	s, f := CriticalRatio(&g, domain.StatIntel)
	wantFail := math.Pow(1/1.2, 1.4) - 0.3
	if math.Abs(f-wantFail) > 1e-12 {
		t.Errorf("fail = %v, want %v", f, wantFail)
	}
	if s != 0.5 {
		t.Errorf("success = %v, want clamp to 0.5", s)
	}
}

func TestNormalizeRatios(t *testing.T) {
	s, f, n := NormalizeRatios(1.4, 0.3)
	if s != 1 || f != 0 || n != 0 {
		t.Errorf("got %v %v %v", s, f, n)
	}
	s, f, n = NormalizeRatios(0.3, -0.1)
	if s != 0.3 || f != 0 || math.Abs(n-0.7) > 1e-12 {
		t.Errorf("got %v %v %v", s, f, n)
	}
}

func TestPickCriticalCertain(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := rng.New(fmt.Sprintf("certain-%d", i))
		if got := PickCritical(s, 1, 0); got != CriticalSuccess {
			t.Fatalf("seed %d: got %s", i, got)
		}
	}
}

func TestPickCriticalDistribution(t *testing.T) {
	const n = 20000
	counts := map[Critical]int{}
	for i := 0; i < n; i++ {
		counts[PickCritical(rng.New(fmt.Sprintf("crit-%d", i)), 0.2, 0.3)]++
	}
	want := map[Critical]float64{CriticalSuccess: 0.2, CriticalFail: 0.3, CriticalNormal: 0.5}
	for k, p := range want {
		got := float64(counts[k]) / n
		if math.Abs(got-p) > 0.02 {
			t.Errorf("%s: got %.3f, want %.3f", k, got, p)
		}
	}
}

func TestCriticalMultiplierRanges(t *testing.T) {
	for i := 0; i < 200; i++ {
		s := rng.New(fmt.Sprintf("mult-%d", i))
		if m := CriticalMultiplier(s, CriticalSuccess); m < 2.2 || m >= 3.0 {
			t.Fatalf("success multiplier %v", m)
		}
		if m := CriticalMultiplier(s, CriticalFail); m < 0.2 || m >= 0.4 {
			t.Fatalf("fail multiplier %v", m)
		}
	}
}

func TestCriticalMultiplierNormalKeepsStream(t *testing.T) {
	a, b := rng.New("k"), rng.New("k")
	if CriticalMultiplier(a, CriticalNormal) != 1 {
		t.Fatal("normal multiplier must be 1")
	}
	if a.Float() != b.Float() {
		t.Error("normal pick must not consume the stream")
	}
}
