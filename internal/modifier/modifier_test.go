package modifier

import "testing"

func TestNoopKeepsValue(t *testing.T) {
	if got := (Noop{}).Domestic("agri", Score, 12.5); got != 12.5 {
		t.Errorf("got %v", got)
	}
}

func TestChainAppliesInOrder(t *testing.T) {
	c := Chain{
		Multiplier{Kind: Score, Factor: 2},
		Func(func(_ string, _ Kind, v float64) float64 { return v + 1 }),
		nil,
	}
	if got := c.Domestic("comm", Score, 10); got != 21 {
		t.Errorf("got %v, want 21", got)
	}
}

func TestMultiplierFilters(t *testing.T) {
	m := Multiplier{Action: "agri", Kind: Success, Factor: 1.5}
	tests := []struct {
		action string
		kind   Kind
		want   float64
	}{
		{"agri", Success, 0.3},
		{"comm", Success, 0.2},
		{"agri", Fail, 0.2},
	}
	for _, tt := range tests {
		if got := m.Domestic(tt.action, tt.kind, 0.2); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("%s/%v: got %v, want %v", tt.action, tt.kind, got, tt.want)
		}
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(Noop); !ok {
		t.Error("nil provider must become Noop")
	}
	m := Multiplier{Kind: Cost, Factor: 0.5}
	if OrNoop(m) != Provider(m) {
		t.Error("non-nil provider must be kept")
	}
}

func TestKindString(t *testing.T) {
	if Score.String() != "score" || Kind(99).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
