package domain

import "testing"

func TestAddTermStack(t *testing.T) {
	lt := DefaultLastTurn()

	lt = lt.AddTermStack("전투태세", nil, 3)
	if lt.Term != 1 {
		t.Fatalf("first stack term = %d, want 1", lt.Term)
	}
	lt = lt.AddTermStack("전투태세", map[string]any{}, 3)
	if lt.Term != 2 {
		t.Fatalf("nil and empty args must match, term = %d", lt.Term)
	}
	lt = lt.AddTermStack("전투태세", nil, 3)
	lt = lt.AddTermStack("전투태세", nil, 3)
	if lt.Term != 3 {
		t.Errorf("term must be capped at 3, got %d", lt.Term)
	}

	other := lt.AddTermStack("훈련", nil, 3)
	if other.Term != 1 || other.Command != "훈련" {
		t.Errorf("different command must reset: %+v", other)
	}
}

func TestTermStackArgSensitive(t *testing.T) {
	lt := LastTurn{Command: "징병", Arg: map[string]any{"amount": 500.0}, Term: 2}
	if got := lt.TermStack("징병", map[string]any{"amount": 500.0}); got != 2 {
		t.Errorf("same arg stack = %d", got)
	}
	if got := lt.TermStack("징병", map[string]any{"amount": 600.0}); got != 0 {
		t.Errorf("different arg stack = %d, want 0", got)
	}
}
