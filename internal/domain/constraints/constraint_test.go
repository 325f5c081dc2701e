package constraints

import "testing"

// spy считает, сколько раз его проверили.
type spy struct {
	calls int
	res   Result
}

func (s *spy) Test(*Context) Result {
	s.calls++
	return s.res
}

func TestTestAllEmptyIsPass(t *testing.T) {
	if res := TestAll(nil, newCtx()); !res.OK() {
		t.Fatalf("expected Pass, got %v", res)
	}
}

func TestTestAllAllPass(t *testing.T) {
	list := []Constraint{NotBeNeutral{}, OccupiedCity{}, ReqGeneralGold{Amount: 100}}
	if res := TestAll(list, newCtx()); !res.OK() {
		t.Fatalf("expected Pass, got %v", res)
	}
}

func TestTestAllShortCircuit(t *testing.T) {
	second := &spy{res: Fail("second")}
	list := []Constraint{AlwaysFail{Reason: "first"}, second}

	idx, res := FirstFailure(list, newCtx())
	if res.OK() || res.Reason != "first" {
		t.Fatalf("expected Fail(first), got %v", res)
	}
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
	if second.calls != 0 {
		t.Errorf("second constraint must not be evaluated, calls=%d", second.calls)
	}
}

func TestTestAllReportsFirstOfMany(t *testing.T) {
	ctx := newCtx()
	ctx.General.Gold = 10
	ctx.General.Rice = 10

	res := TestAll([]Constraint{NotBeNeutral{}, ReqGeneralGold{Amount: 100}, ReqGeneralRice{Amount: 100}}, ctx)
	want := "자금이 부족합니다. (필요: 100, 보유: 10)"
	if res.Reason != want {
		t.Errorf("got %q, want %q", res.Reason, want)
	}
}

func TestFuncAdapter(t *testing.T) {
	f := Func(func(ctx *Context) Result { return Fail("x") })
	if f.Test(newCtx()).OK() {
		t.Error("expected Fail")
	}
}

func TestResultString(t *testing.T) {
	if Pass.String() != "Pass" {
		t.Errorf("got %q", Pass.String())
	}
	if Fail("r").String() != "Fail(r)" {
		t.Errorf("got %q", Fail("r").String())
	}
}
