package actions

import (
	"encoding/json"
	"testing"

	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/systems"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

func TestMoveToAdjacentCity(t *testing.T) {
	ctx := withDestCity(fixture(), 20)
	cmd, err := handlers.WithArgs(NewMove)(ctx, json.RawMessage(`{"destCityId":20}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	mustPass(t, cmd, ctx)

	res := cmd.Run(rng.New("move"))
	if !res.Success {
		t.Fatalf("move failed: %v", res.Logs)
	}
	if res.Logs[0] != "<G><b>허창</b></>으로 이동했습니다. <1>200년 03월</>" {
		t.Errorf("log = %q", res.Logs[0])
	}
	sc := res.Message.StatChanges
	if sc.Int("cityId") != 20 || sc.Int("gold") != -100 || sc.Int("atmos") != -5 || sc.Int("experience") != 50 || sc.Int(systems.LeadershipExp) != 1 {
		t.Errorf("stat changes = %v", sc)
	}
	if res.Message.RoamingMove != nil {
		t.Errorf("settled nation moved as roaming: %+v", res.Message.RoamingMove)
	}
}

func TestMoveAtmosFloor(t *testing.T) {
	ctx := withDestCity(fixture(), 20)
	ctx.Actor.Atmos = 22
	res := NewMove(ctx, api.DestCityArgs{DestCityID: 20}).Run(rng.New("move"))
	if got := res.Message.StatChanges.Int("atmos"); got != -2 {
		t.Errorf("atmos = %d, want -2", got)
	}
}

func TestMoveRoamingLord(t *testing.T) {
	ctx := withDestCity(fixture(), 20)
	ctx.Nation.Level = 0
	res := NewMove(ctx, api.DestCityArgs{DestCityID: 20}).Run(rng.New("move"))
	if r := res.Message.RoamingMove; r == nil || r.NationID != 1 || r.DestCityID != 20 {
		t.Errorf("roaming move = %+v", r)
	}
}

func TestMoveConstraints(t *testing.T) {
	tests := []struct {
		name   string
		dest   int64
		argID  int64
		reason string
	}{
		{"not adjacent", 30, 30, "인접도시가 아닙니다."},
		{"wrong resolved city", 20, 30, "목적지 도시 정보가 일치하지 않습니다."},
		{"same city", 10, 10, "현재 도시와 같은 도시입니다."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := withDestCity(fixture(), tt.dest)
			cmd := NewMove(ctx, api.DestCityArgs{DestCityID: tt.argID})
			res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints())
			if res.OK() || res.Reason != tt.reason {
				t.Errorf("got %s, want %q", res, tt.reason)
			}
		})
	}
}

// atWar - город 20 принадлежит государству 2, с которым идёт война.
func atWar(ctx handlers.Context) handlers.Context {
	ctx.Env.Stor.CityNationByID = map[int64]int64{10: 1, 20: 2, 30: 2, 40: 0}
	ctx.Env.Stor.AtWarNationIDs = []int64{2}
	return ctx
}

func TestSortieTriggersBattle(t *testing.T) {
	ctx := atWar(withDestCity(fixture(), 20))
	ctx.Actor.Crew, ctx.Actor.Train, ctx.Actor.Atmos = 1000, 80, 80
	cmd := NewSortie(ctx, api.DestCityArgs{DestCityID: 20})
	mustPass(t, cmd, ctx)

	res := cmd.Run(rng.New("sortie"))
	if !res.Success {
		t.Fatalf("sortie failed: %v", res.Logs)
	}
	msg := res.Message
	if msg.BattleTriggered == nil || !*msg.BattleTriggered || msg.TargetCityID != 20 {
		t.Errorf("battle = %v / %d", msg.BattleTriggered, msg.TargetCityID)
	}
	if msg.StatChanges.Int("rice") != -10 {
		t.Errorf("stat changes = %v", msg.StatChanges)
	}
	if msg.DexChanges == nil || msg.DexChanges.Amount != 10 {
		t.Errorf("dex = %+v", msg.DexChanges)
	}
	if msg.DestCityChanges.Int("state") != 43 || msg.DestCityChanges.Int("term") != 3 {
		t.Errorf("dest city changes = %v", msg.DestCityChanges)
	}
	if msg.InheritancePoint != 1 {
		t.Errorf("inheritance = %v", msg.InheritancePoint)
	}
}

func TestSortieGreenTroopsEarnNothing(t *testing.T) {
	ctx := atWar(withDestCity(fixture(), 20))
	res := NewSortie(ctx, api.DestCityArgs{DestCityID: 20}).Run(rng.New("sortie"))
	if res.Message.InheritancePoint != 0 {
		t.Errorf("inheritance = %v", res.Message.InheritancePoint)
	}
}

func TestSortieConstraints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ctx *handlers.Context)
		reason string
	}{
		{"own city", func(ctx *handlers.Context) { ctx.DestCity.NationID = 1 }, "아군 도시에는 사용할 수 없습니다."},
		{"not at war", func(ctx *handlers.Context) { ctx.Env.Stor.AtWarNationIDs = nil }, "교전중인 국가가 아닙니다."},
		{"war banned", func(ctx *handlers.Context) { ctx.Nation.WarState = 1 }, "현재 전쟁 금지입니다."},
		{"no crew", func(ctx *handlers.Context) { ctx.Actor.Crew = 0 }, "병사가 부족합니다. (필요: 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := atWar(withDestCity(fixture(), 20))
			tt.mutate(&ctx)
			cmd := NewSortie(ctx, api.DestCityArgs{DestCityID: 20})
			res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints())
			if res.OK() || res.Reason != tt.reason {
				t.Errorf("got %s, want %q", res, tt.reason)
			}
		})
	}

	alt, ok := NewSortie(fixture(), api.DestCityArgs{DestCityID: 20}).(*Sortie).AlternativeCommand()
	if !ok || alt.String() != "이동" {
		t.Errorf("alternative = %v %v", alt, ok)
	}
}
