package actions

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

func mustPass(t *testing.T, cmd handlers.Command, ctx handlers.Context) {
	t.Helper()
	if res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints()); !res.OK() {
		t.Fatalf("%s: constraints failed: %s", cmd.ActionName(), res)
	}
}

func TestTrainGain(t *testing.T) {
	ctx := fixture()
	cmd := NewTrain(ctx)
	mustPass(t, cmd, ctx)

	res := cmd.Run(rng.New("train"))
	if !res.Success {
		t.Fatalf("train failed: %v", res.Logs)
	}
	// 90*100/500*0.05 = 0.9 -> 1
	if got := res.Message.StatChanges.Int("train"); got != 1 {
		t.Errorf("train = %d, want 1", got)
	}
	// Дух 50 -> 45
	if got := res.Message.StatChanges.Int("atmos"); got != -5 {
		t.Errorf("atmos = %d, want -5", got)
	}
	if res.Message.DexChanges == nil || res.Message.DexChanges.Amount != 1 {
		t.Errorf("dex = %+v", res.Message.DexChanges)
	}
}

func TestTrainRequiresCrew(t *testing.T) {
	ctx := fixture()
	ctx.Actor.Crew = 0
	res := constraints.TestAll(NewTrain(ctx).FullConstraints(), ctx.Constraints())
	if res.OK() || res.Reason != "병사가 부족합니다. (필요: 1)" {
		t.Errorf("got %s", res)
	}
}

func TestDonateIsCappedByHoldings(t *testing.T) {
	ctx := fixture()
	ctx.Actor.Gold = 300

	cmd, err := handlers.WithArgs(NewDonate)(ctx, json.RawMessage(`{"isGold":true,"amount":1000}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	mustPass(t, cmd, ctx)

	res := cmd.Run(rng.New("donate"))
	if !res.Success {
		t.Fatalf("donate failed: %v", res.Logs)
	}
	if got := res.Message.StatChanges.Int("gold"); got != -300 {
		t.Errorf("stat gold = %d, want -300", got)
	}
	if got := res.Message.NationChanges.Int("gold"); got != 300 {
		t.Errorf("nation gold = %d, want 300", got)
	}
	if !strings.HasPrefix(res.Logs[0], "금 <C>300</>을 헌납했습니다.") {
		t.Errorf("log = %q", res.Logs[0])
	}
}

func TestResourceAmount(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 100},
		{99, 100},
		{150, 100},
		{1299, 1200},
		{50000, 10000},
	}
	for _, tt := range tests {
		if got := resourceAmount(tt.in); got != tt.want {
			t.Errorf("resourceAmount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGiftKeepsReserve(t *testing.T) {
	ctx := fixture()
	ctx.Actor.Rice = 150
	ctx.DestGeneral = &domain.General{ID: 2, Name: "관우", NationID: 1, CityID: 10}

	cmd, err := handlers.WithArgs(NewGift)(ctx, json.RawMessage(`{"isGold":false,"amount":1000,"destGeneralId":2}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	res := cmd.Run(rng.New("gift"))
	if !res.Success {
		t.Fatalf("gift failed: %v", res.Logs)
	}
	if got := res.Message.StatChanges.Int("rice"); got != -50 {
		t.Errorf("rice = %d, want -50", got)
	}
	if got := res.Message.DestGeneralChanges.Int("generalId"); got != 2 {
		t.Errorf("generalId = %d", got)
	}

	ctx.Actor.Rice = 100
	res = NewGift(ctx, api.GiftArgs{ResourceArgs: api.ResourceArgs{Amount: 500}, DestGeneralID: 2}).Run(rng.New("gift"))
	if res.Success || res.Logs[0] != "증여할 쌀이 부족합니다." {
		t.Errorf("got %+v", res)
	}
}

func TestConscriptFreshCrew(t *testing.T) {
	ctx := fixture()
	g := ctx.Actor
	g.Leadership, g.Crew, g.CrewType, g.Train, g.Atmos = 60, 0, 0, 0, 0

	cmd, err := handlers.WithArgs(NewRecruit(Conscription))(ctx, json.RawMessage(`{"crewType":0,"amount":500}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	mustPass(t, cmd, ctx)

	res := cmd.Run(rng.New("recruit"))
	if !res.Success {
		t.Fatalf("recruit failed: %v", res.Logs)
	}
	sc := res.Message.StatChanges
	if sc.Int("crew") != 500 || sc.Int("train") != 40 || sc.Int("atmos") != 40 {
		t.Errorf("crew/train/atmos = %d/%d/%d, want 500/40/40", sc.Int("crew"), sc.Int("train"), sc.Int("atmos"))
	}
	// 10 * 1 * 500/100
	if sc.Int("gold") != -50 || sc.Int("rice") != -5 {
		t.Errorf("gold/rice = %d/%d", sc.Int("gold"), sc.Int("rice"))
	}
	if got := res.Message.CityChanges.Int(domain.CityPop); got != -500 {
		t.Errorf("pop = %d, want -500", got)
	}
	if !strings.HasPrefix(res.Logs[0], "보병 <C>500</>명을 징병했습니다.") {
		t.Errorf("log = %q", res.Logs[0])
	}
}

func TestRecruitMergesSameCrewType(t *testing.T) {
	ctx := fixture()
	g := ctx.Actor
	g.Crew, g.CrewType, g.Train, g.Atmos = 1000, 0, 80, 60

	cmd := NewRecruit(Enlistment)(ctx, api.RecruitArgs{CrewType: 0, Amount: 1000})
	res := cmd.Run(rng.New("merge"))
	sc := res.Message.StatChanges
	// (1000*80 + 1000*70) / 2000 = 75, (1000*60 + 1000*70) / 2000 = 65
	if sc.Int("crew") != 1000 || sc.Int("train") != -5 || sc.Int("atmos") != 5 {
		t.Errorf("crew/train/atmos = %d/%d/%d", sc.Int("crew"), sc.Int("train"), sc.Int("atmos"))
	}
	if !strings.Contains(res.Logs[0], "추가모병") {
		t.Errorf("log = %q", res.Logs[0])
	}
}

func TestRecruitRejectsUnavailableCrewType(t *testing.T) {
	ctx := fixture()
	cmd := NewRecruit(Conscription)(ctx, api.RecruitArgs{CrewType: 7, Amount: 100})
	res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints())
	if res.OK() || res.Reason != "해당 병종을 모집할 수 없습니다." {
		t.Errorf("got %s", res)
	}
}

func TestBattleStanceTerms(t *testing.T) {
	ctx := fixture()
	ctx.Actor.Train, ctx.Actor.Atmos = 20, 20
	code := domain.CmdBattleStance.String()

	for i, want := range []int{1, 2, 3, 1} {
		cmd := NewBattleStance(ctx)
		res := cmd.Run(rng.New("stance"))
		if !res.Success {
			t.Fatalf("step %d failed: %v", i, res.Logs)
		}
		msg := res.Message
		if msg.BattleStanceTerm != want {
			t.Fatalf("step %d: term = %d, want %d", i, msg.BattleStanceTerm, want)
		}
		done := want == BattleStanceTurns
		if msg.Completed == nil || *msg.Completed != done {
			t.Errorf("step %d: completed = %v", i, msg.Completed)
		}
		if got := msg.StatChanges.Int("gold"); got != -15 {
			t.Errorf("step %d: gold = %d, want -15", i, got)
		}
		if done {
			train := msg.StatChanges["train"]
			if !train.IsFloor() || train.Int() != ctx.Env.MaxTrainByCommand-5 {
				t.Errorf("train = %+v", train)
			}
		} else if msg.StatChanges.Has("train") {
			t.Errorf("step %d: intermediate turn changed train", i)
		}
		ctx.Actor.LastTurn = domain.LastTurn{Command: code, Term: msg.BattleStanceTerm}
	}
}

func TestDomesticRespectsCapacity(t *testing.T) {
	for _, cfg := range DomesticCommands {
		ctx := fixture()
		ctx.City.Agri, ctx.City.Comm, ctx.City.Secu, ctx.City.Def, ctx.City.Wall = 995, 995, 995, 995, 995

		for i := 0; i < 50; i++ {
			cmd := NewDomestic(cfg)(ctx)
			res := cmd.Run(rng.New(fmt.Sprintf("cap-%d", i)))
			if !res.Success {
				t.Fatalf("%s seed %d failed: %v", cfg.Name, i, res.Logs)
			}
			delta := res.Message.CityChanges.Int(cfg.CityKey)
			if delta < 0 || delta > 5 {
				t.Fatalf("%s seed %d: delta = %d, want 0..5", cfg.Name, i, delta)
			}
			if res.Message.StatChanges.Int("gold") != -ctx.Env.DevelCost {
				t.Fatalf("%s: gold = %d", cfg.Name, res.Message.StatChanges.Int("gold"))
			}
		}
	}
}

func TestDomesticFullCityIsRejected(t *testing.T) {
	ctx := fixture()
	ctx.City.Agri = ctx.City.AgriMax
	cmd := NewDomestic(DomesticCommands[0])(ctx)
	res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints())
	if res.OK() || res.Reason != "농지개간이(가) 최대치에 도달했습니다." {
		t.Errorf("got %s", res)
	}
}

func TestCommandsAreDeterministic(t *testing.T) {
	ctx := fixture()
	run := func() []string {
		s := rng.New("world-1:200-3")
		var out []string
		for _, cmd := range []handlers.Command{
			NewDomestic(DomesticCommands[0])(ctx),
			NewDrill(ctx),
			NewProcure(ctx),
			NewSettle(ctx),
			NewTechResearch(ctx),
		} {
			res := cmd.Run(s)
			out = append(out, strings.Join(res.Logs, "|"), res.MessageJSON())
		}
		return out
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("runs differ:\n%v\n%v", a, b)
	}

	single := NewDomestic(DomesticCommands[1])(ctx)
	if x, y := single.Run(rng.New("k")).MessageJSON(), single.Run(rng.New("k")).MessageJSON(); x != y {
		t.Errorf("single run differs: %s vs %s", x, y)
	}
}

func TestSabotageAlwaysCharges(t *testing.T) {
	for _, cfg := range SabotageCommands {
		hits, misses := 0, 0
		for i := 0; i < 40; i++ {
			ctx := withDestCity(fixture(), 20)
			cmd, err := handlers.WithArgs(NewSabotage(cfg))(ctx, json.RawMessage(`{"destCityId":20}`))
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			mustPass(t, cmd, ctx)

			res := cmd.Run(rng.New(fmt.Sprintf("%s-%d", cfg.Name, i)))
			if !res.Success {
				t.Fatalf("%s seed %d: %v", cfg.Name, i, res.Logs)
			}
			msg := res.Message
			if msg.SabotageSucceeded == nil {
				t.Fatalf("%s: no sabotage outcome", cfg.Name)
			}
			if *msg.SabotageSucceeded {
				hits++
				if msg.DestCityChanges.Int("cityId") != 20 {
					t.Errorf("%s: dest city changes = %v", cfg.Name, msg.DestCityChanges)
				}
			} else {
				misses++
				if msg.StatChanges.Int("gold") != -25 || msg.StatChanges.Int("rice") != -25 {
					t.Errorf("%s miss: stat = %v", cfg.Name, msg.StatChanges)
				}
			}
		}
		if hits+misses != 40 {
			t.Errorf("%s: %d outcomes", cfg.Name, hits+misses)
		}
	}
}

func TestSabotageOwnCityIsRejected(t *testing.T) {
	ctx := withDestCity(fixture(), 20)
	ctx.DestCity.NationID = 1
	cmd := NewSabotage(SabotageCommands[0])(ctx, api.DestCityArgs{DestCityID: 20})
	if res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints()); res.OK() {
		t.Error("sabotage against own city passed constraints")
	}
}

// Город, подставленный вызывающим, должен совпасть с destCityId.
func TestDestCityMustMatchArgs(t *testing.T) {
	ctx := withDestCity(fixture(), 20)
	args := api.DestCityArgs{DestCityID: 30}
	cmds := []handlers.Command{NewSpy(ctx, args), NewSabotage(SabotageCommands[0])(ctx, args)}
	for _, cmd := range cmds {
		res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints())
		if res.OK() || res.Reason != "목적지 도시 정보가 일치하지 않습니다." {
			t.Errorf("%s: got %s", cmd.ActionName(), res)
		}
	}
}

func TestSpyDistanceDetail(t *testing.T) {
	tests := []struct {
		dest     int64
		dist     int
		lines    int
		headline string
	}{
		{20, 1, 6, "정보를 많이 얻었습니다."},
		{30, 2, 4, "정보를 어느 정도 얻었습니다."},
		{40, 3, 3, "소문만 들을 수 있었습니다."},
		{99, 3, 3, "소문만 들을 수 있었습니다."},
	}
	for _, tt := range tests {
		ctx := withDestCity(fixture(), tt.dest)
		cmd := NewSpy(ctx, api.DestCityArgs{DestCityID: tt.dest}).(*Spy)
		if got := cmd.Distance(); got != tt.dist {
			t.Errorf("dest %d: distance = %d, want %d", tt.dest, got, tt.dist)
		}

		res := cmd.Run(rng.New("spy"))
		if !res.Success {
			t.Fatalf("dest %d: %v", tt.dest, res.Logs)
		}
		// Глобальная строка + отчёт
		if len(res.Logs) != tt.lines {
			t.Errorf("dest %d: %d lines, want %d: %v", tt.dest, len(res.Logs), tt.lines, res.Logs)
		}
		if !strings.HasPrefix(res.Logs[0], handlers.ChannelGlobal) {
			t.Errorf("dest %d: first line = %q", tt.dest, res.Logs[0])
		}
		if !strings.Contains(res.Logs[1], tt.headline) {
			t.Errorf("dest %d: headline = %q", tt.dest, res.Logs[1])
		}
		if r := res.Message.SpyResult; r == nil || r.Distance != tt.dist || r.DestCityID != tt.dest {
			t.Errorf("dest %d: spy result = %+v", tt.dest, r)
		}
		update := res.Message.NationChanges["spyUpdate"].Nested()
		if update.Int(fmt.Sprint(tt.dest)) != 3 {
			t.Errorf("dest %d: spyUpdate = %v", tt.dest, update)
		}
	}
}

func TestSpyCloseReport(t *testing.T) {
	ctx := withDestCity(fixture(), 20)
	res := NewSpy(ctx, api.DestCityArgs{DestCityID: 20}).Run(rng.New("spy"))

	want := "【<S>병종</>】 보병:1,200, 궁병:800"
	if res.Logs[4] != want {
		t.Errorf("crew line = %q, want %q", res.Logs[4], want)
	}
	// 600 - 0 = 600: 우위
	if !strings.Contains(res.Logs[5], "아국대비기술:<Y>▲</>우위") {
		t.Errorf("tech line = %q", res.Logs[5])
	}
	if res.Message.InheritancePoint != 0.5 {
		t.Errorf("inheritance = %v", res.Message.InheritancePoint)
	}
}

func TestFoundNation(t *testing.T) {
	ctx := fixture()
	ctx.Env = domain.NewEnv(190, 2, 190)
	ctx.Nation.Level = 0

	cmd, err := handlers.WithArgs(NewFoundNation)(ctx, json.RawMessage(`{"nationName":"  촉한 ","nationType":"유가","colorType":3}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	mustPass(t, cmd, ctx)

	res := cmd.Run(rng.New("found"))
	if !res.Success {
		t.Fatalf("found failed: %v", res.Logs)
	}
	nc := res.Message.NationChanges
	if nc["nationName"].Text() != "촉한" || !nc["foundNation"].Flag() || nc.Int("capital") != 10 || nc.Int("colorType") != 3 {
		t.Errorf("nation changes = %v", nc)
	}
	if res.Logs[0] != "<D><b>촉한</b></>을 건국하였습니다. <1>190년 02월</>" {
		t.Errorf("log = %q", res.Logs[0])
	}
	wantHistory := handlers.ChannelGlobalHistory + "<Y><b>【건국】</b></><D><b>촉한</b></>이 <G><b>낙양</b></>에서 일어났습니다."
	if res.Logs[1] != wantHistory {
		t.Errorf("history = %q", res.Logs[1])
	}
}

func TestFoundNationFirstMonth(t *testing.T) {
	ctx := fixture()
	ctx.Env = domain.NewEnv(190, 1, 190)
	ctx.Nation.Level = 0

	res := NewFoundNation(ctx, api.FoundNationArgs{NationName: "촉"}).Run(rng.New("found"))
	if res.Success || res.Message != nil {
		t.Fatalf("got %+v", res)
	}
	if res.Logs[0] != "다음 턴부터 건국할 수 있습니다. <1>190년 01월</>" {
		t.Errorf("log = %q", res.Logs[0])
	}
}

func TestFoundNationAfterOpening(t *testing.T) {
	ctx := fixture()
	ctx.Nation.Level = 0
	cmd := NewFoundNation(ctx, api.FoundNationArgs{NationName: "촉"})
	res := constraints.TestAll(cmd.FullConstraints(), ctx.Constraints())
	if res.OK() || res.Reason != "오프닝 기간에만 사용할 수 있습니다." {
		t.Errorf("got %s", res)
	}
}

func TestRegisterCoversAllCommands(t *testing.T) {
	reg := registrar{}
	Register(reg)
	for _, code := range []domain.CommandCode{
		domain.CmdRest, domain.CmdTrain, domain.CmdMorale, domain.CmdBattleStance,
		domain.CmdConscript, domain.CmdRecruit, domain.CmdDonate, domain.CmdGift,
		domain.CmdDrill, domain.CmdProcure, domain.CmdTradeRice, domain.CmdSettle,
		domain.CmdTechResearch, domain.CmdSpy, domain.CmdFoundNation,
		domain.CmdRaiseArmy, domain.CmdResign, domain.CmdMove, domain.CmdSortie,
	} {
		if _, ok := reg[code]; !ok {
			t.Errorf("%s is not registered", code)
		}
	}
	for _, cfg := range DomesticCommands {
		if _, ok := reg[cfg.Code]; !ok {
			t.Errorf("%s is not registered", cfg.Name)
		}
	}
	for _, cfg := range SabotageCommands {
		if _, ok := reg[cfg.Code]; !ok {
			t.Errorf("%s is not registered", cfg.Name)
		}
	}
}

type registrar map[domain.CommandCode]handlers.Factory

func (r registrar) Register(code domain.CommandCode, f handlers.Factory) { r[code] = f }

func TestTradeRice(t *testing.T) {
	ctx := fixture()
	ctx.City.Trade = 120

	res := NewTradeRice(ctx, api.TradeArgs{BuyRice: false, Amount: 1000}).Run(rng.New("trade"))
	sc := res.Message.StatChanges
	// 1000 * 1.2 = 1200, пошлина 1%
	if sc.Int("rice") != -1000 || sc.Int("gold") != 1188 || *res.Message.NationTax != 12 {
		t.Errorf("sell = %s", res.MessageJSON())
	}

	res = NewTradeRice(ctx, api.TradeArgs{BuyRice: true, Amount: 1000}).Run(rng.New("trade"))
	sc = res.Message.StatChanges
	// Золота хватает только на 1000 вместе с пошлиной
	if sc.Int("gold") != -1000 || sc.Int("rice") != 825 || *res.Message.NationTax != 10 {
		t.Errorf("buy = %s", res.MessageJSON())
	}
}

func TestTradeRiceNeedsTrader(t *testing.T) {
	ctx := fixture()
	cmd := NewTradeRice(ctx, api.TradeArgs{BuyRice: true, Amount: 100})
	if res := constraints.TestAll(cmd.MinConstraints(), ctx.Constraints()); res.OK() {
		t.Error("trade passed without a trader")
	}
}
