package actions

import (
	"fmt"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/modifier"
	"opensam-core/internal/systems"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

const (
	domesticExpRate = 0.7
	reasonNoCity    = "도시 정보가 없습니다."
)

// DomesticConfig - вариант внутренней команды: какой атрибут города растёт,
// какой характеристикой и с каким штрафом на фронте.
type DomesticConfig struct {
	Code        domain.CommandCode
	Name        string
	CityKey     string
	StatKey     string
	DebuffFront float64
}

// DomesticCommands - все варианты одной внутренней команды.
var DomesticCommands = []DomesticConfig{
	{Code: domain.CmdFarmland, Name: "농지개간", CityKey: domain.CityAgri, StatKey: domain.StatIntel, DebuffFront: 0.5},
	{Code: domain.CmdCommerce, Name: "상업투자", CityKey: domain.CityComm, StatKey: domain.StatIntel, DebuffFront: 0.5},
	{Code: domain.CmdSecurity, Name: "치안강화", CityKey: domain.CitySecu, StatKey: domain.StatStrength, DebuffFront: 1},
	{Code: domain.CmdDefence, Name: "수비강화", CityKey: domain.CityDef, StatKey: domain.StatStrength, DebuffFront: 0.5},
	{Code: domain.CmdWall, Name: "성벽보수", CityKey: domain.CityWall, StatKey: domain.StatStrength, DebuffFront: 0.25},
}

// Domestic - развитие атрибута города.
type Domestic struct {
	handlers.Base
	cfg DomesticConfig
}

// NewDomestic возвращает фабрику варианта cfg.
func NewDomestic(cfg DomesticConfig) handlers.EmptyFactory {
	return func(ctx handlers.Context) handlers.Command {
		return &Domestic{Base: handlers.Base{Ctx: ctx}, cfg: cfg}
	}
}

func (c *Domestic) ActionName() string { return c.cfg.Name }

func (c *Domestic) Cost() domain.Cost {
	gold := c.Ctx.Mod().Domestic(c.cfg.CityKey, modifier.Cost, float64(c.Ctx.Env.DevelCost))
	return domain.Cost{Gold: systems.Round(gold)}
}

func (c *Domestic) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
	}
}

func (c *Domestic) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
		constraints.RemainCityCapacity{Key: c.cfg.CityKey, ActionName: c.cfg.Name},
	}
}

func (c *Domestic) Run(s *rng.Stream) api.Result {
	ctx := c.Ctx
	if ctx.City == nil {
		return api.Failed(reasonNoCity)
	}

	roll := systems.RollDomestic(s, systems.DomesticParams{
		Action:   c.cfg.CityKey,
		StatKey:  c.cfg.StatKey,
		UseTrust: true,
	}, ctx.Actor, ctx.City, ctx.Mod())

	score := int(float64(roll.Score) * systems.FrontDebuff(ctx.Env, ctx.City, ctx.Nation, c.cfg.DebuffFront))
	cur, maxValue, _ := ctx.City.Attr(c.cfg.CityKey)
	delta := systems.ApplyCapacity(cur, maxValue, score)

	var logs handlers.Logs
	logs.Push(domesticLog(c.cfg.Name, roll.Pick, fmt.Sprintf("<C>%d</> 상승했습니다.", delta), c.Date()))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("gold", api.IntVal(-c.Cost().Gold)).
			Set("experience", api.IntVal(int(float64(score)*domesticExpRate))).
			Set("dedication", api.IntVal(score)).
			Set(systems.StatExpKey(c.cfg.StatKey), api.IntVal(1)),
		CityChanges:         api.Changes{}.Set(c.cfg.CityKey, api.IntVal(delta)),
		CriticalResult:      string(roll.Pick),
		MaxDomesticCritical: api.Int(systems.DomesticCritical(roll)),
	})
}

// domesticLog - "<действие>을 <исход>하여 <хвост> <1>дата</>".
func domesticLog(name string, pick systems.Critical, tail, date string) string {
	josa := domain.PickJosa(name, "을")
	var how string
	switch pick {
	case systems.CriticalFail:
		how = "<span class='ev_failed'>실패</span>하여"
	case systems.CriticalSuccess:
		how = "<S>성공</>하여"
	default:
		how = "하여"
	}
	return fmt.Sprintf("%s%s %s %s <1>%s</>", name, josa, how, tail, date)
}

// Settle (정착장려) - приток населения, ведёт полководчество, платится зерном.
type Settle struct {
	handlers.Base
}

const (
	settleAction     = "인구"
	settleCostFactor = 2
	settlePopFactor  = 10
)

func NewSettle(ctx handlers.Context) handlers.Command {
	return &Settle{Base: handlers.Base{Ctx: ctx}}
}

func (c *Settle) ActionName() string { return "정착 장려" }

func (c *Settle) Cost() domain.Cost {
	rice := c.Ctx.Mod().Domestic(settleAction, modifier.Cost, float64(c.Ctx.Env.DevelCost*settleCostFactor))
	return domain.Cost{Rice: systems.Round(rice)}
}

func (c *Settle) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
		constraints.ReqGeneralRice{Amount: c.Cost().Rice},
		constraints.RemainCityCapacity{Key: domain.CityPop, ActionName: "인구"},
	}
}

func (c *Settle) Run(s *rng.Stream) api.Result {
	ctx := c.Ctx
	if ctx.City == nil {
		return api.Failed(reasonNoCity)
	}

	roll := systems.RollDomestic(s, systems.DomesticParams{
		Action:  settleAction,
		StatKey: domain.StatLeadership,
	}, ctx.Actor, ctx.City, ctx.Mod())

	delta := systems.ApplyCapacity(ctx.City.Pop, ctx.City.PopMax, roll.Score*settlePopFactor)

	var logs handlers.Logs
	tail := "주민이 <C>" + domain.FormatNumber(delta) + "</>명 증가했습니다."
	logs.Push(domesticLog(c.ActionName(), roll.Pick, tail, c.Date()))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("rice", api.IntVal(-c.Cost().Rice)).
			Set("experience", api.IntVal(systems.Round(float64(roll.Score)*domesticExpRate))).
			Set("dedication", api.IntVal(roll.Score)).
			Set(systems.LeadershipExp, api.IntVal(1)),
		CityChanges:         api.Changes{}.Set(domain.CityPop, api.IntVal(delta)),
		CriticalResult:      string(roll.Pick),
		MaxDomesticCritical: api.Int(systems.DomesticCritical(roll)),
	})
}

// TechResearch (기술연구) - вклад в технологию государства, делится на число полководцев.
type TechResearch struct {
	handlers.Base
}

const techAction = "기술"

func NewTechResearch(ctx handlers.Context) handlers.Command {
	return &TechResearch{Base: handlers.Base{Ctx: ctx}}
}

func (c *TechResearch) ActionName() string { return "기술 연구" }

func (c *TechResearch) Cost() domain.Cost {
	gold := c.Ctx.Mod().Domestic(techAction, modifier.Cost, float64(c.Ctx.Env.DevelCost))
	return domain.Cost{Gold: systems.Round(gold)}
}

func (c *TechResearch) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
	}
}

func (c *TechResearch) Run(s *rng.Stream) api.Result {
	ctx := c.Ctx
	roll := systems.RollDomestic(s, systems.DomesticParams{
		Action:   techAction,
		StatKey:  domain.StatIntel,
		UseTrust: true,
	}, ctx.Actor, ctx.City, ctx.Mod())

	var logs handlers.Logs
	logs.Push(domesticLog(c.ActionName(), roll.Pick, fmt.Sprintf("<C>%d</> 상승했습니다.", roll.Score), c.Date()))

	tech, genNum := 0.0, 1
	if ctx.Nation != nil {
		tech = ctx.Nation.Tech
		genNum = max(genNum, ctx.Nation.GenNum)
	}
	techScore := roll.Score
	if ctx.Env.IsTechLimited(ctx.Env.RelYear(), tech) {
		techScore /= 4
	}
	genNum = max(ctx.Env.InitialNationGenLimit, genNum)

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("gold", api.IntVal(-c.Cost().Gold)).
			Set("experience", api.IntVal(int(float64(roll.Score)*domesticExpRate))).
			Set("dedication", api.IntVal(roll.Score)).
			Set(systems.IntelExp, api.IntVal(1)),
		NationChanges:       api.Changes{}.Set("tech", api.Num(float64(techScore)/float64(genNum))),
		CriticalResult:      string(roll.Pick),
		MaxDomesticCritical: api.Int(systems.DomesticCritical(roll)),
	})
}
