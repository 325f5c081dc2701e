package actions

import (
	"fmt"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/systems"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

// Drill (단련) - рост владения родом войск. Исход выбирается фиксированной
// тройкой вероятностей, а не балансом характеристик.
type Drill struct {
	handlers.Base
}

const (
	drillMinStat      = 40
	drillScoreDivisor = 200000
)

func NewDrill(ctx handlers.Context) handlers.Command {
	return &Drill{Base: handlers.Base{Ctx: ctx}}
}

func (c *Drill) ActionName() string { return "단련" }

func (c *Drill) Cost() domain.Cost {
	return domain.Cost{Gold: c.Ctx.Env.DevelCost, Rice: c.Ctx.Env.DevelCost}
}

func (c *Drill) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.ReqGeneralCrew{},
		constraints.ReqGeneralStatValue{Get: func(g *domain.General) int { return g.Train }, Name: "훈련", Min: drillMinStat},
		constraints.ReqGeneralStatValue{Get: func(g *domain.General) int { return g.Atmos }, Name: "사기", Min: drillMinStat},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
	}
}

func (c *Drill) Run(s *rng.Stream) api.Result {
	g := c.Ctx.Actor

	var pick systems.Critical
	var mult float64
	switch roll := s.Float(); {
	case roll < 0.34:
		pick, mult = systems.CriticalSuccess, 3
	case roll < 0.67:
		pick, mult = systems.CriticalNormal, 2
	default:
		pick, mult = systems.CriticalFail, 1
	}

	base := float64(g.Crew) * float64(g.Train) * float64(g.Atmos) / drillScoreDivisor
	score := systems.Round(base * mult)

	name := c.Ctx.Env.Stor.CrewTypeName(g.CrewType, "병사")
	tail := fmt.Sprintf("%s 숙련도가 <C>%s</> 향상되었습니다. <1>%s</>", name, domain.FormatNumber(score), c.Date())

	var logs handlers.Logs
	switch pick {
	case systems.CriticalFail:
		logs.Push("단련이 <span class='ev_failed'>지지부진</span>하여 " + tail)
	case systems.CriticalSuccess:
		logs.Push("단련이 <S>일취월장</>하여 " + tail)
	default:
		logs.Push(tail)
	}

	incStat := systems.PickStatExp(g, s.Float()*float64(systems.StatWeightTotal(g)))
	cost := c.Cost()

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("gold", api.IntVal(-cost.Gold)).
			Set("rice", api.IntVal(-cost.Rice)).
			Set("experience", api.IntVal(g.Crew/400)).
			Set(incStat, api.IntVal(1)),
		DexChanges:     &api.DexChange{CrewType: g.CrewType, Amount: score},
		CriticalResult: string(pick),
	})
}

// Procure (물자조달) - сбор золота или зерна в казну.
type Procure struct {
	handlers.Base
}

const (
	procureDebuffFront = 0.5
	procureExpRate     = 0.7
	procureDedRate     = 1.0
)

func NewProcure(ctx handlers.Context) handlers.Command {
	return &Procure{Base: handlers.Base{Ctx: ctx}}
}

func (c *Procure) ActionName() string { return "물자조달" }

func (c *Procure) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
	}
}

func (c *Procure) Run(s *rng.Stream) api.Result {
	g := c.Ctx.Actor

	key, name := "rice", "쌀"
	if s.Float() < 0.5 {
		key, name = "gold", "금"
	}

	score := float64(systems.StatWeightTotal(g)) * s.Range(0.8, 1.2)

	var pick systems.Critical
	switch roll := s.Float(); {
	case roll < 0.3:
		pick, score = systems.CriticalFail, score*0.5
	case roll > 0.9:
		pick, score = systems.CriticalSuccess, score*1.5
	default:
		pick = systems.CriticalNormal
	}
	if c.Ctx.City != nil && c.Ctx.City.IsFrontLine() {
		score *= procureDebuffFront
	}
	final := systems.Round(score)

	tail := fmt.Sprintf("%s <C>%d</> 조달했습니다. <1>%s</>", domain.WithJosa(name, "을"), final, c.Date())

	var logs handlers.Logs
	switch pick {
	case systems.CriticalFail:
		logs.Push("조달을 실패하여 " + tail)
	case systems.CriticalSuccess:
		logs.Push("조달을 성공하여 " + tail)
	default:
		logs.Push(tail)
	}

	incStat := systems.PickStatExp(g, s.Float()*float64(systems.StatWeightTotal(g)))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("experience", api.IntVal(systems.Round(float64(final)*procureExpRate))).
			Set("dedication", api.IntVal(systems.Round(float64(final)*procureDedRate))).
			Set(incStat, api.IntVal(1)),
		NationChanges:  api.Changes{}.Set(key, api.IntVal(final)),
		CriticalResult: string(pick),
	})
}

// TradeRice (군량매매) - обмен золота и зерна по курсу города. Пошлина уходит государству.
type TradeRice struct {
	handlers.Base
	args api.TradeArgs
}

func NewTradeRice(ctx handlers.Context, args api.TradeArgs) handlers.Command {
	return &TradeRice{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *TradeRice) ActionName() string { return "군량매매" }

func (c *TradeRice) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.ReqCityTrader{},
		constraints.OccupiedCity{AllowNeutral: true},
		constraints.SuppliedCity{},
	}
}

func (c *TradeRice) FullConstraints() []constraints.Constraint {
	return append(c.MinConstraints(), reqResource(c.args.BuyRice, 1))
}

// tradeRate - курс города; город без торговца считается по номиналу.
func (c *TradeRice) tradeRate() float64 {
	if c.Ctx.City == nil || c.Ctx.City.Trade <= 0 {
		return 1
	}
	return float64(c.Ctx.City.Trade) / 100
}

func (c *TradeRice) Run(s *rng.Stream) api.Result {
	g, env := c.Ctx.Actor, c.Ctx.Env
	amount := float64(resourceAmount(c.args.Amount))
	rate := c.tradeRate()
	gold := float64(g.Gold)

	var logs handlers.Logs
	var goldDelta, riceDelta int
	var tax float64

	if c.args.BuyRice {
		sell := min(amount*rate, gold)
		t := sell * env.ExchangeFee
		if sell+t > gold {
			sell *= gold / (sell + t)
			t = gold - sell
		}
		bought, spent := sell/rate, sell+t
		tax = t
		goldDelta, riceDelta = -systems.Round(spent), systems.Round(bought)
		logs.Push(fmt.Sprintf("군량 <C>%d</>을 사서 자금 <C>%d</>을 썼습니다. <1>%s</>", systems.Round(bought), systems.Round(spent), c.Date()))
	} else {
		sell := min(amount, float64(g.Rice))
		earned := sell * rate
		tax = earned * env.ExchangeFee
		earned -= tax
		goldDelta, riceDelta = systems.Round(earned), -systems.Round(sell)
		logs.Push(fmt.Sprintf("군량 <C>%d</>을 팔아 자금 <C>%d</>을 얻었습니다. <1>%s</>", systems.Round(sell), systems.Round(earned), c.Date()))
	}

	roll := 0.0
	if total := systems.StatWeightTotal(g); total > 0 {
		roll = float64(s.Int(total))
	}
	incStat := systems.PickStatExp(g, roll)

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("gold", api.IntVal(goldDelta)).
			Set("rice", api.IntVal(riceDelta)).
			Set("experience", api.IntVal(30)).
			Set("dedication", api.IntVal(50)).
			Set(incStat, api.IntVal(1)),
		NationTax: api.Int(systems.Round(tax)),
	})
}
