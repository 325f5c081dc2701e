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
	drillExp = 100
	drillDed = 70
)

// Train (훈련) - обучение войск; моральный дух немного падает.
type Train struct {
	handlers.Base
}

func NewTrain(ctx handlers.Context) handlers.Command {
	return &Train{Base: handlers.Base{Ctx: ctx}}
}

func (c *Train) ActionName() string { return "훈련" }

func (c *Train) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.ReqGeneralCrew{},
	}
}

func (c *Train) FullConstraints() []constraints.Constraint {
	return append(c.MinConstraints(),
		constraints.ReqGeneralTrainMargin{Max: c.Ctx.Env.MaxTrainByCommand},
	)
}

func (c *Train) Run(_ *rng.Stream) api.Result {
	g, env := c.Ctx.Actor, c.Ctx.Env
	score := systems.TrainGain(g, g.Train, env.TrainDelta, env.MaxTrainByCommand, modifier.Train, c.Ctx.Mod())

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("훈련치가 <C>%d</> 상승했습니다. <1>%s</>", score, c.Date()))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("train", api.IntVal(score)).
			Set("atmos", api.IntVal(systems.SideEffectDelta(g.Atmos))).
			Set("experience", api.IntVal(drillExp)).
			Set("dedication", api.IntVal(drillDed)).
			Set(systems.LeadershipExp, api.IntVal(1)),
		DexChanges: &api.DexChange{CrewType: g.CrewType, Amount: score},
	})
}

// Morale (사기진작) - поднимает моральный дух за золото; обучение немного падает.
type Morale struct {
	handlers.Base
}

func NewMorale(ctx handlers.Context) handlers.Command {
	return &Morale{Base: handlers.Base{Ctx: ctx}}
}

func (c *Morale) ActionName() string { return "사기진작" }

func (c *Morale) Cost() domain.Cost {
	return domain.Cost{Gold: c.Ctx.Actor.Crew / 100}
}

func (c *Morale) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.ReqGeneralCrew{},
	}
}

func (c *Morale) FullConstraints() []constraints.Constraint {
	return append(c.MinConstraints(),
		constraints.ReqGeneralGold{Amount: c.Cost().Gold},
		constraints.ReqGeneralAtmosMargin{Max: c.Ctx.Env.MaxAtmosByCommand},
	)
}

func (c *Morale) Run(_ *rng.Stream) api.Result {
	g, env := c.Ctx.Actor, c.Ctx.Env
	score := systems.TrainGain(g, g.Atmos, env.AtmosDelta, env.MaxAtmosByCommand, modifier.Atmos, c.Ctx.Mod())

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("사기치가 <C>%d</> 상승했습니다. <1>%s</>", score, c.Date()))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("gold", api.IntVal(-c.Cost().Gold)).
			Set("atmos", api.IntVal(score)).
			Set("train", api.IntVal(systems.SideEffectDelta(g.Train))).
			Set("experience", api.IntVal(drillExp)).
			Set("dedication", api.IntVal(drillDed)).
			Set(systems.LeadershipExp, api.IntVal(1)),
		DexChanges: &api.DexChange{CrewType: g.CrewType, Amount: score},
	})
}

// BattleStanceTurns - сколько ходов подряд нужно для 전투태세.
const BattleStanceTurns = 3

// BattleStance (전투태세) - трёхходовая подготовка. Счётчик ходов ведёт сама команда:
// на промежуточных ходах списывается только плата, на последнем обучение и дух
// поднимаются до порога.
type BattleStance struct {
	handlers.Base
}

func NewBattleStance(ctx handlers.Context) handlers.Command {
	return &BattleStance{Base: handlers.Base{Ctx: ctx}}
}

func (c *BattleStance) ActionName() string { return "전투태세" }
func (c *BattleStance) PreReqTurn() int    { return BattleStanceTurns }
func (c *BattleStance) TracksTerm() bool   { return true }

func (c *BattleStance) Cost() domain.Cost {
	return domain.Cost{Gold: systems.CrewCost(c.Ctx.Actor.Crew, 3, c.Ctx.Nation.TechCost())}
}

func (c *BattleStance) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotWanderingNation{},
		constraints.OccupiedCity{},
		constraints.ReqGeneralCrew{},
	}
}

func (c *BattleStance) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	env := c.Ctx.Env
	return append(c.MinConstraints(),
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
		constraints.ReqGeneralTrainMargin{Max: env.MaxTrainByCommand - 10},
		constraints.ReqGeneralAtmosMargin{Max: env.MaxAtmosByCommand - 10},
	)
}

// Term - ход, которым станет текущий вызов.
func (c *BattleStance) Term() int {
	prev := c.Ctx.Actor.LastTurn.TermStack(domain.CmdBattleStance.String(), nil)
	return systems.NextTerm(prev, BattleStanceTurns)
}

func (c *BattleStance) Run(_ *rng.Stream) api.Result {
	g, env := c.Ctx.Actor, c.Ctx.Env
	req := BattleStanceTurns
	term := c.Term()
	cost := c.Cost()

	var logs handlers.Logs
	if term < req {
		logs.Push(fmt.Sprintf("병사들을 열심히 훈련중... (%d/%d) <1>%s</>", term, req, c.Date()))
		return api.Succeeded(logs.Lines(), &api.Message{
			StatChanges:      api.Changes{}.Set("gold", api.IntVal(-cost.Gold)),
			BattleStanceTerm: term,
			Completed:        api.Bool(false),
		})
	}

	logs.Push(fmt.Sprintf("전투태세 완료! (%d/%d) <1>%s</>", term, req, c.Date()))
	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("gold", api.IntVal(-cost.Gold)).
			Set("train", api.Floor(env.MaxTrainByCommand-5)).
			Set("atmos", api.Floor(env.MaxAtmosByCommand-5)).
			Set("experience", api.IntVal(drillExp*req)).
			Set("dedication", api.IntVal(drillDed*req)).
			Set(systems.LeadershipExp, api.IntVal(req)),
		DexChanges:       &api.DexChange{CrewType: g.CrewType, Amount: systems.Round(float64(g.Crew) / 100 * float64(req))},
		BattleStanceTerm: term,
		Completed:        api.Bool(true),
	})
}
