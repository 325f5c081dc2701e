package actions

import (
	"fmt"
	"math"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/systems"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

const (
	moveAtmosLoss = 5
	moveMinAtmos  = 20
	moveExp       = 50
)

// Move (이동) - переход в соседний город.
type Move struct {
	handlers.Base
	args api.DestCityArgs
}

func NewMove(ctx handlers.Context, args api.DestCityArgs) handlers.Command {
	return &Move{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *Move) ActionName() string { return "이동" }

func (c *Move) Cost() domain.Cost {
	return domain.Cost{Gold: c.Ctx.Env.DevelCost}
}

func (c *Move) MinConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
	}
}

func (c *Move) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.ExistsDestCity{ID: c.args.DestCityID},
		constraints.NotSameDestCity{},
		constraints.NearCity{MaxDistance: 1},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
	}
}

func (c *Move) Run(_ *rng.Stream) api.Result {
	dest := c.Ctx.DestCity
	if dest == nil {
		return api.Failed(reasonNoDestCity)
	}
	g := c.Ctx.Actor

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<G><b>%s</b></>%s 이동했습니다. <1>%s</>", dest.Name, domain.PickJosa(dest.Name, "으로"), c.Date()))

	atmos := max(moveMinAtmos, g.Atmos-moveAtmosLoss) - g.Atmos
	msg := &api.Message{
		StatChanges: api.Changes{}.
			Set("cityId", api.Num(float64(dest.ID))).
			Set("gold", api.IntVal(-c.Cost().Gold)).
			Set("atmos", api.IntVal(atmos)).
			Set("experience", api.IntVal(moveExp)).
			Set(systems.LeadershipExp, api.IntVal(1)),
	}
	// Правитель бродячей армии ведёт за собой всех своих.
	if n := c.Ctx.Nation; g.IsLord() && n != nil && n.Level == 0 {
		msg.RoamingMove = &api.RoamingMove{NationID: n.ID, DestCityID: dest.ID}
	}
	return api.Succeeded(logs.Lines(), msg)
}

const (
	// cityStateBattle - город под ударом, держится cityStateBattleTerm ходов.
	cityStateBattle     = 43
	cityStateBattleTerm = 3

	sortieVeteranCrew  = 500
	sortieVeteranScore = 70 * 70
)

// Sortie (출병) - выступление на вражеский или ничейный город.
// Сам бой разрешает внешний обработчик по battleTriggered.
// Если к цели не пройти через врага, исполняется 이동.
type Sortie struct {
	handlers.Base
	args api.DestCityArgs
}

func NewSortie(ctx handlers.Context, args api.DestCityArgs) handlers.Command {
	return &Sortie{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *Sortie) ActionName() string { return "출병" }

func (c *Sortie) Cost() domain.Cost {
	return domain.Cost{Rice: int(math.Round(float64(c.Ctx.Actor.Crew) / 100))}
}

func (c *Sortie) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.ReqGeneralCrew{},
		constraints.ReqGeneralRice{Amount: c.Cost().Rice},
	}
}

func (c *Sortie) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.ExistsDestCity{ID: c.args.DestCityID},
		constraints.NotOpeningPart{},
		constraints.NotSameDestCity{},
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.NotOccupiedDestCity{},
		constraints.ReqGeneralCrew{},
		constraints.ReqGeneralRice{Amount: c.Cost().Rice},
		constraints.AllowWar{},
		constraints.HasRouteWithEnemy{},
	}
}

func (c *Sortie) AlternativeCommand() (domain.CommandCode, bool) {
	return domain.CmdMove, true
}

func (c *Sortie) Run(_ *rng.Stream) api.Result {
	dest := c.Ctx.DestCity
	if dest == nil {
		return api.Failed(reasonNoDestCity)
	}
	g := c.Ctx.Actor

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<G><b>%s</b></>%s 출병했습니다. <1>%s</>", dest.Name, domain.PickJosa(dest.Name, "으로"), c.Date()))

	msg := &api.Message{
		StatChanges: api.Changes{}.Set("rice", api.IntVal(-c.Cost().Rice)),
		DexChanges:  &api.DexChange{CrewType: g.CrewType, Amount: int(math.Round(float64(g.Crew) / 100))},
		DestCityChanges: api.Changes{}.
			Set("cityId", api.Num(float64(dest.ID))).
			Set("state", api.IntVal(cityStateBattle)).
			Set("term", api.IntVal(cityStateBattleTerm)),
		BattleTriggered: api.Bool(true),
		TargetCityID:    dest.ID,
	}
	if g.Crew > sortieVeteranCrew && g.Train*g.Atmos > sortieVeteranScore {
		msg.InheritancePoint = 1
	}
	return api.Succeeded(logs.Lines(), msg)
}
