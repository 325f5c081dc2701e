package actions

import (
	"fmt"
	"math"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

const (
	raiseArmyExp        = 100
	raiseArmyDed        = 100
	raiseArmySecretTurn = 3
)

// RaiseArmy (거병) - вольный полководец собирает бродячую армию под своим именем.
type RaiseArmy struct {
	handlers.Base
}

func NewRaiseArmy(ctx handlers.Context) handlers.Command {
	return &RaiseArmy{Base: handlers.Base{Ctx: ctx}}
}

func (c *RaiseArmy) ActionName() string { return "거병" }

func (c *RaiseArmy) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{constraints.BeNeutral{}}
}

func (c *RaiseArmy) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.BeNeutral{},
		constraints.BeOpeningPart{},
		constraints.AllowJoinAction{},
	}
}

func (c *RaiseArmy) Run(_ *rng.Stream) api.Result {
	g := c.Ctx.Actor
	cityName := "알 수 없음"
	if c.Ctx.City != nil {
		cityName = c.Ctx.City.Name
	}
	josa := domain.PickJosa(g.Name, "이")

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("거병에 성공하였습니다. <1>%s</>", c.Date()))
	logs.History(fmt.Sprintf("<G><b>%s</b></>에서 거병", cityName))
	logs.GlobalAction(fmt.Sprintf("<Y>%s</>%s <G><b>%s</b></>에 거병하였습니다.", g.Name, josa, cityName))
	logs.GlobalHistory(fmt.Sprintf("<Y><b>【거병】</b></><D><b>%s</b></>%s 세력을 결성하였습니다.", g.Name, josa))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("experience", api.IntVal(raiseArmyExp)).
			Set("dedication", api.IntVal(raiseArmyDed)).
			Set("officerLevel", api.IntVal(domain.OfficerLevelLord-g.OfficerLevel)),
		NationChanges: api.Changes{}.
			Set("createWanderingNation", api.Flag(true)).
			Set("nationName", api.Text(g.Name)).
			Set("secretLimit", api.IntVal(raiseArmySecretTurn)),
		InheritancePoint: 1,
	})
}

const (
	resignKeepGold  = 1000
	resignKeepRice  = 1000
	resignMaxBetray = 10
)

// Resign (하야) - уход из государства. Излишки золота и зерна остаются казне,
// каждый уход уменьшает опыт и преданность на 10% за прошлые измены.
type Resign struct {
	handlers.Base
}

func NewResign(ctx handlers.Context) handlers.Command {
	return &Resign{Base: handlers.Base{Ctx: ctx}}
}

func (c *Resign) ActionName() string { return "하야" }

func (c *Resign) MinConstraints() []constraints.Constraint {
	return c.FullConstraints()
}

func (c *Resign) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.NotLord{},
	}
}

func (c *Resign) Run(_ *rng.Stream) api.Result {
	g := c.Ctx.Actor
	nationName := "소속국"
	if c.Ctx.Nation != nil {
		nationName = c.Ctx.Nation.Name
	}

	keep := 1 - 0.1*float64(g.Betray)
	expLoss := g.Experience - int(math.Floor(float64(g.Experience)*keep))
	dedLoss := g.Dedication - int(math.Floor(float64(g.Dedication)*keep))
	gold := max(0, g.Gold-resignKeepGold)
	rice := max(0, g.Rice-resignKeepRice)

	limit := 12
	if env := c.Ctx.Env; env.JoinActionLimit > 0 {
		limit = env.JoinActionLimit
	}

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<D><b>%s</b></>에서 하야했습니다. <1>%s</>", nationName, c.Date()))
	logs.History(fmt.Sprintf("<D><b>%s</b></>에서 하야", nationName))
	logs.Global(fmt.Sprintf("<Y>%s</>%s <D><b>%s</b></>에서 <R>하야</>했습니다.", g.Name, domain.PickJosa(g.Name, "이"), nationName))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("experience", api.IntVal(-expLoss)).
			Set("dedication", api.IntVal(-dedLoss)).
			Set("gold", api.IntVal(-gold)).
			Set("rice", api.IntVal(-rice)).
			Set("betray", api.IntVal(min(g.Betray+1, resignMaxBetray)-g.Betray)).
			Set("makeLimit", api.IntVal(limit-g.MakeLimit)),
		NationChanges: api.Changes{}.
			Set("gold", api.IntVal(gold)).
			Set("rice", api.IntVal(rice)).
			Set("genNum", api.IntVal(-1)),
		LeaveNation:      api.Bool(true),
		DisbandTroop:     api.Bool(g.TroopID != 0 && g.TroopID == g.ID),
		InheritancePoint: 1,
	})
}
