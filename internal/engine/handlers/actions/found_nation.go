package actions

import (
	"fmt"
	"strings"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

const (
	foundNationExp = 1000
	foundNationDed = 1000
)

// FoundNation (건국) - бродячая армия становится государством в текущем городе.
type FoundNation struct {
	handlers.Base
	args api.FoundNationArgs
}

func NewFoundNation(ctx handlers.Context, args api.FoundNationArgs) handlers.Command {
	args.NationName = strings.TrimSpace(args.NationName)
	return &FoundNation{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *FoundNation) ActionName() string { return "건국" }

func (c *FoundNation) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.WanderingNation{},
		constraints.BeOpeningPart{},
	}
}

func (c *FoundNation) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.BeLord{},
		constraints.WanderingNation{},
		constraints.BeOpeningPart{},
		constraints.AllowJoinAction{},
	}
}

func (c *FoundNation) Run(_ *rng.Stream) api.Result {
	env := c.Ctx.Env
	date := c.Date()

	// В первый месяц сценария основывать ещё нельзя.
	if env.Year*12+env.Month <= env.StartYear*12+1 {
		return api.Failed(fmt.Sprintf("다음 턴부터 건국할 수 있습니다. <1>%s</>", date))
	}

	name := c.args.NationName
	cityName := "알 수 없음"
	if c.Ctx.City != nil {
		cityName = c.Ctx.City.Name
	}

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<D><b>%s</b></>%s 건국하였습니다. <1>%s</>", name, domain.PickJosa(name, "을"), date))
	logs.GlobalHistory(fmt.Sprintf("<Y><b>【건국】</b></><D><b>%s</b></>%s <G><b>%s</b></>에서 일어났습니다.",
		name, domain.PickJosa(name, "이"), cityName))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("experience", api.IntVal(foundNationExp)).
			Set("dedication", api.IntVal(foundNationDed)),
		NationChanges: api.Changes{}.
			Set("foundNation", api.Flag(true)).
			Set("nationName", api.Text(name)).
			Set("nationType", api.Text(c.args.NationType)).
			Set("colorType", api.IntVal(c.args.ColorType)).
			Set("level", api.IntVal(1)).
			Set("capital", api.Num(float64(c.Ctx.Actor.CityID))),
	})
}
