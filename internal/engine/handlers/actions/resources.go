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

const (
	// generalMinimumResource - неприкосновенный запас полководца.
	generalMinimumResource = 100
	// maxResourceActionAmount - предел одной передачи ресурса.
	maxResourceActionAmount = 10000
)

// resourceAmount округляет запрос вниз до сотен и держит в [100, 10000].
func resourceAmount(raw int) int {
	return max(100, min((raw/100)*100, maxResourceActionAmount))
}

// resource возвращает ключ, название и текущий запас полководца.
func resource(g *domain.General, isGold bool) (key, name string, current int) {
	if isGold {
		return "gold", "금", g.Gold
	}
	return "rice", "쌀", g.Rice
}

func reqResource(isGold bool, amount int) constraints.Constraint {
	if isGold {
		return constraints.ReqGeneralGold{Amount: amount}
	}
	return constraints.ReqGeneralRice{Amount: amount}
}

// Donate (헌납) - передача своего золота или зерна в казну.
type Donate struct {
	handlers.Base
	args api.ResourceArgs
}

func NewDonate(ctx handlers.Context, args api.ResourceArgs) handlers.Command {
	return &Donate{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *Donate) ActionName() string { return "헌납" }

func (c *Donate) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
		reqResource(c.args.IsGold, generalMinimumResource),
	}
}

func (c *Donate) Run(_ *rng.Stream) api.Result {
	key, name, current := resource(c.Ctx.Actor, c.args.IsGold)
	amount := min(resourceAmount(c.args.Amount), current)

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("%s <C>%d</>을 헌납했습니다. <1>%s</>", name, amount, c.Date()))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set(key, api.IntVal(-amount)).
			Set("experience", api.IntVal(70)).
			Set("dedication", api.IntVal(100)).
			Set(systems.LeadershipExp, api.IntVal(1)),
		NationChanges: api.Changes{}.Set(key, api.IntVal(amount)),
	})
}

// Gift (증여) - передача ресурса полководцу своего государства.
// Неприкосновенный запас остаётся у дарителя.
type Gift struct {
	handlers.Base
	args api.GiftArgs
}

func NewGift(ctx handlers.Context, args api.GiftArgs) handlers.Command {
	return &Gift{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *Gift) ActionName() string { return "증여" }

func (c *Gift) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
	}
}

func (c *Gift) FullConstraints() []constraints.Constraint {
	return append(c.MinConstraints(),
		constraints.ExistsDestGeneral{},
		constraints.FriendlyDestGeneral{},
	)
}

func (c *Gift) Run(_ *rng.Stream) api.Result {
	dest := c.Ctx.DestGeneral
	if dest == nil {
		return api.Failed("대상 장수를 찾을 수 없습니다.")
	}

	key, name, current := resource(c.Ctx.Actor, c.args.IsGold)
	amount := min(resourceAmount(c.args.Amount), max(0, current-generalMinimumResource))
	if amount <= 0 {
		return api.Failed(fmt.Sprintf("증여할 %s 부족합니다.", domain.WithJosa(name, "이")))
	}

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<Y>%s</>에게 %s <C>%d</>을 증여했습니다. <1>%s</>", dest.Name, name, amount, c.Date()))

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set(key, api.IntVal(-amount)).
			Set("experience", api.IntVal(70)).
			Set("dedication", api.IntVal(100)).
			Set(systems.LeadershipExp, api.IntVal(1)),
		DestGeneralChanges: api.Changes{}.
			Set("generalId", api.Num(float64(dest.ID))).
			Set(key, api.IntVal(amount)),
	})
}
