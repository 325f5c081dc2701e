// Package nation содержит команды, которые правитель отдаёт от имени государства.
package nation

import (
	"fmt"
	"math"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

// maxRewardAmount - предел одной награды из казны.
const maxRewardAmount = 100000

// Register добавляет команды государства в реестр r.
func Register(r handlers.Registrar) {
	r.Register(domain.CmdNationReward, handlers.WithArgs(NewReward))
	r.Register(domain.CmdDeclareWar, handlers.WithArgs(NewDeclareWar))
	r.Register(domain.CmdAcceptCeasefire, handlers.WithArgs(NewAcceptCeasefire))
}

// Reward (포상) - выдача золота или зерна из казны своему полководцу.
// Базовый запас казны не трогается.
type Reward struct {
	handlers.Base
	args api.GiftArgs
}

func NewReward(ctx handlers.Context, args api.GiftArgs) handlers.Command {
	return &Reward{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *Reward) ActionName() string { return "포상" }

func (c *Reward) FullConstraints() []constraints.Constraint {
	if c.args.DestGeneralID == c.Ctx.Actor.ID {
		return []constraints.Constraint{constraints.AlwaysFail{Reason: "본인입니다"}}
	}

	env := c.Ctx.Env
	var treasury constraints.Constraint = constraints.ReqNationGold{Amount: 1 + env.BaseGold}
	if !c.args.IsGold {
		treasury = constraints.ReqNationRice{Amount: 1 + env.BaseRice}
	}

	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.BeChief{},
		constraints.SuppliedCity{},
		constraints.ExistsDestGeneral{},
		constraints.FriendlyDestGeneral{},
		treasury,
	}
}

// Amount - запрошенная сумма, округлённая до сотен, в пределах [100, maxRewardAmount].
func (c *Reward) Amount() int {
	rounded := int(math.Round(float64(c.args.Amount)/100)) * 100
	return min(max(rounded, 100), maxRewardAmount)
}

func (c *Reward) Run(_ *rng.Stream) api.Result {
	dest := c.Ctx.DestGeneral
	if dest == nil {
		return api.Failed("대상 장수 정보를 찾을 수 없습니다")
	}
	n := c.Ctx.Nation
	if n == nil {
		return api.Failed("국가 정보를 찾을 수 없습니다")
	}

	env := c.Ctx.Env
	key, name, available := "gold", "금", n.Gold-env.BaseGold
	if !c.args.IsGold {
		key, name, available = "rice", "쌀", n.Rice-env.BaseRice
	}

	amount := min(c.Amount(), max(available, 0))
	if amount <= 0 {
		return api.Failed(fmt.Sprintf("%s 부족합니다", domain.WithJosa(name, "이")))
	}

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<Y>%s</>에게 %s <C>%s</>을 수여했습니다. <1>%s</>",
		dest.Name, name, domain.FormatNumber(amount), c.Date()))

	return api.Succeeded(logs.Lines(), &api.Message{
		NationChanges: api.Changes{}.Set(key, api.IntVal(-amount)),
		DestGeneralChanges: api.Changes{}.
			Set("generalId", api.Num(float64(dest.ID))).
			Set(key, api.IntVal(amount)),
	})
}
