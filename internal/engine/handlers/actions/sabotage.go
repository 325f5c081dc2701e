package actions

import (
	"fmt"
	"math"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/modifier"
	"opensam-core/internal/systems"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

const (
	reasonNoDestCity = "목적지 도시 정보가 없습니다."
	// sabotageAction - ключ модификаторов для всех диверсий.
	sabotageAction = "계략"
	// cityStateSabotaged - состояние города после удачной диверсии.
	cityStateSabotaged = 32
)

// SabotageEffect - последствия удачной диверсии для города-цели.
// Дописывает строки повествования и поля диффа.
type SabotageEffect func(c *Sabotage, s *rng.Stream, injured int, logs *handlers.Logs, msg *api.Message)

// SabotageConfig - вариант диверсии.
type SabotageConfig struct {
	Code    domain.CommandCode
	Name    string
	StatKey string
	// Injury - защитники могут получить ранения.
	Injury bool
	Effect SabotageEffect
}

// SabotageCommands - 화계, 선동, 탈취.
var SabotageCommands = []SabotageConfig{
	{Code: domain.CmdFireAttack, Name: "화계", StatKey: domain.StatIntel, Injury: true, Effect: burnCity},
	{Code: domain.CmdAgitate, Name: "선동", StatKey: domain.StatLeadership, Injury: true, Effect: agitateCity},
	{Code: domain.CmdSeize, Name: "탈취", StatKey: domain.StatStrength, Effect: seizeCity},
}

// Sabotage - диверсия против чужого города.
//
// Промах тоже успешная команда: плата и немного опыта списываются,
// sabotageSucceeded=false.
type Sabotage struct {
	handlers.Base
	cfg  SabotageConfig
	args api.DestCityArgs
}

// NewSabotage возвращает фабрику варианта cfg.
func NewSabotage(cfg SabotageConfig) handlers.TypedFactory[api.DestCityArgs] {
	return func(ctx handlers.Context, args api.DestCityArgs) handlers.Command {
		return &Sabotage{Base: handlers.Base{Ctx: ctx}, cfg: cfg, args: args}
	}
}

func (c *Sabotage) ActionName() string { return c.cfg.Name }

func (c *Sabotage) Cost() domain.Cost {
	v := int(float64(c.Ctx.Env.DevelCost) * 0.25)
	return domain.Cost{Gold: v, Rice: v}
}

func (c *Sabotage) MinConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
	}
}

func (c *Sabotage) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
		constraints.ExistsDestCity{ID: c.args.DestCityID},
		constraints.NotOccupiedDestCity{},
		constraints.NotNeutralDestCity{},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
		constraints.DisallowDiplomacyBetweenStatus{Reasons: map[int]string{
			constraints.DiplomacyNonAggress: "불가침국입니다.",
		}},
	}
}

// Probability - шанс успеха с учётом защитников и расстояния.
func (c *Sabotage) Probability() float64 {
	ctx := c.Ctx
	dest := ctx.DestCity

	attack := systems.SabotageAttack(ctx.Actor.Stat(c.cfg.StatKey), ctx.Env.SabotageProbCoefByStat)
	attack = ctx.Mod().Domestic(sabotageAction, modifier.Success, attack)

	defenders := systems.Defenders(dest, ctx.DestCityGenerals)
	defence := systems.SabotageDefence(dest, defenders, c.cfg.StatKey, ctx.Env)

	dist := constraints.ShortestDistance(&ctx.Env.Stor, ctx.Actor.CityID, dest.ID, nil)
	if dist < 0 {
		dist = 1
	}
	return systems.SabotageProbability(attack, defence, dist)
}

func (c *Sabotage) Run(s *rng.Stream) api.Result {
	ctx := c.Ctx
	dest := ctx.DestCity
	if dest == nil {
		return api.Failed(reasonNoDestCity)
	}

	cost := c.Cost()
	statExp := systems.StatExpKey(c.cfg.StatKey)
	target := fmt.Sprintf("<G><b>%s</b></>", dest.Name)
	action := domain.WithJosa(c.cfg.Name, "이")

	var logs handlers.Logs
	if s.Float() >= c.Probability() {
		logs.Push(fmt.Sprintf("%s에 %s 실패했습니다. <1>%s</>", target, action, c.Date()))
		return api.Succeeded(logs.Lines(), &api.Message{
			StatChanges: api.Changes{}.
				Set("gold", api.IntVal(-cost.Gold)).
				Set("rice", api.IntVal(-cost.Rice)).
				Set("experience", api.IntVal(s.IntRange(1, 100))).
				Set("dedication", api.IntVal(s.IntRange(1, 70))).
				Set(statExp, api.IntVal(1)),
			SabotageSucceeded: api.Bool(false),
		})
	}

	msg := &api.Message{
		DestCityChanges:   api.Changes{}.Set("cityId", api.Num(float64(dest.ID))),
		SabotageSucceeded: api.Bool(true),
	}

	injured := 0
	if c.cfg.Injury {
		for _, inj := range systems.RollInjuries(s, systems.Defenders(dest, ctx.DestCityGenerals)) {
			msg.InjuredGenerals = append(msg.InjuredGenerals, api.Changes{}.
				Set("generalId", api.Num(float64(inj.GeneralID))).
				Set("injury", api.IntVal(inj.Injury)).
				Set("crew", api.IntVal(inj.Crew)).
				Set("atmos", api.IntVal(inj.Atmos)).
				Set("train", api.IntVal(inj.Train)))
			injured++
		}
	}

	c.cfg.Effect(c, s, injured, &logs, msg)

	stat := api.Changes{}.
		Set("gold", api.IntVal(-cost.Gold)).
		Set("rice", api.IntVal(-cost.Rice)).
		Set("experience", api.IntVal(s.IntRange(201, 300))).
		Set("dedication", api.IntVal(s.IntRange(141, 210))).
		Set(statExp, api.IntVal(1))
	for k, v := range msg.StatChanges {
		stat.Add(k, v.Int())
	}
	msg.StatChanges = stat

	return api.Succeeded(logs.Lines(), msg)
}

// successLine - общая строка удачной диверсии.
func (c *Sabotage) successLine(logs *handlers.Logs) {
	logs.Push(fmt.Sprintf("<G><b>%s</b></>에 %s 성공했습니다. <1>%s</>",
		c.Ctx.DestCity.Name, domain.WithJosa(c.cfg.Name, "이"), c.Date()))
}

// burnCity (화계) - урон земледелию и торговле.
func burnCity(c *Sabotage, s *rng.Stream, injured int, logs *handlers.Logs, msg *api.Message) {
	dest, env := c.Ctx.DestCity, c.Ctx.Env
	agri := systems.SabotageDamage(s, env, dest.Agri)
	comm := systems.SabotageDamage(s, env, dest.Comm)

	logs.GlobalAction(fmt.Sprintf("<G><b>%s</b></>%s 불타고 있습니다.", dest.Name, domain.PickJosa(dest.Name, "이")))
	c.successLine(logs)
	logs.Push(fmt.Sprintf("도시의 농업이 <C>%d</>, 상업이 <C>%d</>만큼 감소하고, 장수 <C>%d</>명이 부상 당했습니다.", agri, comm, injured))

	msg.DestCityChanges.
		Set(domain.CityAgri, api.IntVal(-agri)).
		Set(domain.CityComm, api.IntVal(-comm)).
		Set("state", api.IntVal(cityStateSabotaged))
}

// agitateCity (선동) - урон порядку и доверию. Доверие округляется до десятых.
func agitateCity(c *Sabotage, s *rng.Stream, injured int, logs *handlers.Logs, msg *api.Message) {
	dest, env := c.Ctx.DestCity, c.Ctx.Env
	secu := min(s.IntRange(env.SabotageDamageMin, env.SabotageDamageMax), dest.Secu)
	trust := min(float64(s.IntRange(env.SabotageDamageMin, env.SabotageDamageMax))/50, dest.Trust)
	trust = math.Round(trust*10) / 10

	logs.GlobalAction(fmt.Sprintf("<G><b>%s</b></>의 백성들이 동요하고 있습니다.", dest.Name))
	c.successLine(logs)
	logs.Push(fmt.Sprintf("도시의 치안이 <C>%s</>, 민심이 <C>%.1f</>만큼 감소하고, 장수 <C>%d</>명이 부상 당했습니다.",
		domain.FormatNumber(secu), trust, injured))

	msg.DestCityChanges.
		Set(domain.CitySecu, api.IntVal(-secu)).
		Set(domain.CityTrust, api.Num(-trust)).
		Set("state", api.IntVal(cityStateSabotaged))
}

// seizeCity (탈취) - кража золота и зерна. Снабжаемый город платит из казны
// владельца (не ниже базового запаса), отрезанный - торговлей и земледелием.
func seizeCity(c *Sabotage, s *rng.Stream, _ int, logs *handlers.Logs, msg *api.Message) {
	ctx := c.Ctx
	dest := ctx.DestCity
	neutral := ctx.Actor.IsNeutral()

	loot := systems.RollLoot(s, ctx.Env, dest, neutral)
	supplied := dest.IsSupplied()
	if supplied && ctx.DestNation != nil {
		loot.Gold = min(loot.Gold, max(0, ctx.DestNation.Gold-ctx.Env.BaseGold))
		loot.Rice = min(loot.Rice, max(0, ctx.DestNation.Rice-ctx.Env.BaseRice))
		loot.Split(neutral)
	}

	logs.Push(fmt.Sprintf("<G><b>%s</b></>에서 금과 쌀을 도둑맞았습니다.", dest.Name))
	c.successLine(logs)
	logs.Push(fmt.Sprintf("금<C>%d</> 쌀<C>%d</>을 획득했습니다.", loot.Gold, loot.Rice))

	if supplied {
		msg.DestNationChanges = api.Changes{}.
			Set("gold", api.IntVal(-loot.Gold)).
			Set("rice", api.IntVal(-loot.Rice))
	} else {
		msg.DestCityChanges.
			Set(domain.CityComm, api.IntVal(-(loot.Gold / 12))).
			Set(domain.CityAgri, api.IntVal(-(loot.Rice / 12)))
	}
	if !neutral {
		msg.NationChanges = api.Changes{}.
			Set("gold", api.IntVal(loot.NationGold)).
			Set("rice", api.IntVal(loot.NationRice))
	}
	msg.StatChanges = api.Changes{}.
		Set("gold", api.IntVal(loot.OwnGold)).
		Set("rice", api.IntVal(loot.OwnRice))
}
