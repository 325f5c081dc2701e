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

// minTrustForRecruit - ниже этого доверия набор невозможен.
const minTrustForRecruit = 20

// Виды набора. 모병 вдвое дороже, зато новобранцы лучше обучены.
var (
	Conscription = systems.RecruitKind{Action: "징병", CostOffset: 1, DefaultTrain: 40, DefaultAtmos: 40}
	Enlistment   = systems.RecruitKind{Action: "모병", CostOffset: 2, DefaultTrain: 70, DefaultAtmos: 70}
)

// Recruit (징병, 모병) - набор солдат выбранного рода войск.
type Recruit struct {
	handlers.Base
	kind   systems.RecruitKind
	args   api.RecruitArgs
	amount int
}

// NewRecruit возвращает фабрику вида набора kind.
func NewRecruit(kind systems.RecruitKind) handlers.TypedFactory[api.RecruitArgs] {
	return func(ctx handlers.Context, args api.RecruitArgs) handlers.Command {
		return &Recruit{
			Base:   handlers.Base{Ctx: ctx},
			kind:   kind,
			args:   args,
			amount: systems.RecruitAmount(ctx.Actor, args.CrewType, args.Amount),
		}
	}
}

func (c *Recruit) ActionName() string { return c.kind.Action }

// Amount - сколько солдат будет набрано.
func (c *Recruit) Amount() int { return c.amount }

func (c *Recruit) Cost() domain.Cost {
	unit := 0.0
	if ct, ok := c.Ctx.Env.Stor.CrewTypes[c.args.CrewType]; ok {
		unit = ct.Cost
	}
	return systems.RecruitCost(c.kind, c.amount, unit, c.Ctx.Nation.TechCost(), c.Ctx.Mod())
}

func (c *Recruit) MinConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.ReqCityCapacity{Key: domain.CityPop, Name: "주민", Min: c.Ctx.Env.MinAvailableRecruitPop + systems.MinRecruitAmount},
		constraints.ReqCityTrust{Min: minTrustForRecruit},
	}
}

func (c *Recruit) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.ReqCityCapacity{Key: domain.CityPop, Name: "주민", Min: c.Ctx.Env.MinAvailableRecruitPop + c.amount},
		constraints.ReqCityTrust{Min: minTrustForRecruit},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
		constraints.ReqGeneralCrewMargin{CrewType: c.args.CrewType},
		constraints.AvailableRecruitCrewType{CrewType: c.args.CrewType},
	}
}

func (c *Recruit) Run(_ *rng.Stream) api.Result {
	g, env := c.Ctx.Actor, c.Ctx.Env
	cost := c.Cost()
	plan := systems.PlanRecruit(c.kind, g, c.Ctx.City, c.args.CrewType, c.amount, cost, c.Ctx.Mod())

	verb := c.kind.Action
	if plan.Merged {
		verb = "추가" + verb
	}
	name := env.Stor.CrewTypeName(plan.CrewType, "병사")

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("%s <C>%s</>명을 %s했습니다. <1>%s</>", name, domain.FormatNumber(plan.Amount), verb, c.Date()))

	armType := 0
	if ct, ok := env.Stor.CrewTypes[plan.CrewType]; ok {
		armType = ct.ArmType
	}

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("crew", api.IntVal(plan.NewCrew-g.Crew)).
			Set("crewType", api.IntVal(plan.CrewType)).
			Set("train", api.IntVal(plan.NewTrain-g.Train)).
			Set("atmos", api.IntVal(plan.NewAtmos-g.Atmos)).
			Set("gold", api.IntVal(-plan.Gold)).
			Set("rice", api.IntVal(-plan.Rice)).
			Set("experience", api.IntVal(plan.Amount/100)).
			Set("dedication", api.IntVal(plan.Amount/100)).
			Set(systems.LeadershipExp, api.IntVal(1)),
		CityChanges: api.Changes{}.
			Set(domain.CityPop, api.IntVal(-plan.PopLoss)).
			Set(domain.CityTrust, api.IntVal(-plan.TrustLoss)),
		DexChanges: &api.DexChange{CrewType: armType, Amount: plan.Amount / 100},
	})
}
