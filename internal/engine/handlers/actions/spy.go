package actions

import (
	"fmt"
	"strings"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/systems"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

// spyFarDistance - дальше двух переходов слышны только слухи.
const spyFarDistance = 3

const (
	spyUpdateLevel      = 3
	spyInheritancePoint = 0.5
)

// Spy (첩보) - разведка чужого города. Подробность сведений зависит от расстояния.
type Spy struct {
	handlers.Base
	args api.DestCityArgs
}

func NewSpy(ctx handlers.Context, args api.DestCityArgs) handlers.Command {
	return &Spy{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *Spy) ActionName() string { return "첩보" }

func (c *Spy) Cost() domain.Cost {
	v := int(float64(c.Ctx.Env.DevelCost) * 0.15)
	return domain.Cost{Gold: v, Rice: v}
}

func (c *Spy) MinConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
	}
}

func (c *Spy) FullConstraints() []constraints.Constraint {
	cost := c.Cost()
	return []constraints.Constraint{
		constraints.NotBeNeutral{},
		constraints.ExistsDestCity{ID: c.args.DestCityID},
		constraints.NotOccupiedDestCity{},
		constraints.ReqGeneralGold{Amount: cost.Gold},
		constraints.ReqGeneralRice{Amount: cost.Rice},
	}
}

// Distance - расстояние до цели: 0..2 или spyFarDistance.
func (c *Spy) Distance() int {
	d := constraints.ShortestDistance(&c.Ctx.Env.Stor, c.Ctx.Actor.CityID, c.Ctx.DestCity.ID, nil)
	if d < 0 || d >= spyFarDistance {
		return spyFarDistance
	}
	return d
}

func (c *Spy) Run(s *rng.Stream) api.Result {
	dest := c.Ctx.DestCity
	if dest == nil {
		return api.Failed(reasonNoDestCity)
	}
	dist := c.Distance()
	date := c.Date()

	var logs handlers.Logs
	logs.Global(fmt.Sprintf("누군가가 <G><b>%s</b></>%s 살피는 것 같습니다.", dest.Name, domain.PickJosa(dest.Name, "을")))

	totalCrew := 0
	for _, g := range c.Ctx.DestCityGenerals {
		totalCrew += g.Crew
	}
	brief := fmt.Sprintf("【<G>%s</>】주민:%s, 민심:%.1f, 장수:%d, 병력:%d",
		dest.Name, domain.FormatNumber(dest.Pop), dest.Trust, len(c.Ctx.DestCityGenerals), totalCrew)
	detail := fmt.Sprintf("【<M>첩보</>】농업:%s, 상업:%s, 치안:%s, 수비:%s, 성벽:%s",
		domain.FormatNumber(dest.Agri), domain.FormatNumber(dest.Comm), domain.FormatNumber(dest.Secu),
		domain.FormatNumber(dest.Def), domain.FormatNumber(dest.Wall))

	switch {
	case dist <= 1:
		logs.Push(fmt.Sprintf("<G><b>%s</b></>의 정보를 많이 얻었습니다. <1>%s</>", dest.Name, date))
		logs.Push(brief)
		logs.Push(detail)
		if summary := c.crewTypeSummary(); summary != "" {
			logs.Push("【<S>병종</>】 " + summary)
		}
		if tech := c.techComparison(); tech != "" {
			logs.Push(tech)
		}
	case dist == 2:
		logs.Push(fmt.Sprintf("<G><b>%s</b></>의 정보를 어느 정도 얻었습니다. <1>%s</>", dest.Name, date))
		logs.Push(brief)
		logs.Push(detail)
	default:
		logs.Push(fmt.Sprintf("<G><b>%s</b></>의 소문만 들을 수 있었습니다. <1>%s</>", dest.Name, date))
		logs.Push(brief)
	}

	cost := c.Cost()
	cityKey := fmt.Sprintf("%d", dest.ID)

	return api.Succeeded(logs.Lines(), &api.Message{
		StatChanges: api.Changes{}.
			Set("gold", api.IntVal(-cost.Gold)).
			Set("rice", api.IntVal(-cost.Rice)).
			Set("experience", api.IntVal(s.IntRange(1, 100))).
			Set("dedication", api.IntVal(s.IntRange(1, 70))).
			Set(systems.LeadershipExp, api.IntVal(1)),
		NationChanges: api.Changes{}.
			Set("spyUpdate", api.Nested(api.Changes{}.Set(cityKey, api.IntVal(spyUpdateLevel)))),
		SpyResult:        &api.SpyResult{DestCityID: dest.ID, Distance: dist},
		InheritancePoint: spyInheritancePoint,
	})
}

// crewTypeSummary - войска города по родам в порядке первого появления.
func (c *Spy) crewTypeSummary() string {
	var order []int
	totals := make(map[int]int)
	for _, g := range c.Ctx.DestCityGenerals {
		if g.Crew <= 0 {
			continue
		}
		if _, seen := totals[g.CrewType]; !seen {
			order = append(order, g.CrewType)
		}
		totals[g.CrewType] += g.Crew
	}

	parts := make([]string, 0, len(order))
	for _, id := range order {
		name := c.Ctx.Env.Stor.CrewTypeName(id, fmt.Sprintf("병종%d", id))
		parts = append(parts, name+":"+domain.FormatNumber(totals[id]))
	}
	return strings.Join(parts, ", ")
}

// techComparison - технология цели относительно своей.
func (c *Spy) techComparison() string {
	own, dest := c.Ctx.Nation, c.Ctx.DestNation
	if own == nil || dest == nil || own.ID == 0 || dest.ID == 0 {
		return ""
	}

	var text string
	switch diff := int(dest.Tech) - int(own.Tech); {
	case diff >= 1000:
		text = "<M>↑</>압도"
	case diff >= 250:
		text = "<Y>▲</>우위"
	case diff >= -250:
		text = "<W>↕</>대등"
	case diff >= -1000:
		text = "<G>▼</>열위"
	default:
		text = "<C>↓</>미미"
	}
	return fmt.Sprintf("【<span class='ev_notice'>%s</span>】아국대비기술:%s", dest.Name, text)
}
