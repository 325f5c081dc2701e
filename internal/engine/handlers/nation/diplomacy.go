package nation

import (
	"fmt"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

// declareWarTerm - сколько ходов длится объявление до начала войны.
const declareWarTerm = 24

// DeclareWar (선전포고) - объявление войны соседнему государству.
type DeclareWar struct {
	handlers.Base
	args api.DestNationArgs
}

func NewDeclareWar(ctx handlers.Context, args api.DestNationArgs) handlers.Command {
	return &DeclareWar{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *DeclareWar) ActionName() string { return "선전포고" }

func (c *DeclareWar) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.BeChief{},
		constraints.NotBeNeutral{},
		constraints.OccupiedCity{},
		constraints.SuppliedCity{},
		constraints.ReqRelYear{Min: 1, Reason: "초반제한 해제 2년전부터 가능합니다."},
		constraints.ExistsDestNation{ID: c.args.DestNationID},
		constraints.DifferentDestNation{},
		constraints.NearNation{},
		constraints.DisallowDiplomacyBetweenStatus{Reasons: map[int]string{
			constraints.DiplomacyWar:        "아국과 이미 교전중입니다.",
			constraints.DiplomacyDeclared:   "아국과 이미 선포중입니다.",
			constraints.DiplomacyNonAggress: "불가침국입니다.",
		}},
	}
}

func (c *DeclareWar) Run(_ *rng.Stream) api.Result {
	n, dn := c.Ctx.Nation, c.Ctx.DestNation
	if n == nil {
		return api.Failed("국가 정보를 찾을 수 없습니다")
	}
	if dn == nil {
		return api.Failed("대상 국가 정보를 찾을 수 없습니다")
	}
	name := c.Ctx.Actor.Name
	josa := domain.PickJosa(name, "이")

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<D><b>%s</b></>에 선전 포고 했습니다.<1>%s</>", dn.Name, c.Date()))
	logs.History(fmt.Sprintf("<D><b>%s</b></>에 선전 포고", dn.Name))
	logs.NationalHistory(fmt.Sprintf("<Y>%s</>%s <D><b>%s</b></>에 선전 포고", name, josa, dn.Name))
	logs.DestNationalHistory(dn.ID, fmt.Sprintf("<D><b>%s</b></>의 <Y>%s</>%s 아국에 선전 포고", n.Name, name, josa))
	logs.GlobalAction(fmt.Sprintf("<Y>%s</>%s <D><b>%s</b></>에 <M>선전 포고</> 하였습니다.", name, josa, dn.Name))
	logs.GlobalHistory(fmt.Sprintf("<R><b>【선포】</b></><D><b>%s</b></>%s <D><b>%s</b></>에 선전 포고 하였습니다.",
		n.Name, domain.PickJosa(n.Name, "이"), dn.Name))

	return api.Succeeded(logs.Lines(), &api.Message{
		Diplomacy: &api.DiplomacyChange{
			SrcNationID:  n.ID,
			DestNationID: dn.ID,
			State:        constraints.DiplomacyDeclared,
			Term:         declareWarTerm,
		},
	})
}

// AcceptCeasefire (종전수락) - согласие на мир, предложенный полководцем государства-цели.
type AcceptCeasefire struct {
	handlers.Base
	args api.CeasefireArgs
}

func NewAcceptCeasefire(ctx handlers.Context, args api.CeasefireArgs) handlers.Command {
	return &AcceptCeasefire{Base: handlers.Base{Ctx: ctx}, args: args}
}

func (c *AcceptCeasefire) ActionName() string { return "종전 수락" }

func (c *AcceptCeasefire) FullConstraints() []constraints.Constraint {
	return []constraints.Constraint{
		constraints.BeChief{},
		constraints.NotBeNeutral{},
		constraints.ExistsDestNation{ID: c.args.DestNationID},
		constraints.ExistsDestGeneral{},
		constraints.ReqDestNationGeneralMatch{},
		constraints.AllowDiplomacyBetweenStatus{
			Allowed: []int{constraints.DiplomacyWar, constraints.DiplomacyDeclared},
			Reason:  "상대국과 선포, 전쟁중이지 않습니다.",
		},
	}
}

func (c *AcceptCeasefire) Run(_ *rng.Stream) api.Result {
	n, dn, dg := c.Ctx.Nation, c.Ctx.DestNation, c.Ctx.DestGeneral
	switch {
	case n == nil:
		return api.Failed("국가 정보를 찾을 수 없습니다")
	case dn == nil:
		return api.Failed("대상 국가 정보를 찾을 수 없습니다")
	case dg == nil:
		return api.Failed("대상 장수 정보를 찾을 수 없습니다")
	}
	name := c.Ctx.Actor.Name
	withDest := domain.PickJosa(dn.Name, "과")
	withOwn := domain.PickJosa(n.Name, "과")

	var logs handlers.Logs
	logs.Push(fmt.Sprintf("<D><b>%s</b></>%s 종전에 합의했습니다.", dn.Name, withDest))
	logs.History(fmt.Sprintf("<D><b>%s</b></>%s 종전 수락", dn.Name, withDest))
	logs.GlobalAction(fmt.Sprintf("<Y>%s</>%s <D><b>%s</b></>%s <M>종전 합의</> 하였습니다.",
		name, domain.PickJosa(name, "이"), dn.Name, withDest))
	logs.GlobalHistory(fmt.Sprintf("<Y><b>【종전】</b></><D><b>%s</b></>%s <D><b>%s</b></>%s <M>종전 합의</> 하였습니다.",
		n.Name, domain.PickJosa(n.Name, "이"), dn.Name, withDest))
	logs.NationalHistory(fmt.Sprintf("<D><b>%s</b></>%s 종전", dn.Name, withDest))
	logs.DestGeneral(dg.ID, fmt.Sprintf("<D><b>%s</b></>%s 종전에 성공했습니다.", n.Name, withOwn))
	logs.DestNationalHistory(dn.ID, fmt.Sprintf("<D><b>%s</b></>%s 종전", n.Name, withOwn))

	return api.Succeeded(logs.Lines(), &api.Message{
		Diplomacy: &api.DiplomacyChange{
			SrcNationID:  n.ID,
			DestNationID: dn.ID,
			State:        constraints.DiplomacyNeutral,
		},
	})
}
