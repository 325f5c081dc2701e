package constraints

import (
	"fmt"

	"opensam-core/internal/domain"
)

// --- Принадлежность ---

type NotBeNeutral struct{}

func (NotBeNeutral) Test(ctx *Context) Result {
	if ctx.General.IsNeutral() {
		return Fail("소속 국가가 없습니다.")
	}
	return Pass
}

type BeNeutral struct{}

func (BeNeutral) Test(ctx *Context) Result {
	if !ctx.General.IsNeutral() {
		return Fail("재야 상태여야 합니다.")
	}
	return Pass
}

// NotWanderingNation - государство не является бродячей армией (уровень 0).
type NotWanderingNation struct{}

func (NotWanderingNation) Test(ctx *Context) Result {
	if ctx.General.IsNeutral() || (ctx.Nation != nil && ctx.Nation.Level <= 0) {
		return Fail("방랑 중입니다.")
	}
	return Pass
}

// WanderingNation - нужно быть бродячей армией. Без государства правило проходит.
type WanderingNation struct{}

func (WanderingNation) Test(ctx *Context) Result {
	if ctx.Nation == nil || ctx.Nation.Level <= 0 {
		return Pass
	}
	return Fail("방랑군 상태여야 합니다.")
}

// --- Должность ---

type BeLord struct{}

func (BeLord) Test(ctx *Context) Result {
	if ctx.General.IsLord() {
		return Pass
	}
	return Fail("군주만 사용할 수 있습니다.")
}

// BeChief совпадает с BeLord для команд уровня государства.
type BeChief struct{}

func (BeChief) Test(ctx *Context) Result {
	return BeLord{}.Test(ctx)
}

type NotLord struct{}

func (NotLord) Test(ctx *Context) Result {
	if ctx.General.IsLord() {
		return Fail("군주는 사용할 수 없습니다.")
	}
	return Pass
}

// AllowJoinAction - после ухода в вольные должно пройти JoinActionLimit ходов.
type AllowJoinAction struct{}

func (AllowJoinAction) Test(ctx *Context) Result {
	if ctx.General.MakeLimit <= 0 {
		return Pass
	}
	limit := 12
	if ctx.Env != nil && ctx.Env.JoinActionLimit > 0 {
		limit = ctx.Env.JoinActionLimit
	}
	return Fail(fmt.Sprintf("재야가 된지 %d턴이 지나야 합니다.", limit))
}

// --- Ресурсы и войска ---

type ReqGeneralGold struct{ Amount int }

func (r ReqGeneralGold) Test(ctx *Context) Result {
	if ctx.General.Gold >= r.Amount {
		return Pass
	}
	return Fail(fmt.Sprintf("자금이 부족합니다. (필요: %d, 보유: %d)", r.Amount, ctx.General.Gold))
}

type ReqGeneralRice struct{ Amount int }

func (r ReqGeneralRice) Test(ctx *Context) Result {
	if ctx.General.Rice >= r.Amount {
		return Pass
	}
	return Fail(fmt.Sprintf("군량이 부족합니다. (필요: %d, 보유: %d)", r.Amount, ctx.General.Rice))
}

// ReqGeneralCrew - нужно не меньше Min солдат (Min 0 трактуется как 1).
type ReqGeneralCrew struct{ Min int }

func (r ReqGeneralCrew) Test(ctx *Context) Result {
	need := max(r.Min, 1)
	if ctx.General.Crew >= need {
		return Pass
	}
	return Fail(fmt.Sprintf("병사가 부족합니다. (필요: %d)", need))
}

type ReqGeneralTrainMargin struct{ Max int }

func (r ReqGeneralTrainMargin) Test(ctx *Context) Result {
	if ctx.General.Train < r.Max {
		return Pass
	}
	return Fail("훈련이 이미 충분합니다.")
}

type ReqGeneralAtmosMargin struct{ Max int }

func (r ReqGeneralAtmosMargin) Test(ctx *Context) Result {
	if ctx.General.Atmos < r.Max {
		return Pass
	}
	return Fail("사기가 이미 충분합니다.")
}

// ReqGeneralCrewMargin - для того же рода войск должен оставаться запас до leadership*100.
type ReqGeneralCrewMargin struct{ CrewType int }

func (r ReqGeneralCrewMargin) Test(ctx *Context) Result {
	g := ctx.General
	if r.CrewType != g.CrewType || g.Leadership*100 > g.Crew {
		return Pass
	}
	return Fail("이미 많은 병력을 보유하고 있습니다.")
}

// ReqGeneralStatValue - значение, возвращаемое Get, не меньше Min.
type ReqGeneralStatValue struct {
	Get  func(g *domain.General) int
	Name string
	Min  int
}

func (r ReqGeneralStatValue) Test(ctx *Context) Result {
	if r.Get(ctx.General) >= r.Min {
		return Pass
	}
	return Fail(fmt.Sprintf("%s이(가) %d 이상이어야 합니다.", r.Name, r.Min))
}

type NotInjured struct{ Max int }

func (r NotInjured) Test(ctx *Context) Result {
	if ctx.General.Injury <= r.Max {
		return Pass
	}
	return Fail(fmt.Sprintf("부상 상태입니다. (부상: %d, 허용: %d)", ctx.General.Injury, r.Max))
}

// --- Целевой полководец ---

type ExistsDestGeneral struct{}

func (ExistsDestGeneral) Test(ctx *Context) Result {
	if ctx.DestGeneral == nil {
		return Fail("대상 장수를 찾을 수 없습니다.")
	}
	return Pass
}

type FriendlyDestGeneral struct{}

func (FriendlyDestGeneral) Test(ctx *Context) Result {
	if ctx.DestGeneral == nil {
		return Fail("대상 장수를 찾을 수 없습니다.")
	}
	if ctx.DestGeneral.NationID != ctx.General.NationID {
		return Fail("아군 장수가 아닙니다.")
	}
	return Pass
}

// --- Служебные ---

type AlwaysFail struct{ Reason string }

func (r AlwaysFail) Test(*Context) Result { return Fail(r.Reason) }

// AvailableRecruitCrewType - род войск есть в списке доступных для набора.
type AvailableRecruitCrewType struct{ CrewType int }

func (r AvailableRecruitCrewType) Test(ctx *Context) Result {
	if ctx.Env != nil {
		for _, id := range ctx.Env.Stor.AvailableCrewTypes {
			if id == r.CrewType {
				return Pass
			}
		}
	}
	return Fail("해당 병종을 모집할 수 없습니다.")
}
