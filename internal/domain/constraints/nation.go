package constraints

import "fmt"

const reasonNoNation = "국가 정보가 없습니다."

type ReqNationGold struct{ Amount int }

func (r ReqNationGold) Test(ctx *Context) Result {
	if ctx.Nation == nil {
		return Fail(reasonNoNation)
	}
	if ctx.Nation.Gold >= r.Amount {
		return Pass
	}
	return Fail(fmt.Sprintf("국고가 부족합니다. (필요: %d, 보유: %d)", r.Amount, ctx.Nation.Gold))
}

type ReqNationRice struct{ Amount int }

func (r ReqNationRice) Test(ctx *Context) Result {
	if ctx.Nation == nil {
		return Fail(reasonNoNation)
	}
	if ctx.Nation.Rice >= r.Amount {
		return Pass
	}
	return Fail(fmt.Sprintf("병량이 부족합니다. (필요: %d, 보유: %d)", r.Amount, ctx.Nation.Rice))
}

// ExistsDestNation - снимок государства-цели есть. Ненулевой ID должен с ним совпасть.
type ExistsDestNation struct{ ID int64 }

func (r ExistsDestNation) Test(ctx *Context) Result {
	if ctx.DestNation == nil {
		return Fail("대상 국가를 찾을 수 없습니다.")
	}
	if r.ID != 0 && ctx.DestNation.ID != r.ID {
		return Fail("대상 국가 정보가 일치하지 않습니다.")
	}
	return Pass
}

type DifferentDestNation struct{}

func (DifferentDestNation) Test(ctx *Context) Result {
	if ctx.DestNation == nil {
		return Fail("대상 국가를 찾을 수 없습니다.")
	}
	if ctx.DestNation.ID != ctx.General.NationID {
		return Pass
	}
	return Fail("자국에는 사용할 수 없습니다.")
}

// ReqDestNationGeneralMatch - полководец-цель представляет государство-цель.
type ReqDestNationGeneralMatch struct{}

func (ReqDestNationGeneralMatch) Test(ctx *Context) Result {
	if ctx.DestGeneral == nil {
		return Fail("대상 장수를 찾을 수 없습니다.")
	}
	if ctx.DestNation == nil {
		return Fail("대상 국가를 찾을 수 없습니다.")
	}
	if ctx.DestGeneral.NationID == ctx.DestNation.ID {
		return Pass
	}
	return Fail("대상 장수가 상대 국가 소속이 아닙니다.")
}

// --- Периоды сценария ---

// BeOpeningPart - идёт вступительный период (первые OpeningPartYears лет).
type BeOpeningPart struct{}

func (BeOpeningPart) Test(ctx *Context) Result {
	if ctx.Env != nil && ctx.Env.RelYear() < openingYears(ctx) {
		return Pass
	}
	return Fail("오프닝 기간에만 사용할 수 있습니다.")
}

type NotOpeningPart struct{}

func (NotOpeningPart) Test(ctx *Context) Result {
	if ctx.Env == nil || ctx.Env.RelYear() >= openingYears(ctx) {
		return Pass
	}
	return Fail("오프닝 기간에는 사용할 수 없습니다.")
}

// ReqRelYear - с начала сценария прошло не меньше Min лет.
type ReqRelYear struct {
	Min    int
	Reason string
}

func (r ReqRelYear) Test(ctx *Context) Result {
	if ctx.Env != nil && ctx.Env.RelYear() >= r.Min {
		return Pass
	}
	return Fail(r.Reason)
}

func openingYears(ctx *Context) int {
	if ctx.Env == nil || ctx.Env.OpeningPartYears <= 0 {
		return 1
	}
	return ctx.Env.OpeningPartYears
}

// --- Дипломатия ---

// Коды дипломатических состояний.
const (
	DiplomacyWar        = 0
	DiplomacyDeclared   = 1
	DiplomacyNeutral    = 2
	DiplomacyNonAggress = 7
)

// destNationID - государство цели: DestNation, а без него владелец DestCity.
func destNationID(ctx *Context) (int64, bool) {
	if ctx.DestNation != nil {
		return ctx.DestNation.ID, true
	}
	if ctx.DestCity != nil {
		return ctx.DestCity.NationID, true
	}
	return 0, false
}

func diplomacyState(ctx *Context) (int, Result) {
	dest, ok := destNationID(ctx)
	if !ok {
		return 0, Fail("상대 국가 정보가 없습니다.")
	}
	if ctx.Env == nil {
		return 0, Fail("외교 정보가 없습니다.")
	}
	state, ok := ctx.Env.Stor.DiplomacyState(ctx.General.NationID, dest)
	if !ok {
		return 0, Fail("외교 정보가 없습니다.")
	}
	return state, Pass
}

// DisallowDiplomacyBetweenStatus - отказ, если текущее состояние есть в таблице.
type DisallowDiplomacyBetweenStatus struct{ Reasons map[int]string }

func (r DisallowDiplomacyBetweenStatus) Test(ctx *Context) Result {
	state, res := diplomacyState(ctx)
	if !res.OK() {
		return res
	}
	if reason, ok := r.Reasons[state]; ok {
		return Fail(reason)
	}
	return Pass
}

// AllowDiplomacyBetweenStatus - состояние должно быть одним из Allowed.
type AllowDiplomacyBetweenStatus struct {
	Allowed []int
	Reason  string
}

func (r AllowDiplomacyBetweenStatus) Test(ctx *Context) Result {
	state, res := diplomacyState(ctx)
	if !res.OK() {
		return res
	}
	for _, s := range r.Allowed {
		if s == state {
			return Pass
		}
	}
	return Fail(r.Reason)
}

// AllowWar - государство не находится под запретом войны.
type AllowWar struct{}

func (AllowWar) Test(ctx *Context) Result {
	if ctx.Nation == nil {
		return Fail(reasonNoNation)
	}
	if ctx.Nation.WarState == 0 {
		return Pass
	}
	return Fail("현재 전쟁 금지입니다.")
}
