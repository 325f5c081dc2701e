package constraints

import (
	"fmt"
	"strconv"
)

const (
	reasonNoCity     = "도시 정보가 없습니다."
	reasonNoDestCity = "목적지 도시 정보가 없습니다."
)

type OccupiedCity struct{ AllowNeutral bool }

func (r OccupiedCity) Test(ctx *Context) Result {
	if ctx.City == nil {
		return Fail(reasonNoCity)
	}
	if ctx.City.NationID == ctx.General.NationID {
		return Pass
	}
	if r.AllowNeutral && ctx.City.NationID == 0 {
		return Pass
	}
	return Fail("아군 도시가 아닙니다.")
}

type SuppliedCity struct{}

func (SuppliedCity) Test(ctx *Context) Result {
	if ctx.City == nil {
		return Fail(reasonNoCity)
	}
	if ctx.City.IsSupplied() {
		return Pass
	}
	return Fail("보급이 끊긴 도시입니다.")
}

// RemainCityCapacity - атрибут Key города ещё не достиг максимума.
// Неизвестный ключ пропускается.
type RemainCityCapacity struct {
	Key        string
	ActionName string
}

func (r RemainCityCapacity) Test(ctx *Context) Result {
	if ctx.City == nil {
		return Fail(reasonNoCity)
	}
	cur, maxValue, ok := ctx.City.Attr(r.Key)
	if !ok || cur < maxValue {
		return Pass
	}
	return Fail(r.ActionName + "이(가) 최대치에 도달했습니다.")
}

// ReqCityCapacity - атрибут Key города не меньше Min.
type ReqCityCapacity struct {
	Key  string
	Name string
	Min  int
}

func (r ReqCityCapacity) Test(ctx *Context) Result {
	if ctx.City == nil {
		return Fail(reasonNoCity)
	}
	cur, _, _ := ctx.City.Attr(r.Key)
	if cur >= r.Min {
		return Pass
	}
	return Fail(fmt.Sprintf("%s이(가) 부족합니다. (필요: %d, 현재: %d)", r.Name, r.Min, cur))
}

type ReqCityTrust struct{ Min float64 }

func (r ReqCityTrust) Test(ctx *Context) Result {
	if ctx.City == nil {
		return Fail(reasonNoCity)
	}
	if ctx.City.Trust >= r.Min {
		return Pass
	}
	return Fail("민심이 부족합니다. (필요: " + strconv.FormatFloat(r.Min, 'f', -1, 64) + ")")
}

type ReqCityTrader struct{}

func (ReqCityTrader) Test(ctx *Context) Result {
	if ctx.City == nil {
		return Fail(reasonNoCity)
	}
	if ctx.City.Trade > 0 || ctx.General.NPCState >= 2 {
		return Pass
	}
	return Fail("상인이 없는 도시입니다.")
}

// --- Город назначения ---

// ExistsDestCity - снимок города-цели есть. Ненулевой ID должен с ним совпасть.
type ExistsDestCity struct{ ID int64 }

func (r ExistsDestCity) Test(ctx *Context) Result {
	if ctx.DestCity == nil {
		return Fail(reasonNoDestCity)
	}
	if r.ID != 0 && ctx.DestCity.ID != r.ID {
		return Fail("목적지 도시 정보가 일치하지 않습니다.")
	}
	return Pass
}

type NotSameDestCity struct{}

func (NotSameDestCity) Test(ctx *Context) Result {
	if ctx.DestCity == nil {
		return Fail(reasonNoDestCity)
	}
	if ctx.General.CityID != ctx.DestCity.ID {
		return Pass
	}
	return Fail("현재 도시와 같은 도시입니다.")
}

type NotOccupiedDestCity struct{}

func (NotOccupiedDestCity) Test(ctx *Context) Result {
	if ctx.DestCity == nil {
		return Fail(reasonNoDestCity)
	}
	if ctx.DestCity.NationID != ctx.General.NationID {
		return Pass
	}
	return Fail("아군 도시에는 사용할 수 없습니다.")
}

type NotNeutralDestCity struct{}

func (NotNeutralDestCity) Test(ctx *Context) Result {
	if ctx.DestCity == nil {
		return Fail(reasonNoDestCity)
	}
	if ctx.DestCity.NationID != 0 {
		return Pass
	}
	return Fail("공백지에는 사용할 수 없습니다.")
}
