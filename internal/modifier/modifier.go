// Package modifier описывает внешние модификаторы формул (бонусы, политики, особенности).
//
// Формула зовёт Provider на каждом шаге расчёта и передаёт текущее значение;
// провайдер возвращает изменённое. По умолчанию используется Noop.
package modifier

// Kind - какая величина сейчас модифицируется.
type Kind uint8

const (
	Cost Kind = iota
	Score
	Success
	Fail
	// Train и Atmos - дельты обучения и морального духа.
	Train
	Atmos
	// Rice - расход зерна.
	Rice
)

func (k Kind) String() string {
	switch k {
	case Cost:
		return "cost"
	case Score:
		return "score"
	case Success:
		return "success"
	case Fail:
		return "fail"
	case Train:
		return "train"
	case Atmos:
		return "atmos"
	case Rice:
		return "rice"
	}
	return "unknown"
}

// Provider - внешний источник модификаторов. Должен быть безопасен для
// конкурентного чтения и не должен менять своё состояние при вызове.
type Provider interface {
	// Domestic модифицирует величину kind для действия action (ключ, например "agri").
	Domestic(action string, kind Kind, value float64) float64
}

// Noop возвращает значение без изменений.
type Noop struct{}

func (Noop) Domestic(_ string, _ Kind, value float64) float64 { return value }

// Func позволяет задать провайдер функцией.
type Func func(action string, kind Kind, value float64) float64

func (f Func) Domestic(action string, kind Kind, value float64) float64 {
	return f(action, kind, value)
}

// Chain применяет провайдеры по порядку, передавая результат дальше.
type Chain []Provider

func (c Chain) Domestic(action string, kind Kind, value float64) float64 {
	for _, p := range c {
		if p != nil {
			value = p.Domestic(action, kind, value)
		}
	}
	return value
}

// Multiplier умножает одну величину одного действия; пустой Action - любое действие.
type Multiplier struct {
	Action string
	Kind   Kind
	Factor float64
}

func (m Multiplier) Domestic(action string, kind Kind, value float64) float64 {
	if kind != m.Kind || (m.Action != "" && m.Action != action) {
		return value
	}
	return value * m.Factor
}

// OrNoop подставляет Noop вместо nil.
func OrNoop(p Provider) Provider {
	if p == nil {
		return Noop{}
	}
	return p
}
