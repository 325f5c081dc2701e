package systems

import (
	"opensam-core/internal/domain"
	"opensam-core/internal/modifier"
)

// MinRecruitAmount - минимальный размер набора.
const MinRecruitAmount = 100

// RecruitPopAction - ключ модификатора убыли населения при любом наборе.
const RecruitPopAction = "징집인구"

// RecruitKind - параметры вида набора (징병 или 모병).
type RecruitKind struct {
	Action       string
	CostOffset   int
	DefaultTrain int
	DefaultAtmos int
}

// RecruitPlan - посчитанный набор: сколько, почём и с какими итоговыми
// обучением и моральным духом.
type RecruitPlan struct {
	Amount   int
	CrewType int
	Gold     int
	Rice     int

	NewCrew  int
	NewTrain int
	NewAtmos int
	// Merged - тот же род войск, к существующим солдатам.
	Merged bool

	PopLoss   int
	TrustLoss int
}

// RecruitAmount - сколько реально можно набрать: не меньше MinRecruitAmount,
// не больше запаса leadership*100 (для того же рода войск за вычетом текущих).
func RecruitAmount(g *domain.General, crewType, requested int) int {
	req := max(MinRecruitAmount, requested)
	capacity := g.Leadership * 100
	if crewType == g.CrewType {
		capacity -= g.Crew
	}
	return min(req, max(0, capacity))
}

// RecruitCost - золото и зерно за набор amount солдат.
func RecruitCost(kind RecruitKind, amount int, unitCost, techCost float64, mod modifier.Provider) domain.Cost {
	mod = modifier.OrNoop(mod)
	if unitCost <= 0 {
		unitCost = 10
	}
	offset := float64(max(kind.CostOffset, 1))
	gold := mod.Domestic(kind.Action, modifier.Cost, unitCost*techCost*float64(amount)/100) * offset
	rice := mod.Domestic(kind.Action, modifier.Rice, float64(amount)/100)
	return domain.Cost{Gold: Round(gold), Rice: Round(rice)}
}

// PlanRecruit считает полный набор для полководца в городе.
func PlanRecruit(kind RecruitKind, g *domain.General, city *domain.City, crewType, amount int, cost domain.Cost, mod modifier.Provider) RecruitPlan {
	p := RecruitPlan{Amount: amount, CrewType: crewType, Gold: cost.Gold, Rice: cost.Rice}

	if crewType == g.CrewType && g.Crew > 0 {
		total := g.Crew + amount
		p.Merged = true
		p.NewCrew = total
		p.NewTrain = (g.Crew*g.Train + amount*kind.DefaultTrain) / total
		p.NewAtmos = (g.Crew*g.Atmos + amount*kind.DefaultAtmos) / total
	} else {
		p.NewCrew = amount
		p.NewTrain = kind.DefaultTrain
		p.NewAtmos = kind.DefaultAtmos
	}

	p.PopLoss = Round(modifier.OrNoop(mod).Domestic(RecruitPopAction, modifier.Score, float64(amount)))
	if city != nil && city.Pop > 0 {
		loss := float64(amount) / float64(city.Pop) / float64(max(kind.CostOffset, 1)) * 100
		p.TrustLoss = Round(min(loss, city.Trust))
	}
	return p
}
