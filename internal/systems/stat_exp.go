package systems

import "opensam-core/internal/domain"

// Ключи опыта характеристик в statChanges.
const (
	LeadershipExp = "leadershipExp"
	StrengthExp   = "strengthExp"
	IntelExp      = "intelExp"
)

// StatExpKey - ключ опыта для ведущей характеристики.
func StatExpKey(statKey string) string {
	return statKey + "Exp"
}

// StatWeightTotal - сумма трёх основных характеристик.
func StatWeightTotal(g *domain.General) int {
	return g.Leadership + g.Strength + g.Intel
}

// PickStatExp выбирает, какой характеристике достаётся опыт.
// roll в [0, StatWeightTotal) уменьшается на вес каждой характеристики,
// пока не станет отрицательным. Иначе - полководчество.
func PickStatExp(g *domain.General, roll float64) string {
	weights := [...]struct {
		key    string
		weight int
	}{
		{LeadershipExp, g.Leadership},
		{StrengthExp, g.Strength},
		{IntelExp, g.Intel},
	}
	for _, w := range weights {
		roll -= float64(w.weight)
		if roll < 0 {
			return w.key
		}
	}
	return LeadershipExp
}
