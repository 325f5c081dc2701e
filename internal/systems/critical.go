package systems

import (
	"math"

	"opensam-core/internal/domain"
	"opensam-core/pkg/rng"
)

// Critical - исход критического броска внутренней команды.
type Critical string

const (
	CriticalFail    Critical = "fail"
	CriticalSuccess Critical = "success"
	CriticalNormal  Critical = "normal"
)

// ExpLevelBonus - множитель от уровня опыта: 1 + L/500.
func ExpLevelBonus(level int) float64 {
	return 1 + float64(level)/500
}

// CriticalRatio считает шансы критического успеха и провала по балансу характеристик.
// Чем ниже ведущая характеристика относительно среднего, тем выше оба шанса.
// Нулевая характеристика считается единицей.
func CriticalRatio(g *domain.General, statKey string) (success, fail float64) {
	avg := float64(g.Leadership+g.Strength+g.Intel) / 3
	stat := float64(g.Stat(statKey))
	if stat <= 0 {
		stat = 1
	}
	ratio := math.Min(avg/stat, 1.2)

	fail = clamp(math.Pow(ratio/1.2, 1.4)-0.3, 0, 0.5)
	success = clamp(math.Pow(ratio/1.2, 1.5)-0.25, 0, 0.5)
	return success, fail
}

// NormalizeRatios ограничивает success в [0,1], fail в [0,1-success]
// и возвращает остаток как шанс обычного исхода.
func NormalizeRatios(success, fail float64) (s, f, normal float64) {
	s = clamp(success, 0, 1)
	f = clamp(fail, 0, 1-s)
	return s, f, 1 - s - f
}

// PickCritical выбирает исход взвешенным броском в порядке fail, success, normal.
func PickCritical(s *rng.Stream, success, fail float64) Critical {
	success, fail, normal := NormalizeRatios(success, fail)
	return rng.WeightedChoice(s, []rng.Weighted[Critical]{
		{Key: CriticalFail, Weight: fail},
		{Key: CriticalSuccess, Weight: success},
		{Key: CriticalNormal, Weight: normal},
	})
}

// CriticalMultiplier - множитель счёта: успех [2.2, 3.0), провал [0.2, 0.4), обычный 1.
// Для обычного исхода поток не расходуется.
func CriticalMultiplier(s *rng.Stream, pick Critical) float64 {
	switch pick {
	case CriticalSuccess:
		return s.Range(2.2, 3.0)
	case CriticalFail:
		return s.Range(0.2, 0.4)
	}
	return 1
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Round - округление к ближайшему, половины от нуля.
func Round(v float64) int {
	return int(math.Round(v))
}
