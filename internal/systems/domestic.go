package systems

import (
	"opensam-core/internal/domain"
	"opensam-core/internal/modifier"
	"opensam-core/pkg/rng"
)

// DomesticParams - настройка броска внутренней команды.
type DomesticParams struct {
	// Action - ключ действия для модификаторов ("agri", "tech", "pop"...).
	Action string
	// StatKey - ведущая характеристика.
	StatKey string
	// UseTrust - доверие города входит в базовый счёт и урезает шанс успеха ниже 80.
	UseTrust bool
}

// DomesticRoll - результат броска: итоговый счёт и исход.
type DomesticRoll struct {
	Score int
	Pick  Critical
}

// RollDomestic выполняет общий шаблон внутренней команды до поправки фронта.
//
// Порядок расхода потока: множитель [0.8, 1.2), выбор исхода, множитель исхода.
func RollDomestic(s *rng.Stream, p DomesticParams, g *domain.General, city *domain.City, mod modifier.Provider) DomesticRoll {
	mod = modifier.OrNoop(mod)

	trust := 50.0
	if city != nil {
		trust = city.Trust
	}

	score := float64(g.Stat(p.StatKey)) * ExpLevelBonus(g.ExpLevel) * s.Range(0.8, 1.2)
	if p.UseTrust {
		score *= max(0.5, max(50, trust)/100)
	}
	score = max(1, mod.Domestic(p.Action, modifier.Score, score))

	success, fail := CriticalRatio(g, p.StatKey)
	if p.UseTrust && trust < 80 {
		success *= trust / 80
	}
	success = mod.Domestic(p.Action, modifier.Success, success)
	fail = mod.Domestic(p.Action, modifier.Fail, fail)

	pick := PickCritical(s, success, fail)
	score *= CriticalMultiplier(s, pick)

	return DomesticRoll{Score: max(1, Round(score)), Pick: pick}
}

// FrontDebuff - множитель для прифронтового города.
// В столице молодого мира (меньше 25 лет) штраф плавно включается с 5-го по 25-й год.
func FrontDebuff(env *domain.Env, city *domain.City, nation *domain.Nation, debuff float64) float64 {
	if city == nil || !city.IsFrontLine() {
		return 1
	}
	actual := debuff
	if nation != nil && nation.CapitalCityID == city.ID && env != nil {
		if rel := env.RelYear(); rel < 25 {
			scale := float64(clampInt(rel-5, 0, 20)) * 0.05
			actual = scale*debuff + (1 - scale)
		}
	}
	return actual
}

// ApplyCapacity возвращает фактическое приращение: новое значение
// остаётся в пределах [0, maxValue].
func ApplyCapacity(cur, maxValue, delta int) int {
	next := clampInt(cur+delta, 0, max(maxValue, 0))
	return next - cur
}

// DomesticCritical - значение maxDomesticCritical: счёт при успехе, иначе 0.
func DomesticCritical(r DomesticRoll) int {
	if r.Pick == CriticalSuccess {
		return r.Score
	}
	return 0
}
