package systems

import (
	"math"

	"opensam-core/internal/domain"
	"opensam-core/pkg/rng"
)

const (
	sabotageBaseProb    = 0.2
	sabotageMaxProb     = 0.5
	sabotageInjuryProb  = 0.3
	sabotageInjuryMax   = 80
	sabotageInjuryLoss  = 0.98
	sabotageSuppliedDef = 0.1
)

// Defenders - полководцы города-цели, принадлежащие его владельцу.
func Defenders(destCity *domain.City, generals []*domain.General) []*domain.General {
	if destCity == nil {
		return nil
	}
	out := make([]*domain.General, 0, len(generals))
	for _, g := range generals {
		if g != nil && g.NationID == destCity.NationID {
			out = append(out, g)
		}
	}
	return out
}

// SabotageAttack - вклад атакующего: stat / coef.
func SabotageAttack(stat, coef int) float64 {
	if coef <= 0 {
		return 0
	}
	return float64(stat) / float64(coef)
}

// SabotageDefence - сопротивление города: лучший защитник, число защитников,
// порядок и снабжение.
func SabotageDefence(destCity *domain.City, defenders []*domain.General, statKey string, env *domain.Env) float64 {
	if destCity == nil {
		return 0
	}
	maxStat := 0
	for _, d := range defenders {
		maxStat = max(maxStat, d.Stat(statKey))
	}

	prob := SabotageAttack(maxStat, env.SabotageProbCoefByStat)
	prob += (math.Log2(float64(len(defenders)+1)) - 1.25) * env.SabotageDefenceCoefByGeneralCnt
	if destCity.SecuMax > 0 {
		prob += float64(destCity.Secu) / float64(destCity.SecuMax) / 5
	}
	if destCity.IsSupplied() {
		prob += sabotageSuppliedDef
	}
	return prob
}

// SabotageProbability - итоговый шанс успеха, делённый на расстояние и
// ограниченный [0, 0.5]. Расстояние меньше 1 считается единицей.
func SabotageProbability(attack, defence float64, dist int) float64 {
	if dist < 1 {
		dist = 1
	}
	return clamp((sabotageBaseProb+attack-defence)/float64(dist), 0, sabotageMaxProb)
}

// Injury - ранение одного защитника.
type Injury struct {
	GeneralID int64
	Injury    int
	Crew      int
	Atmos     int
	Train     int
}

// RollInjuries бросает ранение каждому защитнику с шансом 0.3.
// Ранение: +1..16 (не выше 80), войска, дух и обучение умножаются на 0.98.
// Возвращаются дельты; сами снимки не меняются.
func RollInjuries(s *rng.Stream, defenders []*domain.General) []Injury {
	var out []Injury
	for _, d := range defenders {
		if s.Float() >= sabotageInjuryProb {
			continue
		}
		inc := s.IntRange(1, 16)
		next := min(d.Injury+inc, sabotageInjuryMax)
		out = append(out, Injury{
			GeneralID: d.ID,
			Injury:    next - d.Injury,
			Crew:      int(float64(d.Crew)*sabotageInjuryLoss) - d.Crew,
			Atmos:     int(float64(d.Atmos)*sabotageInjuryLoss) - d.Atmos,
			Train:     int(float64(d.Train)*sabotageInjuryLoss) - d.Train,
		})
	}
	return out
}

// SabotageDamage - урон атрибуту: случайно в [min, max], не больше текущего значения.
func SabotageDamage(s *rng.Stream, env *domain.Env, current int) int {
	return min(max(s.IntRange(env.SabotageDamageMin, env.SabotageDamageMax), 0), max(current, 0))
}

// Loot - добыча 탈취.
type Loot struct {
	Gold, Rice             int
	NationGold, NationRice int
	OwnGold, OwnRice       int
}

// RollLoot считает добычу: база 200..400 на уровень города с поправкой на возраст мира
// и развитость торговли (золото) или земледелия (зерно).
// 70% уходит государству, у вольного полководца всё остаётся ему.
func RollLoot(s *rng.Stream, env *domain.Env, destCity *domain.City, neutral bool) Loot {
	yearCoef := math.Sqrt(1+float64(env.RelYear())/4) / 2
	commRatio, agriRatio := 0.0, 0.0
	if destCity.CommMax > 0 {
		commRatio = float64(destCity.Comm) / float64(destCity.CommMax)
	}
	if destCity.AgriMax > 0 {
		agriRatio = float64(destCity.Agri) / float64(destCity.AgriMax)
	}

	var l Loot
	l.Gold = Round(float64(s.IntRange(200, 400)*destCity.Level) * yearCoef * (0.25 + commRatio/4))
	l.Rice = Round(float64(s.IntRange(200, 400)*destCity.Level) * yearCoef * (0.25 + agriRatio/4))
	l.Split(neutral)
	return l
}

// Split делит добычу между государством и полководцем.
func (l *Loot) Split(neutral bool) {
	if neutral {
		l.NationGold, l.NationRice = 0, 0
	} else {
		l.NationGold = Round(float64(l.Gold) * 0.7)
		l.NationRice = Round(float64(l.Rice) * 0.7)
	}
	l.OwnGold = l.Gold - l.NationGold
	l.OwnRice = l.Rice - l.NationRice
}
