package systems

import (
	"opensam-core/internal/domain"
	"opensam-core/internal/modifier"
)

// TrainGain - прирост обучения (или морального духа) от одной команды.
//
// round(leadership*100/crew * delta), но не больше запаса до maxValue.
// Без войск делитель считается единицей.
func TrainGain(g *domain.General, current int, delta float64, maxValue int, kind modifier.Kind, mod modifier.Provider) int {
	crew := g.Crew
	if crew <= 0 {
		crew = 1
	}
	raw := float64(g.Leadership*100) / float64(crew) * delta
	raw = modifier.OrNoop(mod).Domestic(kind.String(), kind, raw)
	return clampInt(Round(raw), 0, max(0, maxValue-current))
}

// SideEffectDelta - побочная потеря: значение становится int(value*0.9).
func SideEffectDelta(value int) int {
	return int(float64(value)*0.9) - value
}

// CrewCost - стоимость в золоте на сотню солдат с учётом технологии.
func CrewCost(crew int, perHundred float64, techCost float64) int {
	return Round(float64(crew) / 100 * perHundred * techCost)
}
