package domain

// Стат-ключи, которыми оперируют формулы.
const (
	StatLeadership = "leadership"
	StatStrength   = "strength"
	StatIntel      = "intel"
	StatPolitics   = "politics"
	StatCharm      = "charm"
)

// OfficerLevelLord - уровень должности правителя.
const OfficerLevelLord = 12

// General - снимок полководца на момент исполнения команды.
// Ядро его только читает.
type General struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	NationID     int64  `json:"nationId"`
	CityID       int64  `json:"cityId"`
	TroopID      int64  `json:"troopId,omitempty"`
	OfficerLevel int    `json:"officerLevel"`
	NPCState     int    `json:"npcState,omitempty"`

	Leadership int `json:"leadership"`
	Strength   int `json:"strength"`
	Intel      int `json:"intel"`
	Politics   int `json:"politics,omitempty"`
	Charm      int `json:"charm,omitempty"`

	Experience int `json:"experience,omitempty"`
	Dedication int `json:"dedication,omitempty"`
	ExpLevel   int `json:"expLevel,omitempty"`
	Injury     int `json:"injury,omitempty"`

	Gold     int `json:"gold"`
	Rice     int `json:"rice"`
	Crew     int `json:"crew"`
	CrewType int `json:"crewType"`
	Train    int `json:"train"`
	Atmos    int `json:"atmos"`

	// Betray - сколько раз полководец уходил из государства.
	Betray int `json:"betray,omitempty"`
	// MakeLimit - сколько ходов ещё нельзя вступать/основывать после ухода в вольные.
	MakeLimit int `json:"makeLimit,omitempty"`

	// LastTurn - последняя исполненная команда (хранится снаружи).
	LastTurn LastTurn `json:"lastTurn"`

	// NextExecute - код команды -> индекс хода, до которого она заблокирована.
	NextExecute map[string]int `json:"nextExecute,omitempty"`
}

// Stat возвращает значение характеристики по ключу. Неизвестный ключ - интеллект.
func (g *General) Stat(key string) int {
	switch key {
	case StatLeadership:
		return g.Leadership
	case StatStrength:
		return g.Strength
	case StatPolitics:
		return g.Politics
	case StatCharm:
		return g.Charm
	default:
		return g.Intel
	}
}

// IsNeutral - полководец не состоит в государстве.
func (g *General) IsNeutral() bool {
	return g.NationID == 0
}

// IsLord - полководец является правителем.
func (g *General) IsLord() bool {
	return g.OfficerLevel >= OfficerLevelLord
}
