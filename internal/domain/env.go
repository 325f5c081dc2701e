package domain

import (
	"fmt"

	"opensam-core/internal/config"
)

// CrewType - описание рода войск из справочника мира.
type CrewType struct {
	Name    string  `json:"name"`
	Cost    float64 `json:"cost"`
	ArmType int     `json:"armType"`
}

// GameStor - заранее подготовленные снаружи индексы. Ядро их только читает.
type GameStor struct {
	// MapAdjacency: город -> соседние города.
	MapAdjacency map[int64][]int64 `json:"mapAdjacency,omitempty"`
	// CityNationByID: город -> владеющее государство (0 - ничейный).
	CityNationByID map[int64]int64 `json:"cityNationById,omitempty"`
	// AtWarNationIDs - государства, воюющие с государством исполнителя.
	AtWarNationIDs []int64 `json:"atWarNationIds,omitempty"`
	// Diplomacy: "src_dest" -> код дипломатического состояния.
	Diplomacy map[string]int `json:"diplomacy,omitempty"`
	// AvailableCrewTypes - рода войск, доступные для набора.
	AvailableCrewTypes []int `json:"availableCrewTypes,omitempty"`
	// CrewTypes: id -> описание рода войск.
	CrewTypes map[int]CrewType `json:"crewTypes,omitempty"`
	// TroopMemberExists: отряд -> есть ли кого собирать.
	TroopMemberExists map[int64]bool `json:"troopMemberExistsByTroopId,omitempty"`
}

// Env - контекст хода. Живёт одно исполнение команды и не изменяется ядром.
type Env struct {
	Year      int   `json:"year"`
	Month     int   `json:"month"`
	StartYear int   `json:"startYear"`
	WorldID   int64 `json:"worldId"`

	config.Tunables

	Stor GameStor `json:"gameStor"`
}

// NewEnv создаёт контекст с игровыми константами по умолчанию.
func NewEnv(year, month, startYear int) *Env {
	return &Env{
		Year:      year,
		Month:     month,
		StartYear: startYear,
		Tunables:  config.Default(),
	}
}

// RelYear - сколько лет прошло с начала сценария.
func (e *Env) RelYear() int {
	return e.Year - e.StartYear
}

// TurnIndex - сквозной номер месяца, используется для перезарядки команд.
func (e *Env) TurnIndex() int {
	return e.Year*12 + e.Month
}

// FormatDate выводит дату в формате повествования: "184년 03월".
func (e *Env) FormatDate() string {
	return fmt.Sprintf("%d년 %02d월", e.Year, e.Month)
}

// IsAtWarWith сообщает, воюет ли исполнитель с государством nationID.
func (s *GameStor) IsAtWarWith(nationID int64) bool {
	for _, id := range s.AtWarNationIDs {
		if id == nationID {
			return true
		}
	}
	return false
}

// DiplomacyState возвращает состояние отношений src -> dest.
func (s *GameStor) DiplomacyState(src, dest int64) (int, bool) {
	state, ok := s.Diplomacy[DiplomacyKey(src, dest)]
	return state, ok
}

// DiplomacyKey - ключ таблицы дипломатии.
func DiplomacyKey(src, dest int64) string {
	return fmt.Sprintf("%d_%d", src, dest)
}

// CrewTypeName возвращает название рода войск или fallback.
func (s *GameStor) CrewTypeName(id int, fallback string) string {
	if ct, ok := s.CrewTypes[id]; ok && ct.Name != "" {
		return ct.Name
	}
	return fallback
}
