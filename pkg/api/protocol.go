package api

import (
	"encoding/json"
)

// --- ЯДРО -> ВЫЗЫВАЮЩИЙ ---

// Result - итог исполнения одной команды.
// Ядро его только формирует; применяют изменения снаружи.
type Result struct {
	// Success false означает отказ: ограничение, кривой аргумент или ранний выход из run.
	Success bool `json:"success"`

	// Logs строки повествования в порядке появления.
	// Префиксы каналов (_global:, _history: ...) разбирает потребитель.
	Logs []string `json:"logs"`

	// Message структурированный дифф. nil при отказе.
	Message *Message `json:"message,omitempty"`
}

// Failed - отказ с логами и без диффа.
func Failed(logs ...string) Result {
	if logs == nil {
		logs = []string{}
	}
	return Result{Success: false, Logs: logs}
}

// Succeeded - успех с диффом.
func Succeeded(logs []string, msg *Message) Result {
	if logs == nil {
		logs = []string{}
	}
	return Result{Success: true, Logs: logs, Message: msg}
}

// MessageJSON сериализует дифф. Пустая строка, если диффа нет.
// Ключи отображений выводятся отсортированными, поэтому строка воспроизводима.
func (r Result) MessageJSON() string {
	if r.Message == nil {
		return ""
	}
	b, err := json.Marshal(r.Message)
	if err != nil {
		return ""
	}
	return string(b)
}

// Message - дифф с закрытым словарём ключей.
// Неизвестные потребителю ключи следует игнорировать.
type Message struct {
	// StatChanges изменения полководца-исполнителя (gold, rice, experience, dedication, *Exp...).
	StatChanges Changes `json:"statChanges,omitempty"`

	// CityChanges изменения города исполнителя.
	CityChanges Changes `json:"cityChanges,omitempty"`

	// NationChanges изменения государства исполнителя.
	NationChanges Changes `json:"nationChanges,omitempty"`

	// DestGeneralChanges изменения полководца-цели; содержит generalId.
	DestGeneralChanges Changes `json:"destGeneralChanges,omitempty"`

	// DestCityChanges изменения города-цели; содержит cityId.
	DestCityChanges Changes `json:"destCityChanges,omitempty"`

	// DestNationChanges изменения государства-цели.
	DestNationChanges Changes `json:"destNationChanges,omitempty"`

	// InjuredGenerals раненые защитники, по одному диффу на полководца.
	InjuredGenerals []Changes `json:"injuredGenerals,omitempty"`

	// CriticalResult "success", "fail" или "normal".
	CriticalResult string `json:"criticalResult,omitempty"`

	// MaxDomesticCritical счёт критического успеха (0 в остальных случаях).
	MaxDomesticCritical *int `json:"maxDomesticCritical,omitempty"`

	DexChanges *DexChange `json:"dexChanges,omitempty"`

	// BattleStanceTerm и Completed - прогресс многоходовой команды.
	BattleStanceTerm int   `json:"battleStanceTerm,omitempty"`
	Completed        *bool `json:"completed,omitempty"`

	SpyResult *SpyResult `json:"spyResult,omitempty"`

	// SabotageSucceeded - исход диверсии. Промах тоже успешная команда со своими затратами.
	SabotageSucceeded *bool `json:"sabotageSucceeded,omitempty"`

	// NationTax пошлина торговли, уходящая государству.
	NationTax *int `json:"nationTax,omitempty"`

	// InheritancePoint очки наследия за действие.
	InheritancePoint float64 `json:"inheritancePoint,omitempty"`

	// BattleTriggered - исполнитель выступил, бой разрешает внешний обработчик.
	BattleTriggered *bool `json:"battleTriggered,omitempty"`
	TargetCityID    int64 `json:"targetCityId,omitempty"`

	// RoamingMove - бродячая армия переходит вместе с правителем.
	RoamingMove *RoamingMove `json:"roamingMove,omitempty"`

	// Diplomacy новое состояние отношений между государствами.
	Diplomacy *DiplomacyChange `json:"diplomacy,omitempty"`

	// LeaveNation - исполнитель покидает государство, должность сбрасывается.
	LeaveNation  *bool `json:"leaveNation,omitempty"`
	DisbandTroop *bool `json:"disbandTroop,omitempty"`
}

type RoamingMove struct {
	NationID   int64 `json:"nationId"`
	DestCityID int64 `json:"destCityId"`
}

// DiplomacyChange - состояние и срок отношений SrcNationID -> DestNationID.
type DiplomacyChange struct {
	SrcNationID  int64 `json:"srcNationId"`
	DestNationID int64 `json:"destNationId"`
	State        int   `json:"state"`
	Term         int   `json:"term"`
}

// DexChange - прирост владения родом войск.
type DexChange struct {
	CrewType int `json:"crewType"`
	Amount   int `json:"amount"`
}

// SpyResult - что разведано и на каком расстоянии.
type SpyResult struct {
	DestCityID int64 `json:"destCityId"`
	Distance   int   `json:"distance"`
}

// Int возвращает указатель на v; для необязательных числовых полей.
func Int(v int) *int { return &v }

// Bool возвращает указатель на v.
func Bool(v bool) *bool { return &v }

// --- ВЫЗЫВАЮЩИЙ -> ЯДРО ---

// CommandRequest - команда в том виде, в каком её присылают снаружи.
type CommandRequest struct {
	// ActorID полководец, от имени которого исполняется команда.
	ActorID int64 `json:"actorId"`

	// Command код команды, например "농지개간" или "che_농지개간".
	Command string `json:"command"`

	// Payload аргументы команды. Структура зависит от Command.
	Payload json.RawMessage `json:"payload,omitempty"`
}
