package domain

import "encoding/json"

// ReplayAction - запись одной поданной команды
type ReplayAction struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	ActorID int64           `json:"actorId"` // Кто подал
	Command string          `json:"command"` // Что подал, как подано
	Payload json.RawMessage `json:"payload"` // С какими аргументами
}

// ReplaySession - полная запись хода: ключ RNG и команды в порядке подачи
type ReplaySession struct {
	ID        string          `json:"id"`
	SeedKey   string          `json:"seedKey"`
	Ruleset   string          `json:"ruleset,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Scenario  json.RawMessage `json:"scenario,omitempty"` // Снимок мира до хода
	Actions   []ReplayAction  `json:"actions"`
}
