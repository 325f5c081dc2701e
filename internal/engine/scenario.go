package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
)

// Scenario - снимок мира и поданные команды одного хода.
// Снимки только читаются; исполнитель их не меняет.
type Scenario struct {
	SeedKey  string             `json:"seedKey"`
	Env      *domain.Env        `json:"env"`
	Rules    []constraints.Rule `json:"rules,omitempty"`
	Generals []*domain.General  `json:"generals"`
	Cities   []*domain.City     `json:"cities"`
	Nations  []*domain.Nation   `json:"nations"`
	Commands []ScenarioCommand  `json:"commands"`
}

// ScenarioCommand - одна поданная команда.
type ScenarioCommand struct {
	ActorID int64           `json:"actorId"`
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// targets - поля аргументов, по которым подбираются снимки цели.
type targets struct {
	DestGeneralID int64 `json:"destGeneralId"`
	DestCityID    int64 `json:"destCityId"`
	DestNationID  int64 `json:"destNationId"`
}

// LoadScenario читает сценарий из JSON-файла.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario разбирает сценарий. Env без явных констант получает значения по умолчанию.
func ParseScenario(data []byte) (*Scenario, error) {
	var raw struct {
		Scenario
		Env json.RawMessage `json:"env"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	sc := raw.Scenario
	sc.Env = domain.NewEnv(0, 1, 0)
	if len(raw.Env) > 0 {
		if err := json.Unmarshal(raw.Env, sc.Env); err != nil {
			return nil, fmt.Errorf("decode env: %w", err)
		}
	}
	if sc.Env.Month < 1 || sc.Env.Month > 12 {
		return nil, fmt.Errorf("env month out of range: %d", sc.Env.Month)
	}
	return &sc, nil
}

// Requests собирает запросы по поданным командам.
func (sc *Scenario) Requests() ([]Request, error) {
	out := make([]Request, 0, len(sc.Commands))
	for i, c := range sc.Commands {
		req, err := sc.Resolve(c.ActorID, c.Command, c.Payload)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		out = append(out, req)
	}
	return out, nil
}

// ReplayRequests собирает запросы по записанному ходу на этом же мире.
func (sc *Scenario) ReplayRequests(actions []domain.ReplayAction) ([]Request, error) {
	out := make([]Request, 0, len(actions))
	for i, a := range actions {
		req, err := sc.Resolve(a.ActorID, a.Command, a.Payload)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, req)
	}
	return out, nil
}

// Resolve подбирает снимки исполнителя и цели. Неизвестный исполнитель - ошибка;
// неизвестная цель оставляет nil, а отказ сформулируют ограничения команды.
func (sc *Scenario) Resolve(actorID int64, command string, payload json.RawMessage) (Request, error) {
	actor := sc.general(actorID)
	if actor == nil {
		return Request{}, fmt.Errorf("unknown actor %d", actorID)
	}

	req := Request{
		Command: command,
		Payload: payload,
		Actor:   actor,
		City:    sc.city(actor.CityID),
		Nation:  sc.nation(actor.NationID),
		Env:     sc.Env,
	}

	var t targets
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '{' {
		// Кривые аргументы разберёт фабрика команды.
		_ = json.Unmarshal(trimmed, &t)
	}

	if t.DestGeneralID != 0 {
		req.DestGeneral = sc.general(t.DestGeneralID)
		if req.DestGeneral != nil {
			req.DestNation = sc.nation(req.DestGeneral.NationID)
		}
	}
	if t.DestCityID != 0 {
		req.DestCity = sc.city(t.DestCityID)
		if req.DestCity != nil {
			req.DestNation = sc.nation(req.DestCity.NationID)
			req.DestCityGenerals = sc.generalsIn(req.DestCity.ID)
		}
	}
	// Явно названное государство важнее владельца цели.
	if t.DestNationID != 0 {
		req.DestNation = sc.nation(t.DestNationID)
	}
	return req, nil
}

func (sc *Scenario) general(id int64) *domain.General {
	for _, g := range sc.Generals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (sc *Scenario) city(id int64) *domain.City {
	for _, c := range sc.Cities {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// nation возвращает nil для id 0 (вольные) и для неизвестного id.
func (sc *Scenario) nation(id int64) *domain.Nation {
	if id == 0 {
		return nil
	}
	for _, n := range sc.Nations {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (sc *Scenario) generalsIn(cityID int64) []*domain.General {
	var out []*domain.General
	for _, g := range sc.Generals {
		if g.CityID == cityID {
			out = append(out, g)
		}
	}
	return out
}
