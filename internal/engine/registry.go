package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"opensam-core/internal/domain"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/engine/handlers/actions"
	"opensam-core/internal/engine/handlers/nation"
)

// ErrUnknownCommand - для кода нет зарегистрированной фабрики.
var ErrUnknownCommand = errors.New("unknown command")

// Registry хранит фабрики команд по коду.
type Registry struct {
	factories map[domain.CommandCode]handlers.Factory
}

// NewRegistry создаёт реестр со всеми командами полководца и государства.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	actions.Register(r)
	nation.Register(r)
	return r
}

// NewEmptyRegistry - реестр без команд (для тестов и особых наборов правил).
func NewEmptyRegistry() *Registry {
	return &Registry{factories: make(map[domain.CommandCode]handlers.Factory)}
}

// Register реализует handlers.Registrar. Повторная регистрация заменяет фабрику.
func (r *Registry) Register(code domain.CommandCode, f handlers.Factory) {
	r.factories[code] = f
}

// Has - есть ли фабрика для кода.
func (r *Registry) Has(code domain.CommandCode) bool {
	_, ok := r.factories[code]
	return ok
}

// Codes возвращает зарегистрированные коды по возрастанию.
func (r *Registry) Codes() []domain.CommandCode {
	out := make([]domain.CommandCode, 0, len(r.factories))
	for code := range r.factories {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Build собирает команду. Ошибка разбора аргументов оборачивается с кодом команды.
func (r *Registry) Build(code domain.CommandCode, ctx handlers.Context, raw json.RawMessage) (handlers.Command, error) {
	f, ok := r.factories[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, code)
	}
	cmd, err := f(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", code, err)
	}
	return cmd, nil
}
