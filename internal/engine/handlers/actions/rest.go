package actions

import (
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

// Rest (휴식) - пустой ход. Им же заменяются неизвестные команды из очереди.
type Rest struct {
	handlers.Base
}

func NewRest(ctx handlers.Context) handlers.Command {
	return &Rest{Base: handlers.Base{Ctx: ctx}}
}

func (c *Rest) ActionName() string { return "휴식" }

func (c *Rest) FullConstraints() []constraints.Constraint { return nil }

func (c *Rest) Run(_ *rng.Stream) api.Result {
	var logs handlers.Logs
	logs.Push("아무것도 실행하지 않았습니다. <1>" + c.Date() + "</>")
	return api.Succeeded(logs.Lines(), nil)
}
