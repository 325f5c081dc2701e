package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/sirupsen/logrus"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/engine/handlers"
	"opensam-core/internal/modifier"
	"opensam-core/pkg/api"
	"opensam-core/pkg/logger"
	"opensam-core/pkg/rng"
)

// Request - одна команда вместе со снимками, которые подобрал вызывающий.
type Request struct {
	// Command - ключ команды ("훈련" или "che_훈련").
	Command string
	Payload json.RawMessage

	Actor  *domain.General
	City   *domain.City
	Nation *domain.Nation

	DestGeneral      *domain.General
	DestCity         *domain.City
	DestNation       *domain.Nation
	DestCityGenerals []*domain.General

	Env       *domain.Env
	Modifiers modifier.Provider
}

func (r Request) context() handlers.Context {
	return handlers.Context{
		Actor:            r.Actor,
		City:             r.City,
		Nation:           r.Nation,
		DestGeneral:      r.DestGeneral,
		DestCity:         r.DestCity,
		DestNation:       r.DestNation,
		DestCityGenerals: r.DestCityGenerals,
		Env:              r.Env,
		Modifiers:        r.Modifiers,
	}
}

// Outcome - результат исполнения и следующее внешнее состояние полководца.
// Снимки из Request не меняются; применять LastTurn и NextExecute - дело вызывающего.
type Outcome struct {
	Command     domain.CommandCode
	Result      api.Result
	LastTurn    domain.LastTurn
	NextExecute map[string]int
}

// Executor проверяет и исполняет команды. Безопасен для параллельного чтения,
// но поток случайных чисел у каждого вызова свой.
type Executor struct {
	registry *Registry
	rules    []constraints.Constraint
}

// NewExecutor создаёт исполнитель. rules - правила мира, которые проверяются
// после полного списка ограничений каждой команды.
func NewExecutor(registry *Registry, rules []constraints.Rule) (*Executor, error) {
	compiled, err := constraints.CompileRules(rules)
	if err != nil {
		return nil, fmt.Errorf("world rules: %w", err)
	}
	return &Executor{registry: registry, rules: compiled}, nil
}

// Check проверяет только "min"-ограничения (доступность команды в интерфейсе).
func (e *Executor) Check(req Request) constraints.Result {
	code := domain.ParseCommand(req.Command)
	if req.Actor == nil || req.Env == nil {
		return constraints.Fail("실행 정보가 부족합니다.")
	}
	cmd, err := e.registry.Build(code, req.context(), req.Payload)
	if err != nil {
		return constraints.Fail(unknownOrInvalid(code, req.Command, err))
	}
	return constraints.TestAll(cmd.MinConstraints(), req.context().Constraints())
}

// Execute проверяет и исполняет команду, расходуя поток s.
func (e *Executor) Execute(req Request, s *rng.Stream) Outcome {
	code := domain.ParseCommand(req.Command)
	return e.execute(code, req, s, true)
}

func (e *Executor) execute(code domain.CommandCode, req Request, s *rng.Stream, allowAlt bool) Outcome {
	if req.Actor == nil || req.Env == nil {
		logger.Log.WithField("command", code.String()).Warn("Request without actor or env")
		return Outcome{
			Command:     code,
			Result:      api.Failed("실행 정보가 부족합니다."),
			NextExecute: make(map[string]int),
		}
	}

	out := Outcome{
		Command:     code,
		LastTurn:    req.Actor.LastTurn,
		NextExecute: maps.Clone(req.Actor.NextExecute),
	}
	if out.NextExecute == nil {
		out.NextExecute = make(map[string]int)
	}
	fields := logrus.Fields{"actor": req.Actor.ID, "command": code.String()}

	ctx := req.context()
	cmd, err := e.registry.Build(code, ctx, req.Payload)
	if err != nil {
		reason := unknownOrInvalid(code, req.Command, err)
		logger.Log.WithFields(fields).WithError(err).Warn("Command rejected")
		out.Result = api.Failed(reason)
		return out
	}

	// 1. Перезарядка
	now := req.Env.TurnIndex()
	if blocked, ok := req.Actor.NextExecute[code.String()]; ok && now < blocked {
		reason := cooldownReason(code, blocked-now)
		logger.Log.WithFields(fields).WithField("reason", reason).Debug("Command on cooldown")
		out.Result = api.Failed(reason)
		return out
	}

	// 2. Полные ограничения, затем правила мира
	cctx := ctx.Constraints()
	res := constraints.TestAll(cmd.FullConstraints(), cctx)
	if res.OK() {
		res = constraints.TestAll(e.rules, cctx)
	}
	if !res.OK() {
		if alt, ok := alternative(cmd); ok && allowAlt && alt != code {
			logger.Log.WithFields(fields).WithFields(logrus.Fields{
				"reason":      res.Reason,
				"alternative": alt.String(),
			}).Info("Falling back to alternative command")
			return e.execute(alt, req, s, false)
		}
		logger.Log.WithFields(fields).WithField("reason", res.Reason).Debug("Constraint failed")
		out.Result = api.Failed(res.Reason)
		return out
	}

	arg := argMap(req.Payload)
	preReq := cmd.PreReqTurn()

	// 3. Накопление ходов для команд, которые сами счётчик не ведут
	if preReq > 0 && !tracksTerm(cmd) {
		stacked := req.Actor.LastTurn.AddTermStack(code.String(), arg, preReq)
		out.LastTurn = stacked
		if stacked.Term < preReq {
			logger.Log.WithFields(fields).WithField("term", stacked.Term).Debug("Command in progress")
			out.Result = api.Succeeded([]string{
				fmt.Sprintf("%s 수행중... (%d/%d)", cmd.ActionName(), stacked.Term, preReq),
			}, nil)
			return out
		}
	}

	// 4. Исполнение
	out.Result = cmd.Run(s)
	if !out.Result.Success {
		logger.Log.WithFields(fields).WithField("success", false).Debug("Command run failed")
		out.LastTurn = req.Actor.LastTurn
		return out
	}

	next := domain.LastTurn{Command: code.String(), Arg: arg}
	if preReq > 0 {
		next.Term = preReq
	}
	if tracksTerm(cmd) && out.Result.Message != nil {
		next.Term = out.Result.Message.BattleStanceTerm
	}
	out.LastTurn = next

	if post := cmd.PostReqTurn(); post > 0 {
		out.NextExecute[code.String()] = now + post
	}

	logger.Log.WithFields(fields).WithFields(logrus.Fields{
		"success": true,
		"term":    next.Term,
	}).Debug("Command executed")
	return out
}

func cooldownReason(code domain.CommandCode, remain int) string {
	if code.IsNationCommand() {
		return fmt.Sprintf("해당 국가 명령은 쿨다운 중입니다. (%d턴 남음)", remain)
	}
	return fmt.Sprintf("해당 명령은 쿨다운 중입니다. (%d턴 남음)", remain)
}

// unknownOrInvalid переводит ошибку сборки в причину для журнала.
func unknownOrInvalid(code domain.CommandCode, raw string, err error) string {
	if errors.Is(err, ErrUnknownCommand) {
		if code.IsNationCommand() {
			return "알 수 없는 국가 명령: " + raw
		}
		return "알 수 없는 명령: " + raw
	}
	if inner := errors.Unwrap(err); inner != nil {
		return inner.Error()
	}
	return err.Error()
}

func alternative(cmd handlers.Command) (domain.CommandCode, bool) {
	if a, ok := cmd.(handlers.Alternative); ok {
		return a.AlternativeCommand()
	}
	return domain.CmdUnknown, false
}

func tracksTerm(cmd handlers.Command) bool {
	t, ok := cmd.(handlers.TermTracker)
	return ok && t.TracksTerm()
}

// argMap - аргументы в том виде, в каком их хранит LastTurn. Пустые аргументы дают nil.
func argMap(raw json.RawMessage) map[string]any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(trimmed, &m); err != nil || len(m) == 0 {
		return nil
	}
	return m
}
