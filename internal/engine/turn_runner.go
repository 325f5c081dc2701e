package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"opensam-core/internal/domain"
	"opensam-core/internal/version"
	"opensam-core/pkg/logger"
	"opensam-core/pkg/rng"
)

// TurnRunner исполняет команды одного хода на общем потоке случайных чисел.
type TurnRunner struct {
	exec *Executor
}

// NewTurnRunner собирает реестр и исполнитель по конфигу.
func NewTurnRunner(cfg Config) (*TurnRunner, error) {
	exec, err := NewExecutor(NewRegistry(), cfg.Rules)
	if err != nil {
		return nil, err
	}
	return &TurnRunner{exec: exec}, nil
}

// Executor - исполнитель, которым пользуется ход.
func (tr *TurnRunner) Executor() *Executor { return tr.exec }

// TurnReport - итоги хода в порядке исполнения и запись для повтора.
type TurnReport struct {
	Outcomes []Outcome
	Session  domain.ReplaySession
}

// Run упорядочивает запросы и исполняет их по очереди на одном потоке из seedKey.
func (tr *TurnRunner) Run(seedKey string, reqs []Request) TurnReport {
	ordered := Order(reqs)
	stream := rng.New(seedKey)

	report := TurnReport{
		Outcomes: make([]Outcome, 0, len(ordered)),
		Session: domain.ReplaySession{
			ID:        uuid.NewString(),
			SeedKey:   seedKey,
			Ruleset:   version.RulesetVersion,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0, len(ordered)),
		},
	}

	ok := 0
	for _, req := range ordered {
		out := tr.exec.Execute(req, stream)
		report.Outcomes = append(report.Outcomes, out)
		report.Session.Actions = append(report.Session.Actions, replayAction(req))
		if out.Result.Success {
			ok++
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"session":   report.Session.ID,
		"commands":  len(ordered),
		"succeeded": ok,
	}).Info("Turn finished")
	return report
}

// replayAction - запись запроса для повтора. Неполный запрос записывается с нулями.
func replayAction(req Request) domain.ReplayAction {
	a := domain.ReplayAction{Command: req.Command, Payload: req.Payload}
	if req.Env != nil {
		a.Year, a.Month = req.Env.Year, req.Env.Month
	}
	if req.Actor != nil {
		a.ActorID = req.Actor.ID
	}
	return a
}
