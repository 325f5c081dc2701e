// Package actions содержит команды полководца.
package actions

import (
	"opensam-core/internal/domain"
	"opensam-core/internal/engine/handlers"
)

// Register добавляет все команды полководца в реестр r.
func Register(r handlers.Registrar) {
	r.Register(domain.CmdRest, handlers.WithoutArgs(NewRest))

	// Внутренние дела
	for _, cfg := range DomesticCommands {
		r.Register(cfg.Code, handlers.WithoutArgs(NewDomestic(cfg)))
	}
	r.Register(domain.CmdSettle, handlers.WithoutArgs(NewSettle))
	r.Register(domain.CmdTechResearch, handlers.WithoutArgs(NewTechResearch))

	// Войска
	r.Register(domain.CmdTrain, handlers.WithoutArgs(NewTrain))
	r.Register(domain.CmdMorale, handlers.WithoutArgs(NewMorale))
	r.Register(domain.CmdBattleStance, handlers.WithoutArgs(NewBattleStance))
	r.Register(domain.CmdConscript, handlers.WithArgs(NewRecruit(Conscription)))
	r.Register(domain.CmdRecruit, handlers.WithArgs(NewRecruit(Enlistment)))
	r.Register(domain.CmdDrill, handlers.WithoutArgs(NewDrill))

	// Ресурсы
	r.Register(domain.CmdDonate, handlers.WithArgs(NewDonate))
	r.Register(domain.CmdGift, handlers.WithArgs(NewGift))
	r.Register(domain.CmdProcure, handlers.WithoutArgs(NewProcure))
	r.Register(domain.CmdTradeRice, handlers.WithArgs(NewTradeRice))

	// Против чужих городов
	for _, cfg := range SabotageCommands {
		r.Register(cfg.Code, handlers.WithArgs(NewSabotage(cfg)))
	}
	r.Register(domain.CmdSpy, handlers.WithArgs(NewSpy))

	// Передвижение
	r.Register(domain.CmdMove, handlers.WithArgs(NewMove))
	r.Register(domain.CmdSortie, handlers.WithArgs(NewSortie))

	// Принадлежность
	r.Register(domain.CmdFoundNation, handlers.WithArgs(NewFoundNation))
	r.Register(domain.CmdRaiseArmy, handlers.WithoutArgs(NewRaiseArmy))
	r.Register(domain.CmdResign, handlers.WithoutArgs(NewResign))
}
