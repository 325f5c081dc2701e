package handlers

import (
	"encoding/json"

	"opensam-core/internal/domain"
	"opensam-core/internal/domain/constraints"
	"opensam-core/internal/modifier"
	"opensam-core/pkg/api"
	"opensam-core/pkg/rng"
)

// Context передает команде снимки мира.
// Команда их только читает: изменения возвращаются диффом в api.Result.
type Context struct {
	Actor  *domain.General // Тот, кто выполняет команду
	City   *domain.City    // Город, где стоит исполнитель
	Nation *domain.Nation  // Государство исполнителя (nil у вольного)

	DestGeneral *domain.General
	DestCity    *domain.City
	DestNation  *domain.Nation

	// DestCityGenerals - полководцы в городе-цели (для диверсий и разведки).
	DestCityGenerals []*domain.General

	Env       *domain.Env
	Modifiers modifier.Provider
}

// Constraints собирает контекст для проверки правил.
func (c Context) Constraints() *constraints.Context {
	return &constraints.Context{
		General:     c.Actor,
		City:        c.City,
		Nation:      c.Nation,
		DestGeneral: c.DestGeneral,
		DestCity:    c.DestCity,
		DestNation:  c.DestNation,
		Env:         c.Env,
	}
}

// Mod - провайдер модификаторов, без nil.
func (c Context) Mod() modifier.Provider {
	return modifier.OrNoop(c.Modifiers)
}

// Command - контракт любой команды (휴식, 농지개간, 포상...).
// Экземпляр живёт одно исполнение и не хранит состояния между ходами.
type Command interface {
	// ActionName - отображаемое название.
	ActionName() string
	// MinConstraints - дешёвая проверка доступности (для интерфейса).
	MinConstraints() []constraints.Constraint
	// FullConstraints - проверка непосредственно перед Run.
	FullConstraints() []constraints.Constraint
	Cost() domain.Cost
	PreReqTurn() int
	PostReqTurn() int
	// Duration - перезарядка в тиках движка между одинаковыми командами.
	Duration() int
	// Run - единственное место, где расходуется поток случайных чисел. Без I/O.
	Run(s *rng.Stream) api.Result
}

// TermTracker реализуют команды, которые сами ведут счётчик ходов (전투태세).
// Для них исполнитель не накапливает PreReqTurn.
type TermTracker interface {
	TracksTerm() bool
}

// Alternative реализуют команды с запасной командой на случай отказа правил.
type Alternative interface {
	AlternativeCommand() (domain.CommandCode, bool)
}

// Factory создает команду из контекста и сырых аргументов.
type Factory func(ctx Context, raw json.RawMessage) (Command, error)

// Registrar - куда пакеты команд регистрируют свои фабрики.
type Registrar interface {
	Register(code domain.CommandCode, f Factory)
}

// DefaultDuration - перезарядка большинства команд.
const DefaultDuration = 300

// Base - общие значения по умолчанию: без цены и без ожидания.
// Встраивается в команды, которые переопределяют только нужное.
type Base struct {
	Ctx Context
}

func (Base) MinConstraints() []constraints.Constraint { return nil }
func (Base) Cost() domain.Cost                        { return domain.Cost{} }
func (Base) PreReqTurn() int                          { return 0 }
func (Base) PostReqTurn() int                         { return 0 }
func (Base) Duration() int                            { return DefaultDuration }

// Date - дата хода для повествования.
func (b Base) Date() string {
	return b.Ctx.Env.FormatDate()
}
