// Package constraints содержит правила, которые проверяются перед исполнением команды.
//
// Каждое правило - один чистый предикат: читает снимки из Context и возвращает
// Pass или Fail с причиной. Список правил проверяется по порядку, первое
// нарушенное правило и есть ответ пользователю.
package constraints

import "opensam-core/internal/domain"

// Result - итог проверки: Pass или Fail(Reason).
type Result struct {
	Reason string
	failed bool
}

// Pass - правило выполнено.
var Pass = Result{}

// Fail создаёт результат-отказ с причиной.
func Fail(reason string) Result {
	return Result{Reason: reason, failed: true}
}

// OK - правило выполнено.
func (r Result) OK() bool { return !r.failed }

func (r Result) String() string {
	if r.OK() {
		return "Pass"
	}
	return "Fail(" + r.Reason + ")"
}

// Context - всё, что правило может прочитать. Указатели Dest* заполняет вызывающий.
type Context struct {
	General     *domain.General
	City        *domain.City
	Nation      *domain.Nation
	DestGeneral *domain.General
	DestCity    *domain.City
	DestNation  *domain.Nation
	Env         *domain.Env
}

// Constraint - одно правило. Test не должен менять снимки.
type Constraint interface {
	Test(ctx *Context) Result
}

// Func позволяет использовать функцию как правило.
type Func func(ctx *Context) Result

func (f Func) Test(ctx *Context) Result { return f(ctx) }

// TestAll проверяет правила по порядку и возвращает первый отказ.
// Пустой список - Pass.
func TestAll(list []Constraint, ctx *Context) Result {
	_, res := FirstFailure(list, ctx)
	return res
}

// FirstFailure то же, что TestAll, но возвращает ещё и индекс нарушенного правила (-1 если нет).
func FirstFailure(list []Constraint, ctx *Context) (int, Result) {
	for i, c := range list {
		if res := c.Test(ctx); !res.OK() {
			return i, res
		}
	}
	return -1, Pass
}
