package constraints

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"opensam-core/internal/domain"
)

// ExprEnv - то, что видит выражение правила.
type ExprEnv struct {
	General     *domain.General `expr:"general"`
	City        *domain.City    `expr:"city"`
	Nation      *domain.Nation  `expr:"nation"`
	DestGeneral *domain.General `expr:"destGeneral"`
	DestCity    *domain.City    `expr:"destCity"`
	DestNation  *domain.Nation  `expr:"destNation"`
	Env         *domain.Env     `expr:"env"`
}

// Expr - правило мира, записанное выражением, например "general.Injury <= 20".
// Выражение компилируется один раз; ложь или ошибка исполнения дают Fail(Reason).
type Expr struct {
	Source  string
	Reason  string
	program *vm.Program
}

// CompileExpr компилирует выражение с проверкой типов по ExprEnv.
func CompileExpr(src, reason string) (*Expr, error) {
	prog, err := expr.Compile(src, expr.Env(ExprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile rule %q: %w", src, err)
	}
	return &Expr{Source: src, Reason: reason, program: prog}, nil
}

func (e *Expr) Test(ctx *Context) Result {
	out, err := vm.Run(e.program, ExprEnv{
		General:     ctx.General,
		City:        ctx.City,
		Nation:      ctx.Nation,
		DestGeneral: ctx.DestGeneral,
		DestCity:    ctx.DestCity,
		DestNation:  ctx.DestNation,
		Env:         ctx.Env,
	})
	if err != nil {
		return Fail(e.Reason)
	}
	if ok, _ := out.(bool); ok {
		return Pass
	}
	return Fail(e.Reason)
}

// Rule - исходное описание правила мира (например, из файла сценария).
type Rule struct {
	Expr   string `json:"expr"`
	Reason string `json:"reason"`
}

// CompileRules компилирует список правил, сохраняя порядок.
func CompileRules(rules []Rule) ([]Constraint, error) {
	out := make([]Constraint, 0, len(rules))
	for _, r := range rules {
		c, err := CompileExpr(r.Expr, r.Reason)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
