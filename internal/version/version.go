package version

import (
	"fmt"
)

// Задаются через -ldflags при сборке.
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
)

// RulesetVersion - версия правил команд. Меняется, когда меняются формулы
// или порядок обращений к потоку случайных чисел: старые повторы перестают сходиться.
const RulesetVersion = "opensam-rules/1"

// CheckRuleset сверяет версию правил, записанную в повторе, с текущей.
// Пустая версия (старые записи) принимается.
func CheckRuleset(recorded string) error {
	if recorded == "" || recorded == RulesetVersion {
		return nil
	}
	return fmt.Errorf("replay ruleset %q does not match %q", recorded, RulesetVersion)
}

// String returns a human-readable build string.
func String() string {
	return fmt.Sprintf("rules[%s] built[%s] commit[%s]",
		RulesetVersion,
		coalesce(BuildDate, "unknown"),
		coalesce(BuildCommit, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
