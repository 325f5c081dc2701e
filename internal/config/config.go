// Package config собирает настраиваемые параметры игры и запуска из окружения.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Tunables - игровые константы, которые мир может переопределить.
// Значения по умолчанию совпадают с классическими правилами.
type Tunables struct {
	DevelCost int `env:"DEVEL_COST" envDefault:"100" json:"develCost"`

	SabotageProbCoefByStat          int     `env:"SABOTAGE_PROB_COEF_BY_STAT" envDefault:"300" json:"sabotageProbCoefByStat"`
	SabotageDefenceCoefByGeneralCnt float64 `env:"SABOTAGE_DEFENCE_COEF_BY_GENERAL_CNT" envDefault:"0.04" json:"sabotageDefenceCoefByGeneralCnt"`
	SabotageDamageMin               int     `env:"SABOTAGE_DAMAGE_MIN" envDefault:"100" json:"sabotageDamageMin"`
	SabotageDamageMax               int     `env:"SABOTAGE_DAMAGE_MAX" envDefault:"800" json:"sabotageDamageMax"`

	MaxTrainByCommand int     `env:"MAX_TRAIN_BY_COMMAND" envDefault:"80" json:"maxTrainByCommand"`
	MaxAtmosByCommand int     `env:"MAX_ATMOS_BY_COMMAND" envDefault:"80" json:"maxAtmosByCommand"`
	TrainDelta        float64 `env:"TRAIN_DELTA" envDefault:"0.05" json:"trainDelta"`
	AtmosDelta        float64 `env:"ATMOS_DELTA" envDefault:"0.05" json:"atmosDelta"`

	ExchangeFee float64 `env:"EXCHANGE_FEE" envDefault:"0.01" json:"exchangeFee"`
	BaseGold    int     `env:"BASE_GOLD" envDefault:"1000" json:"baseGold"`
	BaseRice    int     `env:"BASE_RICE" envDefault:"1000" json:"baseRice"`

	InitialNationGenLimit  int `env:"INITIAL_NATION_GEN_LIMIT" envDefault:"10" json:"initialNationGenLimit"`
	MinAvailableRecruitPop int `env:"MIN_AVAILABLE_RECRUIT_POP" envDefault:"3000" json:"minAvailableRecruitPop"`
	OpeningPartYears       int `env:"OPENING_PART_YEARS" envDefault:"3" json:"openingPartYears"`
	JoinActionLimit        int `env:"JOIN_ACTION_LIMIT" envDefault:"12" json:"joinActionLimit"`

	TechLevelIncYear        int `env:"TECH_LEVEL_INC_YEAR" envDefault:"5" json:"techLevelIncYear"`
	InitialAllowedTechLevel int `env:"INITIAL_ALLOWED_TECH_LEVEL" envDefault:"1" json:"initialAllowedTechLevel"`
	MaxTechLevel            int `env:"MAX_TECH_LEVEL" envDefault:"12" json:"maxTechLevel"`
}

// Runtime - параметры CLI симулятора.
type Runtime struct {
	JournalPath string `env:"JOURNAL_PATH" envDefault:""`
	ReplayDir   string `env:"REPLAY_DIR" envDefault:"replays"`
}

const envPrefix = "OPENSAM_"

// Default возвращает значения по умолчанию, не читая окружение.
func Default() Tunables {
	var t Tunables
	// Пустое окружение: срабатывают только envDefault.
	_ = env.ParseWithOptions(&t, env.Options{Environment: map[string]string{}})
	return t
}

// Load читает Tunables из окружения с префиксом OPENSAM_.
func Load() (Tunables, error) {
	var t Tunables
	if err := ParseEnv(&t); err != nil {
		return Tunables{}, err
	}
	return t, nil
}

// LoadRuntime читает настройки запуска.
func LoadRuntime() (Runtime, error) {
	var r Runtime
	if err := ParseEnv(&r); err != nil {
		return Runtime{}, err
	}
	return r, nil
}

// ParseEnv заполняет target из переменных окружения с префиксом OPENSAM_.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// IsTechLimited сообщает, упёрлась ли технология в потолок текущего года.
func (t Tunables) IsTechLimited(relYear int, tech float64) bool {
	inc := max(t.TechLevelIncYear, 1)
	allowed := min(relYear/inc+t.InitialAllowedTechLevel, t.MaxTechLevel)
	return techLevel(tech, t.MaxTechLevel) >= allowed
}

func techLevel(tech float64, maxLevel int) int {
	return min(max(int(tech/1000), 0), maxLevel)
}
