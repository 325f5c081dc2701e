package engine

import (
	"github.com/google/uuid"

	"opensam-core/internal/domain/constraints"
)

// Config хранит параметры запуска движка
type Config struct {
	// SeedKey - ключ потока случайных чисел хода.
	// Один и тот же ключ и те же команды дают тот же результат.
	SeedKey string
	// Rules - правила мира поверх ограничений команд.
	Rules []constraints.Rule
}

// NewConfig создает конфиг по умолчанию (случайный ключ)
func NewConfig() Config {
	return Config{
		SeedKey: uuid.NewString(),
	}
}
