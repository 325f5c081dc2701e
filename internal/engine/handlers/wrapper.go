package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"opensam-core/pkg/api"
)

// TypedFactory - "чистая" фабрика, которая работает с готовой структурой T
type TypedFactory[T any] func(ctx Context, args T) Command

// EmptyFactory - фабрика команды без аргументов (휴식, 훈련)
type EmptyFactory func(ctx Context) Command

// WithArgs берет "чистую" фабрику и превращает её в стандартную Factory.
// Она берет на себя значения по умолчанию, Unmarshal и Validate.
func WithArgs[T any](factory TypedFactory[T]) Factory {
	return func(ctx Context, raw json.RawMessage) (Command, error) {
		var args T

		// 1. Значения по умолчанию
		if d, ok := any(&args).(api.Defaulter); ok {
			d.SetDefaults()
		}

		// 2. Распаковка JSON. Пустые аргументы оставляют значения по умолчанию.
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &args); err != nil {
				return nil, fmt.Errorf("invalid payload format: %w", err)
			}
		}

		// 3. Автоматическая валидация
		if v, ok := any(args).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("validation failed: %w", err)
			}
		}

		// 4. Сборка команды
		return factory(ctx, args), nil
	}
}

// WithoutArgs - обертка для команд без данных.
func WithoutArgs(factory EmptyFactory) Factory {
	return func(ctx Context, _ json.RawMessage) (Command, error) {
		// Входящий JSON игнорируется, он не нужен логике.
		return factory(ctx), nil
	}
}
