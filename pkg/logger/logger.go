package logger

import (
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Settings - параметры логгера, читаемые из окружения.
type Settings struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	Configure(Load(), os.Stdout)
}

// Load читает настройки из окружения. Ошибка разбора даёт значения по умолчанию.
func Load() Settings {
	var s Settings
	if err := env.Parse(&s); err != nil {
		s = Settings{Level: "info", Format: "text"}
	}
	return s
}

// Configure пересоздаёт логгер с явными настройками (нужно в тестах и CLI).
func Configure(s Settings, out io.Writer) {
	Log = logrus.New()

	// 1. Уровень. Нераспознанный уровень - "info".
	level, err := logrus.ParseLevel(s.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(s.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(out)
}
