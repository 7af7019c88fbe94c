// Package sl содержит вспомогательные функции для работы с логгером slog:
// создание логгера под окружение и единообразное поле ошибки.
package sl

import (
	"io"
	"log/slog"
	"os"
)

// New создаёт текстовый логгер, уровень которого зависит от окружения:
// debug для local и dev, info для всего остального.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	switch env {
	case "local", "dev":
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
