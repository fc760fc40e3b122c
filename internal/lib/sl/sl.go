// Package sl содержит помощники для структурированных полей slog.
package sl

import "log/slog"

// Err возвращает атрибут "error" с текстом ошибки.
//
//	log.Error("failed to list accounts", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает атрибут "op" с именем операции, которую выполняет код.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
