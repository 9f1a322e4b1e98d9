package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error. A nil error yields an empty
// attribute, which slog handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	return slog.String("error", err.Error())
}

// Op names the operation a log line belongs to.
func Op(name string) slog.Attr {
	return slog.String("op", name)
}
