package sl

import "log/slog"

// Err wraps an error as a slog attribute.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Module tags a logger with the component it belongs to.
func Module(name string) slog.Attr {
	return slog.Attr{
		Key:   "module",
		Value: slog.StringValue(name),
	}
}

// Secret logs a sensitive value in redacted form, keeping only a short
// prefix so operators can tell configured values apart.
func Secret(key, value string) slog.Attr {
	masked := "empty"
	if n := len(value); n > 0 {
		if n > 4 {
			masked = value[:4] + "****"
		} else {
			masked = "****"
		}
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
