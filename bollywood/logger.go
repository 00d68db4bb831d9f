package bollywood

import "log/slog"

// logger is the package-wide default used by engines created without WithLogger.
var logger *slog.Logger = slog.Default()

// SetLogger overrides the package logger.
//
// If not set, slog.Default() is used.
func SetLogger(l *slog.Logger) {
	logger = l
}
