package common

import (
	"io"
	"log/slog"
	"os"
)

// LogPath returns the path to the cwtofu log file
func LogPath() string {
	return DataPath("cwtofu.log")
}

// SetupLogging configures slog to write to both stderr and ~/.cwtofu/cwtofu.log.
// Falls back to stderr only when the log file cannot be opened.
func SetupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if logFile := openLogFile(); logFile != nil {
		out = io.MultiWriter(os.Stderr, logFile)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func openLogFile() *os.File {
	if _, err := EnsureDataDir(); err != nil {
		return nil
	}
	f, err := os.OpenFile(LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}
