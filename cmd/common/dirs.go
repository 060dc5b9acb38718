package common

import (
	"os"
	"path/filepath"
)

// DataDirEnv overrides the data directory, mostly for tests and portable installs.
const DataDirEnv = "CWTOFU_HOME"

// DataDir returns the directory holding config, logs and session stats (~/.cwtofu).
func DataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cwtofu")
}

// DataPath joins name onto DataDir, or returns "" when no home directory is known.
func DataPath(name string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// EnsureDataDir creates the data directory if needed.
func EnsureDataDir() (string, error) {
	dir := DataDir()
	if dir == "" {
		return "", os.ErrNotExist
	}
	return dir, os.MkdirAll(dir, 0755)
}
