package paths

import (
	"os"

	"easyfrench/pkg/env"
)

// GetDataDir returns the directory for log files and other runtime data.
// DATA_DIR wins when set; inside Docker (/.dockerenv exists) it defaults to
// /app/data, otherwise the current directory.
func GetDataDir() string {
	if dir := os.Getenv(env.DataDirVar); dir != "" {
		return dir
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return "/app/data"
	}
	return "."
}
