package memory

import (
	"os"
	"path/filepath"
)

// EnvPath is the environment variable that overrides the backing file path.
const EnvPath = "MEMVAULT_PATH"

// Config holds memory store configuration.
type Config struct {
	// Path is the location of the JSON backing file. The store owns this
	// file exclusively; pointing two stores at the same path is unsupported.
	Path string

	// DiscardCorrupt makes Open reinitialize an empty store when the backing
	// file exists but cannot be parsed, instead of failing with
	// CorruptStoreError. The corrupt file is overwritten on the next save.
	DiscardCorrupt bool
}

// DefaultConfig returns the default configuration: MEMVAULT_PATH if set,
// otherwise memory.json under ~/.memvault.
func DefaultConfig() Config {
	if p := os.Getenv(EnvPath); p != "" {
		return Config{Path: p}
	}
	home, _ := os.UserHomeDir()
	return Config{Path: filepath.Join(home, ".memvault", "memory.json")}
}
