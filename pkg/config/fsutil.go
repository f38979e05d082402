package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// dirStatus reports whether a config directory exists and, if so, whether
// corpusminer can actually write into it.
type dirStatus struct {
	exists   bool
	writable bool
	err      error
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureDir creates dirPath (and any missing parents) if it doesn't exist.
func ensureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// saveTOMLFile encodes data as TOML and writes it to filePath, overwriting
// any existing content.
func saveTOMLFile(data any, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		log.Errorf("failed to create config file %s: %v", filePath, err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(data)
}

// absoluteConfigPath resolves configPath to an absolute path for
// GetActiveConfigPath, falling back to the original string if it can't be
// resolved.
func absoluteConfigPath(configPath string) string {
	if configPath == "" {
		return "unknown"
	}
	if filepath.IsAbs(configPath) {
		return configPath
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		return abs
	}
	return configPath
}

// dirWritable probes dirPath by creating and removing a throwaway file in it.
func dirWritable(dirPath string) bool {
	probe := filepath.Join(dirPath, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		log.Warnf("cannot write to directory %s: %v", dirPath, err)
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// executableDir returns the directory the running binary lives in, used as
// a last-resort config location when the home directory is unavailable.
func executableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// checkDirStatus reports whether dirPath exists (creating it if not) and
// whether it's writable, for GetConfigDir's fallback chain.
func checkDirStatus(dirPath string) dirStatus {
	if _, err := os.Stat(dirPath); err == nil {
		return dirStatus{exists: true, writable: dirWritable(dirPath)}
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		log.Warnf("cannot create directory %s: %v", dirPath, err)
		return dirStatus{err: err}
	}
	return dirStatus{exists: true, writable: dirWritable(dirPath)}
}

// loadTOMLFile decodes the TOML file at configPath into target.
func loadTOMLFile(configPath string, target any) error {
	if _, err := toml.DecodeFile(configPath, target); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// parseTOMLWithRecovery decodes configPath into a loose map, for rescuing
// the sections that do parse out of a config.toml with a syntax error
// elsewhere in the file.
func parseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	loose := make(map[string]any)
	if _, err := toml.Decode(string(data), &loose); err != nil {
		log.Warnf("could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return loose, nil
}

// tomlSection extracts a [section] table from a loosely-parsed TOML map.
func tomlSection(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// tomlInt extracts an integer value from a loosely-parsed TOML map; TOML
// integers decode as int64.
func tomlInt(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// tomlBool extracts a boolean value from a loosely-parsed TOML map.
func tomlBool(data map[string]any, key string) (bool, bool) {
	val, ok := data[key].(bool)
	return val, ok
}
