package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// DataDir returns ~/.sso-profiles.
func DataDir() string {
	return filepath.Join(home(), ".sso-profiles")
}

// Resolve returns dir, or DataDir when dir is empty.
func Resolve(dir string) string {
	if dir == "" {
		return DataDir()
	}
	return dir
}

// ConfigFile returns <dir>/config.yaml.
func ConfigFile(dir string) string {
	return filepath.Join(Resolve(dir), "config.yaml")
}

// ProfilesFile returns <dir>/profiles.json, the file backend's document.
func ProfilesFile(dir string) string {
	return filepath.Join(Resolve(dir), "profiles.json")
}

// ProfilesDB returns <dir>/profiles.db, the sqlite backend's database.
func ProfilesDB(dir string) string {
	return filepath.Join(Resolve(dir), "profiles.db")
}
