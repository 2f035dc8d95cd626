package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruminaider/sso-profiles/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestDataDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.DataDir(), home))
	assert.True(t, strings.HasSuffix(paths.DataDir(), ".sso-profiles"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, paths.DataDir(), paths.Resolve(""))
	assert.Equal(t, "/tmp/x", paths.Resolve("/tmp/x"))
}

func TestConfigFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.ConfigFile(""), filepath.Join(".sso-profiles", "config.yaml")))
	assert.Equal(t, filepath.Join("/tmp/x", "config.yaml"), paths.ConfigFile("/tmp/x"))
}

func TestProfilesFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp/x", "profiles.json"), paths.ProfilesFile("/tmp/x"))
}

func TestProfilesDB(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp/x", "profiles.db"), paths.ProfilesDB("/tmp/x"))
}
