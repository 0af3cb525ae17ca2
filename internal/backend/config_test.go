package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileThenLegacyThenPrefixedEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backend.yml")
	require.NoError(t, os.WriteFile(path, []byte(`schema_version: v1
base_url: http://file.example/
username: file-user
workspace_uuid: ws-file
timeout: 5s
paths:
  import_statuses: /v2/import
`), 0o644))

	t.Setenv("BACKEND_URL", "")
	t.Setenv("USERNAME", "legacy-user")
	t.Setenv("MANAGER_UUID", "mgr-legacy")
	t.Setenv("TICKETCSV_BACKEND__WORKSPACE_UUID", "ws-env")
	t.Setenv("TICKETCSV_BACKEND__PATHS__EXPORT_PENDING", "/v2/export")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file.example", cfg.BaseURL)
	assert.Equal(t, "legacy-user", cfg.Username)
	assert.Equal(t, "mgr-legacy", cfg.ManagerUUID)
	assert.Equal(t, "ws-env", cfg.WorkspaceUUID)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/v2/export", cfg.Paths.ExportPending)
	assert.Equal(t, "/v2/import", cfg.Paths.ImportStatuses)
	assert.Equal(t, "/user/authenticate", cfg.Paths.Authenticate)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://env.example")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfig_InvalidSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.yml")
	require.NoError(t, os.WriteFile(path, []byte("schema_version: v3\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
