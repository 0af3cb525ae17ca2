package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TICKETCSV_BACKEND__"

type PathsCfg struct {
	Authenticate   string `koanf:"authenticate"`
	ExportPending  string `koanf:"export_pending"` // workspace UUID is appended
	ImportStatuses string `koanf:"import_statuses"`
}

type Config struct {
	BaseURL       string        `koanf:"base_url"`
	Username      string        `koanf:"username"`
	Password      string        `koanf:"password"`
	WorkspaceUUID string        `koanf:"workspace_uuid"`
	ManagerUUID   string        `koanf:"manager_uuid"`
	Timeout       time.Duration `koanf:"timeout"`
	Paths         PathsCfg      `koanf:"paths"`
}

// legacyEnv maps the variable names the automation has always been deployed
// with onto config keys.
var legacyEnv = map[string]string{
	"BACKEND_URL":    "base_url",
	"USERNAME":       "username",
	"PASSWORD":       "password",
	"WORKSPACE_UUID": "workspace_uuid",
	"MANAGER_UUID":   "manager_uuid",
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// LoadConfig merges YAML (if present) with the legacy variables and then
// with prefixed env-vars (prefix `TICKETCSV_BACKEND__`, delimiter `__`),
// later layers winning.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	sv := k.String("schema_version")
	if sv != "" && sv != "v1" {
		return Config{}, fmt.Errorf("backend schema_version %q not supported (want v1)", sv)
	}

	// empty variables are skipped so they never clobber file values
	_ = k.Load(env.ProviderWithValue("", ".", func(key, val string) (string, any) {
		if val == "" {
			return "", nil
		}
		return legacyEnv[key], val
	}), nil)
	_ = k.Load(env.ProviderWithValue(envPrefix, "__", func(key, val string) (string, any) {
		if val == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, envPrefix)), val
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Validate reports the first missing required setting.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return errors.New("backend: base_url (BACKEND_URL) is required")
	case c.Username == "":
		return errors.New("backend: username (USERNAME) is required")
	case c.WorkspaceUUID == "":
		return errors.New("backend: workspace_uuid (WORKSPACE_UUID) is required")
	}
	return nil
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func applyDefaults(c *Config) {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Paths.Authenticate == "" {
		c.Paths.Authenticate = "/user/authenticate"
	}
	if c.Paths.ExportPending == "" {
		c.Paths.ExportPending = "/ticket/export-pending"
	}
	if c.Paths.ImportStatuses == "" {
		c.Paths.ImportStatuses = "/ticket/import-statuses"
	}
}
