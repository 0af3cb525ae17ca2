package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ticketcsv/internal/spec"
)

const SupportedSchema = "v1"

// LoadJobSpec parses a job YAML, validates schema_version, fills defaults
// and resolves relative paths against the job file's directory.
func LoadJobSpec(path string) (spec.File, error) {
	var cfg spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("job %s: %w", path, err)
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, fmt.Errorf("job schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}

	base := filepath.Dir(path)
	cfg.Source.Config = resolve(base, cfg.Source.Config)
	cfg.Source.Path = resolve(base, cfg.Source.Path)
	cfg.SinkConfigs.Backend.Config = resolve(base, cfg.SinkConfigs.Backend.Config)
	cfg.SinkConfigs.File.Dir = resolve(base, cfg.SinkConfigs.File.Dir)

	ApplyDefaults(&cfg)
	return cfg, nil
}

// Default returns the job used when no file is given: backend source
// configured from the environment, deterministic policy, backend sink.
func Default() spec.File {
	var cfg spec.File
	cfg.SchemaVersion = SupportedSchema
	cfg.Source.Kind = "backend"
	cfg.Sinks = []string{"backend"}
	ApplyDefaults(&cfg)
	return cfg
}

func ApplyDefaults(c *spec.File) {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = ":8000"
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 7070
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9100
	}
	if c.Transform.Type == "" {
		c.Transform.Type = "inproc"
	}
	if c.Transform.Policy == "" {
		c.Transform.Policy = "deterministic"
	}
	if c.Transform.StatusColumn == "" {
		c.Transform.StatusColumn = "status"
	}
	if c.Transform.TimeoutMS == 0 {
		c.Transform.TimeoutMS = 10_000
	}
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
