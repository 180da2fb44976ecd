package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults_Without_File(t *testing.T) {
	req := require.New(t)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := LoadConfig()
	req.NoError(err)

	req.Equal(":8080", cfg.HTTP.Addr)
	req.Equal("presence-service", cfg.Logging.Service)
	req.Equal("dev", cfg.Logging.Env)
	req.Equal("std", cfg.Logging.Backend)
	req.Equal(60*time.Second, cfg.Registry.SweepInterval)
	req.Equal(60*time.Second, cfg.Registry.ParticipantTimeout)
	req.Equal(5*time.Minute, cfg.Registry.DefaultMarkerTTL)
}

func TestLoadConfig_From_Yaml(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte(`
http:
  addr: ":9090"
registry:
  sweepInterval: 5s
  participantTimeout: 30s
  defaultMarkerTTL: 1m
`), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal(":9090", cfg.HTTP.Addr)
	req.Equal(5*time.Second, cfg.Registry.SweepInterval)
	req.Equal(30*time.Second, cfg.Registry.ParticipantTimeout)
	req.Equal(time.Minute, cfg.Registry.DefaultMarkerTTL)
}

func TestLoadConfig_Env_Overrides_Yaml(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	req.NoError(os.WriteFile(path, []byte("http:\n  addr: \":9090\"\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PRESENCE_HTTP_ADDR", ":7070")
	t.Setenv("PRESENCE_SWEEP_INTERVAL", "15s")

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal(":7070", cfg.HTTP.Addr)
	req.Equal(15*time.Second, cfg.Registry.SweepInterval)
}

func TestLoadConfig_Explicit_Missing_File_Fails(t *testing.T) {
	req := require.New(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := LoadConfig()
	req.Error(err)
}
