package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr" envconfig:"HTTP_ADDR"`
}

type Logging struct {
	Env       string `yaml:"env" envconfig:"LOG_ENV"`         // dev|prod
	Service   string `yaml:"service" envconfig:"LOG_SERVICE"` // presence-service
	Version   string `yaml:"version" envconfig:"LOG_VERSION"` // v0.1.0
	Backend   string `yaml:"backend" envconfig:"LOG_BACKEND"` // std|zap
	AddSource bool   `yaml:"addSource" envconfig:"LOG_ADD_SOURCE"`
	Debug     bool   `yaml:"debug" envconfig:"LOG_DEBUG"`
}

type Registry struct {
	SweepInterval      time.Duration `yaml:"sweepInterval" envconfig:"SWEEP_INTERVAL"`
	ParticipantTimeout time.Duration `yaml:"participantTimeout" envconfig:"PARTICIPANT_TIMEOUT"`
	DefaultMarkerTTL   time.Duration `yaml:"defaultMarkerTTL" envconfig:"DEFAULT_MARKER_TTL"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Registry Registry `yaml:"registry"`
}

// LoadConfig reads the yaml file pointed to by CONFIG_PATH (optional),
// then applies PRESENCE_* environment overrides and defaults.
func LoadConfig() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && os.Getenv("CONFIG_PATH") == "":
		// no config file is fine; env + defaults carry the day
	default:
		return nil, err
	}

	if err := envconfig.Process("PRESENCE", &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "presence-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Registry.SweepInterval <= 0 {
		c.Registry.SweepInterval = 60 * time.Second
	}
	if c.Registry.ParticipantTimeout <= 0 {
		c.Registry.ParticipantTimeout = 60 * time.Second
	}
	if c.Registry.DefaultMarkerTTL <= 0 {
		c.Registry.DefaultMarkerTTL = 5 * time.Minute
	}
}
