package configs

import (
	"context"
	"os"
	"time"

	"gitlab.com/BIC_Dev/reaction-role-manager/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Config struct that contians the structure of the config
type Config struct {
	Redis struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Pool int    `yaml:"pool"`
	} `yaml:"REDIS"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"STORAGE"`
	CacheSettings struct {
		PendingSetup CacheSetting `yaml:"pending_setup"`
	} `yaml:"CACHE_SETTINGS"`
	Bot struct {
		OkColor             int           `yaml:"ok_color"`
		WarnColor           int           `yaml:"warn_color"`
		ErrorColor          int           `yaml:"error_color"`
		DocumentationURL    string        `yaml:"documentation_url"`
		WorkingThumbnail    string        `yaml:"working_thumbnail"`
		OkThumbnail         string        `yaml:"ok_thumbnail"`
		WarnThumbnail       string        `yaml:"warn_thumbnail"`
		ErrorThumbnail      string        `yaml:"error_thumbnail"`
		AllowEmojiOverwrite bool          `yaml:"allow_emoji_overwrite"`
		RequestTimeout      time.Duration `yaml:"request_timeout"`
	} `yaml:"BOT"`
	Runners struct {
		Reconcile Runner `yaml:"reconcile"`
	} `yaml:"RUNNERS"`
	Commands []Command `yaml:"COMMANDS"`
}

// CacheSetting struct
type CacheSetting struct {
	Base string `yaml:"base"`
	TTL  string `yaml:"ttl"`
}

// Command struct
type Command struct {
	Name        string `yaml:"name"`
	Long        string `yaml:"long"`
	Description string `yaml:"description"`
	Enabled     bool   `yaml:"enabled"`
}

// Runner struct
type Runner struct {
	Frequency time.Duration `yaml:"frequency"`
	Workers   int           `yaml:"workers"`
	Delay     time.Duration `yaml:"delay"`
	Enabled   bool          `yaml:"enabled"`
}

// GetConfig gets the config file and returns a Config struct
func GetConfig(ctx context.Context, env string) *Config {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	configFile := "./configs/conf-" + env + ".yml"
	f, err := os.Open(configFile)

	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	defer f.Close()

	var config Config
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)

	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	return &config
}
