package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"checkpoint-node/models"
)

const defaultConfigFile = "config/config.yaml"

// Config is the resolved node configuration
type Config struct {
	Network            models.Network
	CheckpointsEnabled bool
	ServerPort         int
	LevelDBPath        string
	LogFile            string
	LogLevel           string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("network", string(models.MainNet))
	v.SetDefault("checkpoints.enabled", true)
	v.SetDefault("server.port", 8080)
	v.SetDefault("leveldb.path", "data/blockindex")
	v.SetDefault("log.app_log_file", "logs/app.log")
	v.SetDefault("log.level", "info")
}

// Load resolves configuration from defaults, the YAML config file, CHECKPOINT_*
// environment variables and command-line args, later sources winning.
// A missing config file is only an error when --config names it explicitly.
func Load(args []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	fs := pflag.NewFlagSet("checkpoint-node", pflag.ContinueOnError)
	configFile := fs.String("config", defaultConfigFile, "path to the YAML config file")
	fs.Bool("checkpoints", true, "enforce compiled-in checkpoints")
	testnet := fs.Bool("testnet", false, "use the test network checkpoints")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("checkpoints.enabled", fs.Lookup("checkpoints")); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("CHECKPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(*configFile)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) || fs.Changed("config") {
			return nil, fmt.Errorf("config file %s: %w", *configFile, err)
		}
	}

	if *testnet {
		v.Set("network", string(models.TestNet))
	}
	network, err := models.ParseNetwork(v.GetString("network"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Network:            network,
		CheckpointsEnabled: v.GetBool("checkpoints.enabled"),
		ServerPort:         v.GetInt("server.port"),
		LevelDBPath:        v.GetString("leveldb.path"),
		LogFile:            v.GetString("log.app_log_file"),
		LogLevel:           v.GetString("log.level"),
	}, nil
}
