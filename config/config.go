package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Keys for the settings below.
const (
	KeySeed          = "seed"
	KeyTrials        = "trials"
	KeyWorkers       = "workers"
	KeyConfidence    = "confidence"
	KeyMarginOfError = "margin-of-error"
	KeyDebug         = "debug"
	KeySimLogPath    = "sim-log-path"
	KeyResultsDBPath = "results-db-path"
)

// Config wraps viper. Settings resolve, in order, from explicit Set calls,
// MONTELAB_* environment variables, an optional montelab.yml in the working
// directory, and defaults.
type Config struct {
	v *viper.Viper
}

func New() *Config {
	v := viper.New()
	v.SetDefault(KeySeed, uint64(0))
	v.SetDefault(KeyTrials, uint64(100000))
	v.SetDefault(KeyWorkers, 0) // 0 means one per CPU
	v.SetDefault(KeyConfidence, 95.0)
	v.SetDefault(KeyMarginOfError, 0.01)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeySimLogPath, "")
	v.SetDefault(KeyResultsDBPath, "montelab-results.db")

	v.SetEnvPrefix("montelab")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// Load reads the optional config file. A missing file is not an error.
func (c *Config) Load() error {
	c.v.SetConfigName("montelab")
	c.v.SetConfigType("yaml")
	c.v.AddConfigPath(".")
	err := c.v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	log.Debug().Str("file", c.v.ConfigFileUsed()).Msg("loaded config file")
	return nil
}

func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

func (c *Config) Seed() uint64 {
	return c.v.GetUint64(KeySeed)
}

func (c *Config) Trials() uint64 {
	return c.v.GetUint64(KeyTrials)
}

func (c *Config) Workers() int {
	return c.v.GetInt(KeyWorkers)
}

func (c *Config) Confidence() float64 {
	return c.v.GetFloat64(KeyConfidence)
}

func (c *Config) MarginOfError() float64 {
	return c.v.GetFloat64(KeyMarginOfError)
}

func (c *Config) Debug() bool {
	return c.v.GetBool(KeyDebug)
}

func (c *Config) SimLogPath() string {
	return c.v.GetString(KeySimLogPath)
}

func (c *Config) ResultsDBPath() string {
	return c.v.GetString(KeyResultsDBPath)
}

// Settings returns the resolved settings for display.
func (c *Config) Settings() map[string]any {
	return c.v.AllSettings()
}
