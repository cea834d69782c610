package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/propedge/propedge/internal/models"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Odds provider
	OddsAPIKey string `mapstructure:"ODDS_API_KEY"`

	// Caching
	RedisURL string `mapstructure:"REDIS_URL"`
	CacheDir string `mapstructure:"CACHE_DIR"`

	// Output
	OutputPath string `mapstructure:"OUTPUT_PATH"`

	// Run shape
	Leagues []string `mapstructure:"LEAGUES"`
	TopN    int      `mapstructure:"TOP_N"`
	MinEdge float64  `mapstructure:"MIN_EDGE"`

	// Scheduling
	Schedule string `mapstructure:"SCHEDULE"`

	// External APIs
	RequestDelay time.Duration `mapstructure:"REQUEST_DELAY"`
	HTTPTimeout  time.Duration `mapstructure:"HTTP_TIMEOUT"`

	// Scoring
	ProfilesPath string `mapstructure:"PROFILES_PATH"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("ODDS_API_KEY", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_DIR", ".cache")
	viper.SetDefault("OUTPUT_PATH", "AI_Prediction_Engine.html")
	viper.SetDefault("LEAGUES", "nba,nfl")
	viper.SetDefault("TOP_N", 8)
	viper.SetDefault("MIN_EDGE", 65.0) // picks scoring below this never render
	viper.SetDefault("SCHEDULE", "0 8 * * *") // daily at 08:00
	viper.SetDefault("REQUEST_DELAY", "250ms")
	viper.SetDefault("HTTP_TIMEOUT", "10s")
	viper.SetDefault("PROFILES_PATH", "") // empty means built-in profiles

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse leagues from comma-separated string
	if leaguesStr := viper.GetString("LEAGUES"); leaguesStr != "" {
		config.Leagues = strings.Split(leaguesStr, ",")
	}

	return &config, nil
}

// ParsedLeagues validates the configured league list.
func (c *Config) ParsedLeagues() ([]models.League, error) {
	var leagues []models.League
	for _, raw := range c.Leagues {
		switch models.League(strings.ToLower(strings.TrimSpace(raw))) {
		case models.LeagueNBA:
			leagues = append(leagues, models.LeagueNBA)
		case models.LeagueNFL:
			leagues = append(leagues, models.LeagueNFL)
		default:
			return nil, fmt.Errorf("unsupported league %q", raw)
		}
	}
	if len(leagues) == 0 {
		return nil, fmt.Errorf("no leagues configured")
	}
	return leagues, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
