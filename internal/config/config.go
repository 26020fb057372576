package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// FormDefaults are the values the evaluation form is pre-filled with.
// Volatility and risk-free rate are whole percent, expiry is whole days,
// matching the units the form submits.
type FormDefaults struct {
	RiskFreeRate float64 `yaml:"risk_free_rate"`
	Volatility   float64 `yaml:"volatility"`
	DaysToExpiry int     `yaml:"days_to_expiry"`
}

type Config struct {
	// Server settings
	Port string

	// Logging settings
	Logging LoggingConfig
	// Form prefill settings
	Defaults FormDefaults
}

type yamlConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Logging  LoggingConfig `yaml:"logging"`
	Defaults FormDefaults  `yaml:"defaults"`
}

// Load builds the configuration from environment variables, then lets
// config.yaml (if present in the working directory) override.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "analyzer.log"),
		},
		Defaults: FormDefaults{
			RiskFreeRate: getEnvFloat("DEFAULT_RISK_FREE_RATE", 5.0),
			Volatility:   getEnvFloat("DEFAULT_VOLATILITY", 20.0),
			DaysToExpiry: getEnvInt("DEFAULT_DAYS_TO_EXPIRY", 30),
		},
	}

	if yamlCfg := loadYAMLConfig(); yamlCfg != nil {
		if yamlCfg.Server.Port != "" {
			cfg.Port = yamlCfg.Server.Port
		}
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}
		if yamlCfg.Defaults.RiskFreeRate != 0 {
			cfg.Defaults.RiskFreeRate = yamlCfg.Defaults.RiskFreeRate
		}
		if yamlCfg.Defaults.Volatility != 0 {
			cfg.Defaults.Volatility = yamlCfg.Defaults.Volatility
		}
		if yamlCfg.Defaults.DaysToExpiry != 0 {
			cfg.Defaults.DaysToExpiry = yamlCfg.Defaults.DaysToExpiry
		}
	}

	return cfg
}

func loadYAMLConfig() *yamlConfig {
	data, err := os.ReadFile("config.yaml")
	if err != nil {
		// Could not read config.yaml - silently return nil
		return nil
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config.yaml - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NextMonthlyExpiration calculates the next monthly options expiration
// (3rd Friday) in YYYY-MM-DD format, used to pre-fill the expiry date field.
func NextMonthlyExpiration() string {
	today := time.Now()
	currentMonth := today.Month()
	currentYear := today.Year()

	// Find 3rd Friday of current month
	firstDay := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, time.UTC)
	firstFriday := firstDay.AddDate(0, 0, (5-int(firstDay.Weekday())+7)%7)
	thirdFriday := firstFriday.AddDate(0, 0, 14)

	// Past this month's 3rd Friday, roll to next month's
	if today.After(thirdFriday) {
		nextMonth := currentMonth + 1
		nextYear := currentYear
		if nextMonth > 12 {
			nextMonth = 1
			nextYear++
		}

		nextFirstDay := time.Date(nextYear, nextMonth, 1, 0, 0, 0, 0, time.UTC)
		nextFirstFriday := nextFirstDay.AddDate(0, 0, (5-int(nextFirstDay.Weekday())+7)%7)
		return nextFirstFriday.AddDate(0, 0, 14).Format("2006-01-02")
	}

	return thirdFriday.Format("2006-01-02")
}
