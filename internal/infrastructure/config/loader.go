package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration from the environment-named YAML file,
// with GC_-prefixed environment variables overriding file values
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix("GC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 5) // minutes
	v.SetDefault("database.connMaxIdleTime", 5) // minutes
	v.SetDefault("database.queryTimeout", 10)   // seconds
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("auth.tokenTTL", 24) // hours
}

// getEnvironment determines the environment based on GC_ENV
func getEnvironment() string {
	env := os.Getenv("GC_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for the sensitive settings that never belong in a checked-in file
func processEnvOverrides(v *viper.Viper) {
	if dbHost := os.Getenv("GC_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := os.Getenv("GC_DB_PORT"); dbPort != "" {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("GC_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("GC_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("GC_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("GC_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}

	if secret := os.Getenv("GC_AUTH_TOKEN_SECRET"); secret != "" {
		v.Set("auth.tokenSecret", secret)
	}

	if adminUser := os.Getenv("GC_ADMIN_USERNAME"); adminUser != "" {
		v.Set("admin.username", adminUser)
	}
	if adminEmail := os.Getenv("GC_ADMIN_EMAIL"); adminEmail != "" {
		v.Set("admin.email", adminEmail)
	}
	if adminPass := os.Getenv("GC_ADMIN_PASSWORD"); adminPass != "" {
		v.Set("admin.password", adminPass)
	}
}

// processDurations converts the raw integer values read from the config
// file into time.Duration fields with their documented units
func processDurations(config *Config) {
	config.Server.ReadTimeout = toDuration(config.Server.ReadTimeout, time.Second)
	config.Server.WriteTimeout = toDuration(config.Server.WriteTimeout, time.Second)
	config.Server.IdleTimeout = toDuration(config.Server.IdleTimeout, time.Second)
	config.Server.ReadHeaderTimeout = toDuration(config.Server.ReadHeaderTimeout, time.Second)
	config.Server.ShutdownTimeout = toDuration(config.Server.ShutdownTimeout, time.Second)

	config.Database.ConnMaxLifetime = toDuration(config.Database.ConnMaxLifetime, time.Minute)
	config.Database.ConnMaxIdleTime = toDuration(config.Database.ConnMaxIdleTime, time.Minute)
	config.Database.QueryTimeout = toDuration(config.Database.QueryTimeout, time.Second)

	config.Auth.TokenTTL = toDuration(config.Auth.TokenTTL, time.Hour)
}

// toDuration interprets a raw numeric value as a count of the given unit.
// Values already larger than the unit are assumed to be durations.
func toDuration(raw time.Duration, unit time.Duration) time.Duration {
	if raw >= unit {
		return raw
	}
	return raw * unit
}
