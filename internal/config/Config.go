package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by the CLI and the SSH server.
type Config struct {
	Layout       string        // Layout name, see layouts.Registry
	Finder       string        // Path finder name, see finder.Names
	Script       string        // Lua strategy file for the lua finder, empty for the built-in one
	InfoLen      int           // Annotation characters per rendered cell
	TickInterval time.Duration // Delay between steps in the viewer
	DBPath       string        // SQLite run history file
	LogLevel     string        // debug, info, warn or error

	SSHHost             string
	SSHPort             string
	HostKeyPath         string
	MaxConnectionsPerIP int
}

const (
	defaultLayout       = "wilson"
	defaultFinder       = "left-wall"
	defaultInfoLen      = 5
	defaultTickInterval = 120 * time.Millisecond
	defaultDBPath       = "runs.db"
	defaultLogLevel     = "info"
	defaultSSHHost      = "0.0.0.0"
	defaultSSHPort      = "6997"
	defaultHostKeyPath  = ".ssh/micromouse_ed25519"
	defaultMaxConnPerIP = 2
)

// Load reads an optional .env file and then the MICROMOUSE_* environment
// variables. Missing or malformed values fall back to defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not loaded", "error", err)
	}

	return Config{
		Layout:              getEnvWithDefault("MICROMOUSE_LAYOUT", defaultLayout),
		Finder:              getEnvWithDefault("MICROMOUSE_FINDER", defaultFinder),
		Script:              getEnvWithDefault("MICROMOUSE_SCRIPT", ""),
		InfoLen:             getEnvAsIntWithDefault("MICROMOUSE_INFO_LEN", defaultInfoLen),
		TickInterval:        getEnvAsDurationWithDefault("MICROMOUSE_TICK", defaultTickInterval),
		DBPath:              getEnvWithDefault("MICROMOUSE_DB_PATH", defaultDBPath),
		LogLevel:            getEnvWithDefault("MICROMOUSE_LOG_LEVEL", defaultLogLevel),
		SSHHost:             getEnvWithDefault("MICROMOUSE_SSH_HOST", defaultSSHHost),
		SSHPort:             getEnvWithDefault("MICROMOUSE_SSH_PORT", defaultSSHPort),
		HostKeyPath:         getEnvWithDefault("MICROMOUSE_PRIVATE_KEY_PATH", defaultHostKeyPath),
		MaxConnectionsPerIP: getEnvAsIntWithDefault("MICROMOUSE_MAX_CONNECTIONS_PER_IP", defaultMaxConnPerIP),
	}
}

// ApplyLogLevel sets the global logger level, keeping the current one if
// level cannot be parsed.
func (c Config) ApplyLogLevel() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, keeping default", "level", c.LogLevel)
		return
	}
	log.SetLevel(level)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn("Environment variable must be an integer, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Warn("Environment variable must be a positive duration, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}
