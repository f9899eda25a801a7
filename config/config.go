package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the pool chemistry backend
type Config struct {
	Server    ServerConfig
	MQTT      MQTTConfig
	Database  DatabaseConfig
	Export    ExportConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// MQTTConfig holds MQTT broker configuration
type MQTTConfig struct {
	BrokerURL     string
	ClientID      string
	Username      string
	Password      string
	KeepAlive     time.Duration
	PingTimeout   time.Duration
	ConnectRetry  bool
	TopicReadings string
}

// DatabaseConfig holds database configuration. Driver selects postgres,
// mysql or sqlite; SQLitePath only applies to sqlite.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// ExportConfig holds report export configuration
type ExportConfig struct {
	CSVFile string
}

// SchedulerConfig holds the periodic job configuration. Specs use standard
// cron syntax.
type SchedulerConfig struct {
	Enabled         bool
	HealthCheckSpec string
	ExportSpec      string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		MQTT: MQTTConfig{
			BrokerURL:     getMQTTBrokerURL(),
			ClientID:      getEnv("MQTT_CLIENT_ID", "poolchem_backend"),
			Username:      getEnv("MQTT_USERNAME", ""),
			Password:      getEnv("MQTT_PASSWORD", ""),
			KeepAlive:     getDurationEnv("MQTT_KEEP_ALIVE", 30*time.Second),
			PingTimeout:   getDurationEnv("MQTT_PING_TIMEOUT", 10*time.Second),
			ConnectRetry:  getBoolEnv("MQTT_CONNECT_RETRY", true),
			TopicReadings: getEnv("MQTT_TOPIC_READINGS", "poolchem/readings/data"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "poolchem"),
			SSLMode:    getEnv("DB_SSLMODE", "require"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "data/poolchem.db"),
		},
		Export: ExportConfig{
			CSVFile: getEnv("EXPORT_CSV_FILE", "test_report.csv"),
		},
		Scheduler: SchedulerConfig{
			Enabled:         getBoolEnv("SCHEDULER_ENABLED", true),
			HealthCheckSpec: getEnv("SCHEDULER_HEALTH_SPEC", "*/15 * * * *"),
			ExportSpec:      getEnv("SCHEDULER_EXPORT_SPEC", "0 6 * * *"),
		},
	}
}

// getEnv returns environment variable value or default if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv returns duration environment variable value or default if not set
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getBoolEnv returns boolean environment variable value or default if not set
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getMQTTBrokerURL returns MQTT broker URL with tcp:// prefix if not present
// Supports both "localhost:1883" and "tcp://localhost:1883" formats
func getMQTTBrokerURL() string {
	broker := getEnv("MQTT_BROKER", getEnv("MQTT_BROKER_URL", ""))

	// If broker doesn't start with tcp://, add it
	if broker != "" && len(broker) > 4 && broker[:4] != "tcp:" && broker[:3] != "ssl" {
		return "tcp://" + broker
	}
	return broker
}
