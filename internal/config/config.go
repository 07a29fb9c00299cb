package config // package config loads application configuration from environment variables

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The MySQL connection fields are only required
// when DBDriver is "mysql".
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DBDriver    string // "mysql" or "sqlite"
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
	SQLitePath  string // database file when DBDriver is "sqlite"
	AutoMigrate bool   // create tables on start
	LogLevel    string // zerolog level name
	LogPretty   bool   // human readable console logs
}

// LoadDotEnv reads a .env file into the process environment when one
// exists.  Variables already set are not overridden.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:         envStr("APP_ENV", "dev"),
		Port:        must("APP_PORT"),
		DBDriver:    envStr("DB_DRIVER", "mysql"),
		SQLitePath:  envStr("SQLITE_PATH", "inventory.db"),
		AutoMigrate: envBool("DB_MIGRATE", true),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		LogPretty:   envBool("LOG_PRETTY", false),
	}
	switch cfg.DBDriver {
	case "mysql":
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	case "sqlite":
	default:
		log.Fatal().Str("DB_DRIVER", cfg.DBDriver).Msg("unsupported database driver")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatal().Str("key", key).Msg("missing required env var")
	}
	return v
}
