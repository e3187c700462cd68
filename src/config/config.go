package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Database struct {
	Driver string
	DSN    string
}

type Drive struct {
	CredentialsPath string
	CredentialsJSON string
}

type Config struct {
	ServerHost         string
	Dev                bool
	Database           Database
	LogLevel           string
	CORSAllowedOrigins []string
	PageLimit          int
	Drive              Drive
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	devDatabase = "cardledger-dev.db"
)

// Load reads .env (if present), an optional config file and the environment, in that order
// of increasing precedence. Dev mode forces a local SQLite database.
func Load(configFile string, dev bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("SERVER_HOST", ":8080")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_DSN", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:8081,http://127.0.0.1:8081")
	v.SetDefault("PAGE_LIMIT", 20)
	v.SetDefault("GOOGLE_DRIVE_CREDENTIALS_PATH", "")
	v.SetDefault("GOOGLE_DRIVE_CREDENTIALS_JSON", "")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		ServerHost: v.GetString("SERVER_HOST"),
		Dev:        dev,
		Database: Database{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:    v.GetString("DB_DSN"),
		},
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PageLimit:          v.GetInt("PAGE_LIMIT"),
		Drive: Drive{
			CredentialsPath: v.GetString("GOOGLE_DRIVE_CREDENTIALS_PATH"),
			CredentialsJSON: v.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
		},
	}

	if dev {
		cfg.Database = Database{Driver: DriverSQLite, DSN: devDatabase}
		cfg.LogLevel = "debug"
	}

	if cfg.PageLimit <= 0 {
		return nil, errors.New("PAGE_LIMIT must be positive")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverSQLite {
		return nil, errors.New("DB_DRIVER must be postgres or sqlite")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var list []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list
}
