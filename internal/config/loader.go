package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/salesdash/api/internal/db"
)

// Config holds the full service configuration.
type Config struct {
	HTTPAddr    string
	CORSOrigins []string
	Database    db.Config
}

// Default returns the configuration used when nothing is provided.
func Default() Config {
	return Config{
		HTTPAddr:    ":5000",
		CORSOrigins: []string{"http://localhost:3000"},
		Database:    db.DefaultConfig(),
	}
}

// Load reads config.yaml from configPath and applies environment
// overrides (SALES_SERVER_ADDR, SALES_DATABASE_HOST, ...). A missing file
// is not an error; defaults plus env vars apply.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("SALES")

	v.BindEnv("server.addr")
	v.BindEnv("server.cors_origins")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.HTTPAddr = v.GetString("server.addr")
	}
	if v.IsSet("server.cors_origins") {
		cfg.CORSOrigins = v.GetStringSlice("server.cors_origins")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	return cfg, nil
}
