// Package config loads the sales server configuration from a TOML file and
// exposes it as a process-wide singleton.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type DatabaseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

type AssetConfig struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	URLValidity  string `toml:"url_validity"`
	UploadPrefix string `toml:"upload_prefix"`
}

type ConfigParam struct {
	ServerPort           string         `toml:"server_port"`
	HandleCORS           bool           `toml:"handle_cors"`
	CORSAllowedOrigin    string         `toml:"cors_allowed_origin"`
	SessionTokenValidity string         `toml:"session_token_validity"`
	SingleOrgMode        bool           `toml:"single_org_mode"`
	DefaultOrgName       string         `toml:"default_org_name"`
	DefaultOrgSlug       string         `toml:"default_org_slug"`
	DefaultAdminEmail    string         `toml:"default_admin_email"`
	DefaultAdminPassword string         `toml:"default_admin_password"`
	Database             DatabaseConfig `toml:"database"`
	Assets               AssetConfig    `toml:"assets"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = defaultConfig()
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	var cp ConfigParam
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	applyDefaults(&cp)
	cfg = &cp
	return nil
}

func defaultConfig() *ConfigParam {
	cp := &ConfigParam{}
	applyDefaults(cp)
	return cp
}

func applyDefaults(cp *ConfigParam) {
	if cp.ServerPort == "" {
		cp.ServerPort = "8090"
	}
	if cp.CORSAllowedOrigin == "" {
		cp.CORSAllowedOrigin = "http://localhost:3000"
	}
	if cp.SessionTokenValidity == "" {
		cp.SessionTokenValidity = "12h"
	}
	if cp.DefaultOrgName == "" {
		cp.DefaultOrgName = "PodcastFlow"
	}
	if cp.DefaultOrgSlug == "" {
		cp.DefaultOrgSlug = "podcastflow"
	}
	if cp.DefaultAdminEmail == "" {
		cp.DefaultAdminEmail = "admin@podcastflow.local"
	}
	if cp.Database.Host == "" {
		cp.Database.Host = "localhost"
	}
	if cp.Database.Port == 0 {
		cp.Database.Port = 5432
	}
	if cp.Database.User == "" {
		cp.Database.User = "podcastflow"
	}
	if cp.Database.DBName == "" {
		cp.Database.DBName = "podcastflow"
	}
	if cp.Database.SSLMode == "" {
		cp.Database.SSLMode = "disable"
	}
	if cp.Assets.URLValidity == "" {
		cp.Assets.URLValidity = "15m"
	}
	if cp.Assets.UploadPrefix == "" {
		cp.Assets.UploadPrefix = "creatives"
	}
}

// Dsn returns the keyword/value connection string for the configured
// database.
func Dsn() string {
	d := Config().Database
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// DsnURL returns the URL form of the connection string, used by the
// migration tooling.
func DsnURL() string {
	d := Config().Database
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// ParseTokenDuration parses durations like "30d" or "1y" in addition to the
// units time.ParseDuration understands.
func ParseTokenDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("invalid input format")
	}

	unit := input[len(input)-1:]
	valueStr := input[:len(input)-1]
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		if d, derr := time.ParseDuration(input); derr == nil {
			return d, nil
		}
		return 0, fmt.Errorf("invalid number: %s", err)
	}

	var duration time.Duration
	switch unit {
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "h":
		duration = time.Duration(value) * time.Hour
	case "m":
		duration = time.Duration(value) * time.Minute
	case "y":
		// Assuming 1 year = 365 days for simplicity
		duration = time.Duration(value) * 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown time unit: %s", unit)
	}

	return duration, nil
}

func init() {
	if err := LoadConfig(""); err != nil {
		panic(err)
	}
}
