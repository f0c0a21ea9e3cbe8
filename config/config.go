// Package config loads SmartPay settings from defaults, an optional YAML file and
// SMARTPAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"smartpay/backend/database"
)

// EnvPrefix prefixes every environment override, e.g. SMARTPAY_SERVER_PORT.
const EnvPrefix = "SMARTPAY"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	StaticDir    string        `mapstructure:"static_dir"`
}

type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"`
	DSN      string         `mapstructure:"dsn"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig selects how requests are authenticated and who counts as an admin.
type AuthConfig struct {
	// Provider is firebase, local or none. none trusts every request as DevUserID.
	Provider    string        `mapstructure:"provider"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	AdminPolicy string        `mapstructure:"admin_policy"`
	AdminEmails []string      `mapstructure:"admin_emails"`
	DevUserID   string        `mapstructure:"dev_user_id"`
	DevEmail    string        `mapstructure:"dev_email"`
}

type FirebaseConfig struct {
	ProjectID         string `mapstructure:"project_id"`
	CredentialsFile   string `mapstructure:"credentials_file"`
	CredentialsJSON   string `mapstructure:"credentials_json"`
	CredentialsBase64 string `mapstructure:"credentials_base64"`
	StorageBucket     string `mapstructure:"storage_bucket"`
}

type StorageConfig struct {
	Backend       string `mapstructure:"backend"`
	LocalDir      string `mapstructure:"local_dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Auth providers
const (
	ProviderFirebase = "firebase"
	ProviderLocal    = "local"
	ProviderNone     = "none"
)

// Admin policies
const (
	AdminPolicyFlag      = "flag"
	AdminPolicyAllowList = "allowlist"
)

// Storage backends
const (
	StorageLocal    = "local"
	StorageFirebase = "firebase"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.static_dir", "./dist")

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", "5432")
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.password", "postgres")
	v.SetDefault("database.postgres.dbname", "smartpay")
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("auth.provider", ProviderNone)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.admin_policy", AdminPolicyFlag)
	v.SetDefault("auth.admin_emails", []string{})
	v.SetDefault("auth.dev_user_id", "dev-user")
	v.SetDefault("auth.dev_email", "dev@smartpay.local")

	v.SetDefault("firebase.project_id", "")
	v.SetDefault("firebase.credentials_file", "")
	v.SetDefault("firebase.credentials_json", "")
	v.SetDefault("firebase.credentials_base64", "")
	v.SetDefault("firebase.storage_bucket", "")

	v.SetDefault("storage.backend", StorageLocal)
	v.SetDefault("storage.local_dir", "./proofs")
	v.SetDefault("storage.public_base_url", "/proofs")

	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
	})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads configuration into a new Config. An empty file searches ./config.yaml
// and $HOME/.config/smartpay; a missing file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/smartpay")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	cfg.Auth.AdminEmails = splitList(cfg.Auth.AdminEmails)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Auth.Provider {
	case ProviderFirebase, ProviderNone:
	case ProviderLocal:
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret is required for the local auth provider")
		}
	default:
		return fmt.Errorf("unknown auth.provider %q", c.Auth.Provider)
	}

	switch c.Auth.AdminPolicy {
	case AdminPolicyFlag, AdminPolicyAllowList:
	default:
		return fmt.Errorf("unknown auth.admin_policy %q", c.Auth.AdminPolicy)
	}

	switch c.Storage.Backend {
	case StorageLocal:
	case StorageFirebase:
		if c.Firebase.StorageBucket == "" {
			return errors.New("firebase.storage_bucket is required for the firebase storage backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	if _, err := database.ParseDialect(c.Database.Driver); err != nil {
		return err
	}
	return nil
}

// DatabaseSettings converts to the database package's connection settings.
func (c *Config) DatabaseSettings() database.Config {
	pg := c.Database.Postgres
	return database.Config{
		Driver: c.Database.Driver,
		DSN:    c.Database.DSN,
		Postgres: database.PostgresConfig{
			Host:     pg.Host,
			Port:     pg.Port,
			User:     pg.User,
			Password: pg.Password,
			DBName:   pg.DBName,
			SSLMode:  pg.SSLMode,
		},
	}
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
