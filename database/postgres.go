package database

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

// PostgresConfig holds database connection parameters
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ConnectionString builds a PostgreSQL connection string
func (cfg PostgresConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.DBName,
		RawQuery: "sslmode=" + cfg.SSLMode,
	}
	return u.String()
}

// openPostgres prefers an explicit DSN (DATABASE_URL style) over the component config.
func openPostgres(cfg Config, logger *zap.Logger) (*sql.DB, error) {
	connectionString := cfg.DSN
	if connectionString == "" {
		connectionString = cfg.Postgres.ConnectionString()
	}

	logger.Info("Connecting to PostgreSQL", zap.String("dsn", MaskPassword(connectionString)))

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// MaskPassword masks the password in a connection URL for logging
func MaskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	return u.Redacted()
}
