package cmd

import (
	"errors"
	"fmt"
	"strings"
)

// Storage backends for orders and their history.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Storage selects the order store: "postgres" (default) or "memory".
	Storage string

	// CatalogDSN points to the storefront database holding products and
	// customers. Empty means an in-memory directory.
	CatalogDSN string

	JWTSecret string

	// KafkaBrokers is a comma separated list. Empty disables notifications.
	KafkaBrokers          string
	KafkaOrderEventsTopic string
	NotifyRetrySchedule   string
}

// Validate checks the settings the application cannot start without.
func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.JWTSecret) == "" {
		err = errors.Join(err, errors.New("JWT_SECRET is required"))
	}
	switch c.storage() {
	case StorageMemory:
	case StoragePostgres:
		if c.DBHost == "" || c.DBName == "" {
			err = errors.Join(err, errors.New("DB_HOST and DB_NAME are required for postgres storage"))
		}
	default:
		err = errors.Join(err, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	if strings.TrimSpace(c.KafkaBrokers) != "" && c.KafkaOrderEventsTopic == "" {
		err = errors.Join(err, errors.New("KAFKA_ORDER_EVENTS_TOPIC is required when KAFKA_BROKERS is set"))
	}
	return err
}

// DSN returns the connection string of the order database.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}

func (c Config) storage() string {
	if c.Storage == "" {
		return StoragePostgres
	}
	return strings.ToLower(c.Storage)
}
