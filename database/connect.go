package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type ConnectionConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string

	// ReplicaDSNs are read replicas; reads are balanced across them, writes and
	// transactions stay on the primary.
	ReplicaDSNs []string
}

func (c ConnectionConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Open connects to Postgres, registers the replicas if any and checks the connection.
func Open(c ConnectionConfig) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  c.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if len(c.ReplicaDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.ReplicaDSNs))
		for _, dsn := range c.ReplicaDSNs {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetConnMaxIdleTime(time.Hour).
			SetMaxOpenConns(25))
		if err != nil {
			return nil, fmt.Errorf("error registering read replicas: %w", err)
		}
	}

	// gen_random_uuid() is built in from Postgres 13; the extension covers older servers.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return nil, fmt.Errorf("error enabling pgcrypto extension: %w", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("error testing database connection: %w", err)
	}
	return db, nil
}
