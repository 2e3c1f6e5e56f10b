package repository

import (
	"context"
	"embed"
	"fmt"

	"finalproject_backend/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrQuestNotClaimable = errors.New("quest not completed or reward already claimed")
)

//go:embed migrations/*.sql
var migrations embed.FS

type Repository struct {
	db *sqlx.DB
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Transaction(ctx context.Context, t func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	err = t(tx)
	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil {
			return errors.Wrapf(err, "rollback error: %v", txErr)
		}
		return err
	}
	return tx.Commit()
}

type Config struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	Migrate      bool   `yaml:"migrate"`
}

func New(cfg Config) (*Repository, error) {
	url := cfg.GetDatabaseURL()
	db, err := sqlx.Connect("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger().Info("Connected to database successfully",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name))

	return NewWithDB(db), nil
}

// NewWithDB wraps an already opened connection pool.
func NewWithDB(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (r *Repository) Migrate(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	for _, entry := range entries {
		script, err := migrations.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		if _, err := r.db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", entry.Name(), err)
		}
		logger.Logger().Info("Applied migration", zap.String("file", entry.Name()))
	}

	return nil
}

func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}
