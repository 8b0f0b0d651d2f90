package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// entry is the single-table layout backing the GORM store.
type entry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "kv_entries" }

// Gorm persists documents in a kv_entries table through GORM. The
// default deployment uses an embedded SQLite file; shared deployments
// point it at Postgres.
type Gorm struct {
	conn *gorm.DB
}

// NewSQLite opens (or creates) a SQLite-backed store at path.
// Use "file::memory:?cache=shared" for an ephemeral database.
func NewSQLite(path string) (*Gorm, error) {
	if path == "" {
		return nil, fmt.Errorf("kv: sqlite path is required")
	}
	return newGorm(sqlite.Open(path))
}

// NewPostgres opens a Postgres-backed store with the given DSN.
func NewPostgres(dsn string) (*Gorm, error) {
	if dsn == "" {
		return nil, fmt.Errorf("kv: postgres dsn is required")
	}
	return newGorm(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
}

func newGorm(dialector gorm.Dialector) (*Gorm, error) {
	silent := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 silent,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("kv: opening database: %w", err)
	}

	if err := conn.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("kv: migrating kv_entries: %w", err)
	}

	return &Gorm{conn: conn}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var row entry
	err := g.conn.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: reading %q: %w", key, err)
	}
	return row.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	row := entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := g.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("kv: writing %q: %w", key, err)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	if err := g.conn.WithContext(ctx).Delete(&entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("kv: deleting %q: %w", key, err)
	}
	return nil
}

// Ping verifies the datasource is reachable.
func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (g *Gorm) Close() error {
	sqlDB, err := g.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
