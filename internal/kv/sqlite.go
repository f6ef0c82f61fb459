package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is a single key-value row. Values are JSON documents.
type entry struct {
	Key   string         `gorm:"primaryKey;column:key"`
	Value datatypes.JSON `gorm:"column:value"`
}

func (entry) TableName() string { return "kv_entries" }

// SqliteStore persists keys in a single SQLite database file. Useful
// when the annotation sets grow large enough that rewriting whole JSON
// files per mutation becomes noticeable.
type SqliteStore struct {
	db *gorm.DB
}

// NewSqliteStore opens (or creates) the database at path and migrates
// the key-value table.
func NewSqliteStore(path string) (*SqliteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path not set")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating sqlite dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating kv schema: %w", err)
	}
	return &SqliteStore{db: db}, nil
}

// Get returns the stored document for key, or (nil, nil) if absent.
func (s *SqliteStore) Get(key string) ([]byte, error) {
	var e entry
	err := s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return []byte(e.Value), nil
}

// Put writes the document for key, replacing any previous row.
func (s *SqliteStore) Put(key string, value []byte) error {
	e := entry{Key: key, Value: datatypes.JSON(value)}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key, ignoring absent keys.
func (s *SqliteStore) Delete(key string) error {
	err := s.db.Delete(&entry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
