package kv

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// record is the single-table layout backing the SQLite adapter: one row per
// collection key, value holds the whole JSON snapshot.
type record struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value []byte `gorm:"column:value;not null"`
}

func (record) TableName() string {
	return "records"
}

// SQLite persists collection snapshots in a local SQLite file.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens (and if needed creates) the snapshot table at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Get returns the value stored under key or ErrNotFound.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var row record
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.Value, nil
}

// Put stores value under key, replacing any previous snapshot.
func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	row := record{Key: key, Value: value}
	return s.db.WithContext(ctx).Save(&row).Error
}

// Delete removes the value stored under key.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&record{}, "key = ?", key).Error
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	raw, err := s.db.DB()
	if err != nil {
		return err
	}
	return raw.Close()
}
