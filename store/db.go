package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one snapshot row in the kv table.
type Record struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (Record) TableName() string { return "snapshots" }

// DBStore keeps snapshots in a Postgres key-value table. Same contract as
// FileStore; useful when the data directory lives on a machine the user does
// not control.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore opens the DSN and migrates the snapshot table.
func NewDBStore(dsn string) (*DBStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) Get(key string) (string, bool, error) {
	var rec Record
	err := s.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return rec.Value, true, nil
}

func (s *DBStore) Set(key, value string) error {
	rec := Record{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error; err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
