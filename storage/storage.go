// Package storage is the transactional relational store for the voting
// backend. It persists users, projects, proposals, submissions and tallies
// on sqlite via gorm. Cross-record invariants (nullifier uniqueness,
// one tally per proposal) are enforced with unique indexes at this layer,
// not with application-level checks, so they hold under concurrent writers.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/zkgov/ballotbox/types"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Storage wraps the database handle. All methods are safe for concurrent
// use; multi-step invariants must run inside Transaction.
type Storage struct {
	db *gorm.DB
}

// New opens (or creates) the sqlite database at the given path and runs
// the schema migrations.
func New(path string) (*Storage, error) {
	// WAL journal mode and a busy timeout so concurrent writers queue on
	// the single sqlite write lock instead of failing immediately.
	connOpts := "_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)"
	db, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?%s", path, connOpts)),
		&gorm.Config{
			Logger:         gormlogger.Discard,
			TranslateError: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Project{},
		&types.Proposal{},
		&types.Submission{},
		&types.Tally{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside a single database transaction. Any error
// returned by fn rolls back every write made within it; context
// cancellation mid-transaction also rolls back cleanly.
func (s *Storage) Transaction(ctx context.Context, fn func(tx *Storage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Storage{db: tx})
	})
}

// mapErr translates gorm errors to the storage sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	}
	return err
}
