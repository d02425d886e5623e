// Package gormstore stores report documents in an embedded sqlite database.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/store"
	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type backend struct {
	db *gorm.DB
}

// Open opens the sqlite database at dsn, migrates the schema and returns
// a Store backed by it.
func Open(dsn string) (*store.Store, error) {
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}

	return &store.Store{
		Backend:     backend{db},
		Sunday:      newCollection[models.SundayServiceReport](db),
		Midweek:     newCollection[models.MidweekServiceReport](db),
		Special:     newCollection[models.SpecialServiceReport](db),
		Tithes:      newCollection[models.TitheReport](db),
		Offerings:   newCollection[models.OfferingReport](db),
		Submissions: newCollection[models.Submission](db),
	}, nil
}

// Connect opens the sqlite database, migrates it and registers the
// callbacks that replace driver errors with the store errors.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// sqlite only supports one writer, a single connection prevents SQLITE_BUSY
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	// Query callbacks
	err = db.Callback().Query().After("*").Register("ledger:after_query", queryCallback)
	if err != nil {
		return nil, err
	}

	err = db.Callback().Query().After("*").Register("ledger:after_query_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("ledger:after_create_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("ledger:after_update_general", generalCallback)
	if err != nil {
		return nil, err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("ledger:after_delete_general", generalCallback)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// queryCallback replaces the generic "no record" error with one naming
// the kind of document that was not found.
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = store.NotFound(db.Statement.Table)
	}
}

// generalCallback handles errors we cannot give users a helpful message for.
// The error is logged and replaced with store.ErrGeneral.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	db.Error = general(db.Error)
}

// general logs driver errors and replaces them with store.ErrGeneral.
// All other errors are returned unchanged.
func general(err error) error {
	if err == nil {
		return nil
	}

	// "sql: database is closed" is hard-coded in the database/sql package
	if err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return store.ErrGeneral
	}

	return err
}

// migrate migrates all document kinds to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		models.SundayServiceReport{},
		models.MidweekServiceReport{},
		models.SpecialServiceReport{},
		models.TitheReport{},
		models.OfferingReport{},
		models.Submission{},
	)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

func (b backend) Name() string {
	return "sqlite"
}

func (b backend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}

	return general(sqlDB.PingContext(ctx))
}

func (b backend) Close(_ context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
