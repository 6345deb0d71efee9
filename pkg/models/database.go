package models

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type PNContext string

const (
	DBContextURL PNContext = "pn-backend-url"
)

// IsPostgres reports if the DSN addresses a PostgreSQL server.
//
// Everything else is treated as the path to an SQLite database file.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// dialector returns the gorm dialector for the DSN.
func dialector(dsn string) gorm.Dialector {
	if IsPostgres(dsn) {
		return postgres.Open(dsn)
	}

	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	return sqlite.Open(fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, separator))
}

// Connect opens the database, migrates the schema and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(dialector(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite serializes writers. With more than one connection,
	// concurrent transactions fail with SQLITE_BUSY.
	if !IsPostgres(dsn) {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "propnest:after_query", queryCallback},
		{db.Callback().Query().After("*"), "propnest:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "propnest:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "propnest:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "propnest:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "propnest:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "propnest:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return fmt.Errorf("could not register callback %s: %w", c.name, err)
		}
	}

	return nil
}

var plural = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = plural.ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback replaces constraint violations reported by the
// database with user friendly errors
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	if strings.Contains(msg, "payment_amount_positive") {
		db.Error = ErrPaymentAmountNotPositive
	}

	if strings.Contains(msg, "installment_amount_positive") {
		db.Error = ErrInstallmentAmount
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	db.Error = generalError(db.Error)
}

// generalError logs database errors and replaces them with ErrGeneral.
// All other errors are returned unchanged.
func generalError(err error) error {
	var sqliteErr *go_sqlite.Error
	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the database/sql package
	if err.Error() == "sql: database is closed" || errors.As(err, &sqliteErr) || errors.As(err, &pgErr) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// transaction runs fc in a transaction. Errors from beginning or committing
// the transaction do not pass through the callbacks and are mapped here.
func transaction(ctx context.Context, db *gorm.DB, fc func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fc)
	if err != nil {
		return generalError(err)
	}

	return nil
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(ProjectPool{}, Payment{}, Installment{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
