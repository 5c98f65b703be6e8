package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var plural = regexp.MustCompile("ies$")

// Connect opens the SQLite database at dsn, migrates the schema and sets
// the package level DB.
func Connect(dsn string) error {
	db, err := open(sqlite.Open(fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn)))
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite allows a single writer. Sharing one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	DB = db
	return nil
}

// ConnectPostgres opens a PostgreSQL database, migrates the schema and sets
// the package level DB.
func ConnectPostgres(dsn string) error {
	db, err := open(postgres.Open(dsn))
	if err != nil {
		return err
	}

	DB = db
	return nil
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		register func(string, func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{db.Callback().Query().After("*").Register, "spendwise:after_query", queryCallback},
		{db.Callback().Query().After("*").Register, "spendwise:after_query_general", generalCallback},
		{db.Callback().Create().After("*").Register, "spendwise:after_create", createCallback},
		{db.Callback().Create().After("*").Register, "spendwise:after_create_general", generalCallback},
		{db.Callback().Update().After("*").Register, "spendwise:after_update_general", generalCallback},
		{db.Callback().Delete().After("*").Register, "spendwise:after_delete_general", generalCallback},
		{db.Callback().Raw().After("*").Register, "spendwise:after_raw_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.register(c.name, c.fn); err != nil {
			return fmt.Errorf("registering callback %s: %w", c.name, err)
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with one naming the
// resource that was not found.
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = plural.ReplaceAllString(name, "y")
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createCallback replaces constraint violations with user friendly errors.
func createCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: budgets.category") {
		db.Error = ErrBudgetCategoryNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	db.Error = General(db.Error)
}

// General replaces database failures with ErrGeneral. Other errors are
// returned unchanged.
func General(err error) error {
	if err == nil || errors.Is(err, ErrGeneral) {
		return err
	}

	// "sql: database is closed" is hard-coded in database/sql
	if err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(registry...)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
