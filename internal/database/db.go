// Package database provides database connection management.
package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/imjang/internal/config"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open opens a connection for the configured driver.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver, dsn, err := DataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

// DataSourceName returns the driver name and DSN for cfg.
func DataSourceName(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case "", DriverMySQL:
		return DriverMySQL, mysqlDSN(cfg), nil
	case DriverSQLite:
		if cfg.Path == "" {
			return "", "", fmt.Errorf("database.path is required for the sqlite driver")
		}
		return DriverSQLite, sqliteDSN(cfg.Path), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func mysqlDSN(cfg config.DatabaseConfig) string {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	mysqlCfg.MultiStatements = true
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = cfg.Params
	}
	return mysqlCfg.FormatDSN()
}

// sqliteDSN enables foreign keys, waits on locks instead of failing, and takes the write lock
// at BEGIN so concurrent upserts serialize.
func sqliteDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Set("_txlock", "immediate")
	params.Set("_time_format", "sqlite")
	return "file:" + path + "?" + params.Encode()
}

// RunInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// BuildMultiRowInsert builds a multi-row INSERT query.
func BuildMultiRowInsert(table string, columns []string, rowCount int) string {
	placeholder := "(" + strings.Repeat("?, ", len(columns)-1) + "?)"
	values := strings.Repeat(placeholder+", ", rowCount-1) + placeholder
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(columns, ", "), values)
}

// BuildUpsert builds an INSERT that updates updateColumns when a row with the same conflictColumns
// already exists. conflictColumns must be covered by a unique index.
func BuildUpsert(driverName, table string, columns, conflictColumns, updateColumns []string) string {
	insert := BuildMultiRowInsert(table, columns, 1)
	sets := make([]string, len(updateColumns))
	switch driverName {
	case DriverSQLite:
		for i, c := range updateColumns {
			sets[i] = fmt.Sprintf("%s = excluded.%s", c, c)
		}
		return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s",
			insert, strings.Join(conflictColumns, ", "), strings.Join(sets, ", "))
	default:
		for i, c := range updateColumns {
			sets[i] = fmt.Sprintf("%s = VALUES(%s)", c, c)
		}
		return fmt.Sprintf("%s ON DUPLICATE KEY UPDATE %s", insert, strings.Join(sets, ", "))
	}
}
