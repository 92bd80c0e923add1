package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// MySQLArchive records grading runs in a MySQL table
type MySQLArchive struct {
	db    *sql.DB
	dsn   *mysql.Config
	table string
}

// OpenMySQLArchive prepares an archive for dsn. No connection is made until first use.
func OpenMySQLArchive(dsn, table string) (*MySQLArchive, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid archive table name %q", table)
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid archive DSN: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("archive DSN must name a database")
	}
	if !identifierPattern.MatchString(cfg.DBName) {
		return nil, fmt.Errorf("invalid archive database name %q", cfg.DBName)
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	return &MySQLArchive{db: db, dsn: cfg, table: table}, nil
}

// Migrate creates the archive database and table if they don't exist
func (a *MySQLArchive) Migrate(ctx context.Context) error {
	server := a.dsn.Clone()
	server.DBName = ""
	db, err := sql.Open("mysql", server.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", a.dsn.DBName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", a.dsn.DBName, err)
	}
	slog.Debug("archive database ready", "database", a.dsn.DBName)

	if _, err := a.db.ExecContext(ctx, createTableSQL(a.table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", a.table, err)
	}
	slog.Info("archive table ready", "database", a.dsn.DBName, "table", a.table)
	return nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"run_id CHAR(36) NOT NULL PRIMARY KEY, "+
		"created_at DATETIME(3) NOT NULL, "+
		"content_root VARCHAR(1024) NOT NULL, "+
		"test_root VARCHAR(1024) NOT NULL, "+
		"percentage DOUBLE NOT NULL, "+
		"style TINYINT NULL, "+
		"error_count INT NOT NULL, "+
		"report JSON NOT NULL, "+
		"INDEX idx_created_at (created_at)"+
		")", table)
}

// Record inserts one grading run
func (a *MySQLArchive) Record(ctx context.Context, entry ArchiveEntry) error {
	report, err := json.Marshal(entry.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	var style sql.NullInt16
	if entry.Report.Style != nil {
		style = sql.NullInt16{Int16: int16(*entry.Report.Style), Valid: true}
	}

	query := fmt.Sprintf("INSERT INTO `%s` "+
		"(run_id, created_at, content_root, test_root, percentage, style, error_count, report) "+
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?)", a.table)
	_, err = a.db.ExecContext(ctx, query,
		entry.RunID.String(),
		entry.CreatedAt,
		entry.Request.ContentRoot,
		entry.Request.TestRoot,
		entry.Report.Percentage,
		style,
		len(entry.Report.Errors),
		report,
	)
	if err != nil {
		return fmt.Errorf("failed to archive run %s: %w", entry.RunID, err)
	}
	return nil
}

// Close closes the database handle
func (a *MySQLArchive) Close() error {
	return a.db.Close()
}
