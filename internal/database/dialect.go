package database

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxIdentifierLength is the longest column name accepted, matching PostgreSQL's limit.
const MaxIdentifierLength = 63

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is safe to splice into DDL once quoted.
func ValidIdentifier(name string) bool {
	return len(name) <= MaxIdentifierLength && identifierPattern.MatchString(name)
}

// Dialect holds the SQL that differs between the supported databases.
// DDL cannot be parameterized, so every identifier goes through QuoteIdentifier.
type Dialect interface {
	Name() string
	// GooseDialect is the dialect name goose expects.
	GooseDialect() string
	QuoteIdentifier(name string) (string, error)
	// ColumnsQuery returns column names of one table in ordinal order; the table
	// name is its only bind parameter.
	ColumnsQuery() string
	AddTextColumn(table, column string) (string, error)
	DropColumn(table, column string) (string, error)
	RenameColumn(table, oldName, newName string) (string, error)
}

// DialectFor maps a DATABASE_DRIVER value to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func quoteWith(name, quote string) (string, error) {
	if !ValidIdentifier(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return quote + name + quote, nil
}

func quoteAll(d Dialect, names ...string) ([]string, error) {
	quoted := make([]string, len(names))
	for i, name := range names {
		q, err := d.QuoteIdentifier(name)
		if err != nil {
			return nil, err
		}
		quoted[i] = q
	}
	return quoted, nil
}

// alterTable renders "ALTER TABLE <t> <format>" with every identifier quoted.
func alterTable(d Dialect, format string, table string, columns ...string) (string, error) {
	q, err := quoteAll(d, append([]string{table}, columns...)...)
	if err != nil {
		return "", err
	}
	args := make([]interface{}, len(q)-1)
	for i, c := range q[1:] {
		args[i] = c
	}
	return "ALTER TABLE " + q[0] + " " + fmt.Sprintf(format, args...), nil
}

type postgresDialect struct{}

func (postgresDialect) Name() string         { return "postgres" }
func (postgresDialect) GooseDialect() string { return "postgres" }

func (postgresDialect) QuoteIdentifier(name string) (string, error) { return quoteWith(name, `"`) }

func (postgresDialect) ColumnsQuery() string {
	return `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1
		  AND table_schema = current_schema()
		ORDER BY ordinal_position
	`
}

func (d postgresDialect) AddTextColumn(table, column string) (string, error) {
	return alterTable(d, "ADD COLUMN %s TEXT NULL", table, column)
}

func (d postgresDialect) DropColumn(table, column string) (string, error) {
	return alterTable(d, "DROP COLUMN %s", table, column)
}

func (d postgresDialect) RenameColumn(table, oldName, newName string) (string, error) {
	return alterTable(d, "RENAME COLUMN %s TO %s", table, oldName, newName)
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string         { return "mysql" }
func (mysqlDialect) GooseDialect() string { return "mysql" }

func (mysqlDialect) QuoteIdentifier(name string) (string, error) { return quoteWith(name, "`") }

func (mysqlDialect) ColumnsQuery() string {
	return `
		SELECT COLUMN_NAME
		FROM information_schema.COLUMNS
		WHERE TABLE_NAME = ?
		  AND TABLE_SCHEMA = DATABASE()
		ORDER BY ORDINAL_POSITION
	`
}

func (d mysqlDialect) AddTextColumn(table, column string) (string, error) {
	return alterTable(d, "ADD COLUMN %s LONGTEXT NULL", table, column)
}

func (d mysqlDialect) DropColumn(table, column string) (string, error) {
	return alterTable(d, "DROP COLUMN %s", table, column)
}

// RenameColumn needs MySQL 8.0 or later.
func (d mysqlDialect) RenameColumn(table, oldName, newName string) (string, error) {
	return alterTable(d, "RENAME COLUMN %s TO %s", table, oldName, newName)
}

// sqliteDialect needs SQLite 3.35+ for DROP COLUMN.
type sqliteDialect struct{}

func (sqliteDialect) Name() string         { return "sqlite3" }
func (sqliteDialect) GooseDialect() string { return "sqlite3" }

func (sqliteDialect) QuoteIdentifier(name string) (string, error) { return quoteWith(name, `"`) }

func (sqliteDialect) ColumnsQuery() string {
	return `SELECT name FROM pragma_table_info(?) ORDER BY cid`
}

func (d sqliteDialect) AddTextColumn(table, column string) (string, error) {
	return alterTable(d, "ADD COLUMN %s TEXT", table, column)
}

func (d sqliteDialect) DropColumn(table, column string) (string, error) {
	return alterTable(d, "DROP COLUMN %s", table, column)
}

func (d sqliteDialect) RenameColumn(table, oldName, newName string) (string, error) {
	return alterTable(d, "RENAME COLUMN %s TO %s", table, oldName, newName)
}

// ContainsFold reports the stored spelling of name in columns, compared case-insensitively.
func ContainsFold(columns []string, name string) (string, bool) {
	for _, c := range columns {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}
