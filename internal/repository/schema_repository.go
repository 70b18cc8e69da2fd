package repository

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks usertable-api/internal/repository UserRepository,SchemaRepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"usertable-api/internal/database"
)

var (
	ErrColumnNotFound = errors.New("column does not exist")
	ErrColumnExists   = errors.New("column already exists")
)

// SchemaRepository defines the interface for column introspection and DDL on a table.
// Each call reserves one connection for all of its statements.
type SchemaRepository interface {
	Columns(ctx context.Context, table string) ([]string, error)
	// AddColumns adds each missing name as a nullable text column and returns the
	// names it added. Names already present (case-insensitive) are skipped. A
	// failing ALTER stops the loop; columns added before it stay added.
	AddColumns(ctx context.Context, table string, names []string) ([]string, error)
	// RemoveColumn drops the column and returns its stored spelling.
	RemoveColumn(ctx context.Context, table, name string) (string, error)
	// RenameColumn renames the column and returns the old stored spelling.
	RenameColumn(ctx context.Context, table, oldName, newName string) (string, error)
}

type schemaRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSchemaRepository creates a new schema repository
func NewSchemaRepository(db *sql.DB, dialect database.Dialect) SchemaRepository {
	return &schemaRepository{db: db, dialect: dialect}
}

func (r *schemaRepository) Columns(ctx context.Context, table string) ([]string, error) {
	var columns []string
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		var err error
		columns, err = r.columns(ctx, conn, table)
		return err
	})
	return columns, err
}

func (r *schemaRepository) AddColumns(ctx context.Context, table string, names []string) ([]string, error) {
	added := []string{}
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		for _, name := range names {
			// Re-read every time so duplicates within one batch collapse.
			existing, err := r.columns(ctx, conn, table)
			if err != nil {
				return err
			}
			if _, ok := database.ContainsFold(existing, name); ok {
				continue
			}

			stmt, err := r.dialect.AddTextColumn(table, name)
			if err != nil {
				return err
			}
			if _, err := conn.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to add column %s: %w", name, err)
			}
			added = append(added, name)
		}
		return nil
	})
	return added, err
}

func (r *schemaRepository) RemoveColumn(ctx context.Context, table, name string) (string, error) {
	var stored string
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		existing, err := r.columns(ctx, conn, table)
		if err != nil {
			return err
		}
		var ok bool
		if stored, ok = database.ContainsFold(existing, name); !ok {
			return ErrColumnNotFound
		}

		stmt, err := r.dialect.DropColumn(table, stored)
		if err != nil {
			return err
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop column %s: %w", stored, err)
		}
		return nil
	})
	return stored, err
}

func (r *schemaRepository) RenameColumn(ctx context.Context, table, oldName, newName string) (string, error) {
	var stored string
	err := withConn(ctx, r.db, func(conn *sql.Conn) error {
		existing, err := r.columns(ctx, conn, table)
		if err != nil {
			return err
		}
		var ok bool
		if stored, ok = database.ContainsFold(existing, oldName); !ok {
			return ErrColumnNotFound
		}
		// Renaming only the letter case of a column is allowed.
		if clash, ok := database.ContainsFold(existing, newName); ok && clash != stored {
			return ErrColumnExists
		}

		stmt, err := r.dialect.RenameColumn(table, stored, newName)
		if err != nil {
			return err
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to rename column %s: %w", stored, err)
		}
		return nil
	})
	return stored, err
}

// columns lists the table's columns in ordinal order using the dialect's catalog query.
func (r *schemaRepository) columns(ctx context.Context, conn *sql.Conn, table string) ([]string, error) {
	rows, err := conn.QueryContext(ctx, r.dialect.ColumnsQuery(), table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	defer rows.Close()

	columns := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return columns, nil
}
