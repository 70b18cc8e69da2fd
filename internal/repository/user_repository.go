package repository

import (
	"context"
	"database/sql"
	"fmt"

	"usertable-api/internal/database"
	"usertable-api/internal/entities"
)

const (
	// UsersTable is the only table this service reads and alters.
	UsersTable = "Users"
	// IDColumn is the identity column created by the bootstrap migration.
	IDColumn = "Id"
)

// UserRepository defines the interface for reading Users rows
type UserRepository interface {
	List(ctx context.Context) ([]entities.User, error)
}

type userRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, dialect database.Dialect) UserRepository {
	return &userRepository{db: db, dialect: dialect}
}

// List returns every row of Users ordered by Id, with whatever columns the table has now
func (r *userRepository) List(ctx context.Context) ([]entities.User, error) {
	table, err := r.dialect.QuoteIdentifier(UsersTable)
	if err != nil {
		return nil, err
	}
	id, err := r.dialect.QuoteIdentifier(IDColumn)
	if err != nil {
		return nil, err
	}

	users := []entities.User{}
	err = withConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, "SELECT * FROM "+table+" ORDER BY "+id)
		if err != nil {
			return fmt.Errorf("failed to get users: %w", err)
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read user columns: %w", err)
		}
		columnTypes, err := rows.ColumnTypes()
		if err != nil {
			return fmt.Errorf("failed to read user column types: %w", err)
		}
		types := make([]string, len(columnTypes))
		for i, ct := range columnTypes {
			types[i] = ct.DatabaseTypeName()
		}

		for rows.Next() {
			values := make([]interface{}, len(columns))
			ptrs := make([]interface{}, len(columns))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("failed to scan user: %w", err)
			}
			users = append(users, entities.NewUserWithTypes(columns, types, values))
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// withConn runs fn on a connection reserved for the call and always returns it to the pool.
func withConn(ctx context.Context, db *sql.DB, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}
