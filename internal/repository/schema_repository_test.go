package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usertable-api/internal/testutil"
)

func TestSchemaRepository_Columns(t *testing.T) {
	d, dialect := testutil.OpenSQLite(t, "schema_columns")
	repo := NewSchemaRepository(d, dialect)

	cols, err := repo.Columns(context.Background(), UsersTable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Id", "Name", "Email"}, cols)

	cols, err = repo.Columns(context.Background(), "Missing")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestSchemaRepository_AddColumnsSkipsExisting(t *testing.T) {
	d, dialect := testutil.OpenSQLite(t, "schema_add")
	repo := NewSchemaRepository(d, dialect)
	ctx := context.Background()

	added, err := repo.AddColumns(ctx, UsersTable, []string{"Age", "age", "NAME", "City"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Age", "City"}, added)

	cols, err := repo.Columns(ctx, UsersTable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Id", "Name", "Email", "Age", "City"}, cols)

	added, err = repo.AddColumns(ctx, UsersTable, []string{"Age"})
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestSchemaRepository_AddColumnsStopsAtFirstFailure(t *testing.T) {
	d, dialect := testutil.OpenSQLite(t, "schema_add_fail")
	repo := NewSchemaRepository(d, dialect)
	ctx := context.Background()

	added, err := repo.AddColumns(ctx, UsersTable, []string{"Age", "bad name", "City"})
	require.Error(t, err)
	assert.Equal(t, []string{"Age"}, added)

	cols, err := repo.Columns(ctx, UsersTable)
	require.NoError(t, err)
	assert.Contains(t, cols, "Age")
	assert.NotContains(t, cols, "City")
}

func TestSchemaRepository_RemoveColumn(t *testing.T) {
	d, dialect := testutil.OpenSQLite(t, "schema_remove")
	repo := NewSchemaRepository(d, dialect)
	ctx := context.Background()

	_, err := repo.AddColumns(ctx, UsersTable, []string{"Nickname"})
	require.NoError(t, err)

	stored, err := repo.RemoveColumn(ctx, UsersTable, "nickname")
	require.NoError(t, err)
	assert.Equal(t, "Nickname", stored)

	_, err = repo.RemoveColumn(ctx, UsersTable, "Nickname")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	cols, err := repo.Columns(ctx, UsersTable)
	require.NoError(t, err)
	assert.NotContains(t, cols, "Nickname")
}

func TestSchemaRepository_RenameColumn(t *testing.T) {
	d, dialect := testutil.OpenSQLite(t, "schema_rename")
	repo := NewSchemaRepository(d, dialect)
	ctx := context.Background()

	_, err := repo.AddColumns(ctx, UsersTable, []string{"Age", "City"})
	require.NoError(t, err)

	stored, err := repo.RenameColumn(ctx, UsersTable, "AGE", "UserAge")
	require.NoError(t, err)
	assert.Equal(t, "Age", stored)

	cols, err := repo.Columns(ctx, UsersTable)
	require.NoError(t, err)
	assert.Contains(t, cols, "UserAge")
	assert.NotContains(t, cols, "Age")

	_, err = repo.RenameColumn(ctx, UsersTable, "Age", "Years")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	_, err = repo.RenameColumn(ctx, UsersTable, "UserAge", "city")
	assert.ErrorIs(t, err, ErrColumnExists)
}
