package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidIdentifier(t *testing.T) {
	valid := []string{"Age", "_tmp", "user_age2", "A", strings.Repeat("a", MaxIdentifierLength)}
	for _, name := range valid {
		assert.True(t, ValidIdentifier(name), name)
	}

	invalid := []string{"", "2fast", "first name", "Age;DROP TABLE Users", `a"b`, "a-b", "naïve", strings.Repeat("a", MaxIdentifierLength+1)}
	for _, name := range invalid {
		assert.False(t, ValidIdentifier(name), name)
	}
}

func TestDialectFor(t *testing.T) {
	for driver, want := range map[string]string{
		"postgres": "postgres",
		"pgx":      "postgres",
		"mysql":    "mysql",
		"sqlite3":  "sqlite3",
	} {
		d, err := DialectFor(driver)
		require.NoError(t, err, driver)
		assert.Equal(t, want, d.Name())
	}

	_, err := DialectFor("sqlserver")
	assert.Error(t, err)
}

func TestDialect_DDL(t *testing.T) {
	pg, _ := DialectFor("postgres")
	my, _ := DialectFor("mysql")
	lite, _ := DialectFor("sqlite3")

	sql, err := pg.AddTextColumn("Users", "Age")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "Users" ADD COLUMN "Age" TEXT NULL`, sql)

	sql, err = my.AddTextColumn("Users", "Age")
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE `Users` ADD COLUMN `Age` LONGTEXT NULL", sql)

	sql, err = lite.DropColumn("Users", "Age")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "Users" DROP COLUMN "Age"`, sql)

	sql, err = pg.RenameColumn("Users", "Age", "UserAge")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "Users" RENAME COLUMN "Age" TO "UserAge"`, sql)
}

func TestDialect_RejectsUnsafeIdentifiers(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite3"} {
		d, _ := DialectFor(driver)

		_, err := d.AddTextColumn("Users", "Age NVARCHAR(MAX); DROP TABLE Users")
		assert.Error(t, err, driver)

		_, err = d.RenameColumn("Users", "Age", "x'y")
		assert.Error(t, err, driver)

		_, err = d.QuoteIdentifier("`Users`")
		assert.Error(t, err, driver)
	}
}

func TestContainsFold(t *testing.T) {
	cols := []string{"Id", "Name", "Email"}

	stored, ok := ContainsFold(cols, "email")
	assert.True(t, ok)
	assert.Equal(t, "Email", stored)

	_, ok = ContainsFold(cols, "Nickname")
	assert.False(t, ok)
}
