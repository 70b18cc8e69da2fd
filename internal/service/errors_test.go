package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usertable-api/internal/repository"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", repository.ErrColumnNotFound, KindNotFound},
		{"exists", fmt.Errorf("rename: %w", repository.ErrColumnExists), KindValidation},
		{"conn done", sql.ErrConnDone, KindUnavailable},
		{"deadline", fmt.Errorf("failed to get users: %w", context.DeadlineExceeded), KindUnavailable},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, KindUnavailable},
		{"client gone", fmt.Errorf("failed to get users: %w", context.Canceled), KindDatabase},
		{"syntax", errors.New(`near "x": syntax error`), KindDatabase},
		{"already classified", validationError("bad"), KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, classify(nil))
	assert.Equal(t, KindDatabase, KindOf(errors.New("plain")))
}

func TestFailRecordsOperation(t *testing.T) {
	err := fail("rename_column", "Age", repository.ErrColumnNotFound)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindNotFound, se.Kind)
	assert.Equal(t, "rename_column", se.Op)
	assert.Equal(t, "Age", se.Column)

	// An inner classification wins over the outer one.
	err = fail("outer", "B", fail("inner", "A", errors.New("boom")))
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "inner", se.Op)
	assert.Equal(t, "A", se.Column)

	assert.NoError(t, fail("columns", "", nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "database", KindDatabase.String())
}
