package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"usertable-api/internal/database"
	"usertable-api/internal/events"
	"usertable-api/internal/repository"
)

// BaseColumns are created by the bootstrap migration and cannot be renamed or dropped.
var BaseColumns = []string{repository.IDColumn, "Name", "Email"}

// SchemaService defines the interface for inspecting and altering the Users columns
type SchemaService interface {
	Columns(ctx context.Context) ([]string, error)
	AddColumns(ctx context.Context, names []string) error
	RemoveColumn(ctx context.Context, name string) error
	RenameColumn(ctx context.Context, oldName, newName string) error
}

type schemaService struct {
	repo      repository.SchemaRepository
	publisher events.Publisher
	timeout   time.Duration
	table     string
	now       func() time.Time
}

// NewSchemaService creates a new schema service. publisher may be nil.
func NewSchemaService(repo repository.SchemaRepository, publisher events.Publisher, timeout time.Duration) SchemaService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &schemaService{
		repo:      repo,
		publisher: publisher,
		timeout:   timeout,
		table:     repository.UsersTable,
		now:       time.Now,
	}
}

// Columns returns the column names of Users in table order
func (s *schemaService) Columns(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	columns, err := s.repo.Columns(ctx, s.table)
	if err != nil {
		return nil, fail("columns", "", err)
	}
	return columns, nil
}

// AddColumns adds every name not yet present as a nullable text column.
// All names are validated before any DDL runs.
func (s *schemaService) AddColumns(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := validateColumnName(name); err != nil {
			return fail("add_columns", name, err)
		}
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	added, err := s.repo.AddColumns(ctx, s.table, names)
	for _, name := range added {
		s.publish(ctx, events.SchemaEvent{Op: events.OpColumnAdded, Column: name})
	}
	return fail("add_columns", "", err)
}

// RemoveColumn drops an existing, non-base column
func (s *schemaService) RemoveColumn(ctx context.Context, name string) error {
	const op = "remove_column"
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// Existence is checked first so an unknown name always reads as not found.
	if err := s.mustExist(ctx, name); err != nil {
		return fail(op, name, err)
	}
	if err := checkNotBase(name); err != nil {
		return fail(op, name, err)
	}

	stored, err := s.repo.RemoveColumn(ctx, s.table, name)
	if err != nil {
		return fail(op, name, err)
	}
	s.publish(ctx, events.SchemaEvent{Op: events.OpColumnRemoved, Column: stored})
	return nil
}

// RenameColumn renames an existing, non-base column
func (s *schemaService) RenameColumn(ctx context.Context, oldName, newName string) error {
	const op = "rename_column"
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.mustExist(ctx, oldName); err != nil {
		return fail(op, oldName, err)
	}
	if err := checkNotBase(oldName); err != nil {
		return fail(op, oldName, err)
	}
	if err := validateColumnName(newName); err != nil {
		return fail(op, newName, err)
	}

	stored, err := s.repo.RenameColumn(ctx, s.table, oldName, newName)
	if err != nil {
		return fail(op, oldName, err)
	}
	s.publish(ctx, events.SchemaEvent{Op: events.OpColumnRenamed, Column: stored, NewColumn: newName})
	return nil
}

// mustExist looks name up case-insensitively. The repository repeats the check
// on its own connection before running DDL.
func (s *schemaService) mustExist(ctx context.Context, name string) error {
	columns, err := s.repo.Columns(ctx, s.table)
	if err != nil {
		return err
	}
	if _, ok := database.ContainsFold(columns, name); !ok {
		return repository.ErrColumnNotFound
	}
	return nil
}

// publish logs delivery failures only; the DDL has already been committed.
func (s *schemaService) publish(ctx context.Context, event events.SchemaEvent) {
	event.Table = s.table
	event.At = s.now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("op", event.Op).Str("column", event.Column).Msg("failed to publish schema event")
	}
}

func validateColumnName(name string) error {
	if !database.ValidIdentifier(name) {
		return validationError("invalid column name '%s'", name)
	}
	return nil
}

func checkNotBase(name string) error {
	for _, base := range BaseColumns {
		if strings.EqualFold(base, name) {
			return validationError("column '%s' is a base column and cannot be changed", name)
		}
	}
	return nil
}
