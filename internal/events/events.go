// Package events publishes notifications about changes to the Users table schema.
package events

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// Schema change operations.
const (
	OpColumnAdded   = "column_added"
	OpColumnRemoved = "column_removed"
	OpColumnRenamed = "column_renamed"
)

// SchemaEvent describes one committed DDL statement.
type SchemaEvent struct {
	Op        string    `json:"op"`
	Table     string    `json:"table"`
	Column    string    `json:"column"`
	NewColumn string    `json:"new_column,omitempty"`
	At        time.Time `json:"at"`
}

// Encode returns the wire form shared by every backend.
func (e SchemaEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers schema events. Implementations are safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event SchemaEvent) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, SchemaEvent) error { return nil }
func (nopPublisher) Close() error                               { return nil }
