// Package queue defines the catalog change events exchanged over RabbitMQ and
// the audit consumer that records them.
package queue

import "time"

// Actions carried by a CatalogEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEvent is published after every successful write to the catalog.  Name
// is the human label of the entity (design name, drill part number, or the
// record's part number) so consumers need not query the database.
type CatalogEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
}
