package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EntityType string

const (
	EntityContacts EntityType = "contacts"
	EntityInvoices EntityType = "invoices"
)

// AllEntities is the order a full sync run processes entity types in.
var AllEntities = []EntityType{EntityContacts, EntityInvoices}

func ParseEntityType(s string) (EntityType, error) {
	for _, e := range AllEntities {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

type SyncStatus string

const (
	SyncSucceeded SyncStatus = "succeeded"
	SyncFailed    SyncStatus = "failed"
)

// SyncReport summarises one entity type's reconciliation within a run.
type SyncReport struct {
	RunID      uuid.UUID  `json:"run_id"`
	Entity     EntityType `json:"entity"`
	Status     SyncStatus `json:"status"`
	Fetched    int        `json:"fetched"`
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	Deleted    int64      `json:"deleted"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

func (r *SyncReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
