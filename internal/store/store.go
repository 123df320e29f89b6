// Package store defines the contract the dashboard expects from the complaint
// persistence layer.
package store

import (
	"context"
	"errors"

	"campuscare-admin/internal/models"
)

var (
	ErrNotFound    = errors.New("complaint not found")
	ErrInvalidID   = errors.New("invalid complaint id")
	ErrUnavailable = errors.New("complaint store unavailable")
)

// SnapshotFunc receives the full ordered record set, newest first. An empty
// slice means there is nothing live to show, including when the store failed.
type SnapshotFunc func(records []models.Complaint)

// Patch is a partial status update. The store stamps updatedAt itself, and
// resolvedAt as well when Status is resolved. Empty notes are not written.
type Patch struct {
	Status          models.Status
	ResolutionNotes string
}

func (p Patch) SetsNotes() bool {
	return p.ResolutionNotes != ""
}

func (p Patch) SetsResolvedAt() bool {
	return p.Status == models.StatusResolved
}

type Store interface {
	// Subscribe delivers snapshots until cancel is called. cancel does not
	// return while a delivery is in flight.
	Subscribe(ctx context.Context, onSnapshot SnapshotFunc) (cancel func())
	Update(ctx context.Context, id string, patch Patch) error
	Insert(ctx context.Context, c *models.Complaint) error
	Get(ctx context.Context, id string) (*models.Complaint, error)
}
