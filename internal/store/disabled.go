package store

import (
	"context"

	"campuscare-admin/internal/models"
)

// Disabled stands in when no database is configured. Every subscriber gets a
// single empty snapshot and every write fails.
type Disabled struct{}

func (Disabled) Subscribe(ctx context.Context, onSnapshot SnapshotFunc) func() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-ctx.Done():
		default:
			onSnapshot(nil)
		}
	}()
	return func() { <-done }
}

func (Disabled) Update(context.Context, string, Patch) error {
	return ErrUnavailable
}

func (Disabled) Insert(context.Context, *models.Complaint) error {
	return ErrUnavailable
}

func (Disabled) Get(context.Context, string) (*models.Complaint, error) {
	return nil, ErrUnavailable
}
