package reconcile_test

import (
	"context"
	"sync"

	"campuscare-admin/internal/models"
	"campuscare-admin/internal/store"

	"github.com/stretchr/testify/mock"
)

// fakeStore records the subscription callback so tests decide when snapshots
// arrive. Writes go through testify expectations.
type fakeStore struct {
	mock.Mock

	mu         sync.Mutex
	onSnapshot store.SnapshotFunc
	cancelled  int
}

func (f *fakeStore) Subscribe(_ context.Context, onSnapshot store.SnapshotFunc) func() {
	f.mu.Lock()
	f.onSnapshot = onSnapshot
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.cancelled++
		f.mu.Unlock()
	}
}

// emit delivers a snapshot, even after cancellation, to mimic a late callback.
func (f *fakeStore) emit(records []models.Complaint) {
	f.mu.Lock()
	cb := f.onSnapshot
	f.mu.Unlock()
	if cb != nil {
		cb(records)
	}
}

func (f *fakeStore) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

func (f *fakeStore) Update(ctx context.Context, id string, patch store.Patch) error {
	args := f.Called(ctx, id, patch)
	return args.Error(0)
}

func (f *fakeStore) Insert(ctx context.Context, c *models.Complaint) error {
	args := f.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = "inserted"
	}
	return args.Error(0)
}

func (f *fakeStore) Get(ctx context.Context, id string) (*models.Complaint, error) {
	args := f.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}
