package reconcile

import (
	"context"
	"fmt"

	"campuscare-admin/internal/metrics"
	"campuscare-admin/internal/mockdata"
	"campuscare-admin/internal/models"
	"campuscare-admin/internal/query"
	"campuscare-admin/internal/store"
)

// UpdateStatus applies a status change and optional notes to one complaint.
//
// In live mode the store is patched and the local set is left for the
// subscription to refresh. In demo mode the record is replaced in the local
// set. Before the first set is adopted the update goes to the store. Either
// way an open detail view of the same record is patched, even when the store
// rejected the write.
func (c *Controller) UpdateStatus(ctx context.Context, id string, status models.Status, notes string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	if c.adopted && !c.isLive {
		// Fixture reporters are not real, so OnStatusChange is skipped.
		err := c.updateLocal(id, status, notes)
		c.mu.Unlock()
		c.recordUpdate(metrics.ModeDemo, err)
		return err
	}
	current, known := query.Find(c.records, id)
	c.mu.Unlock()

	err := c.store.Update(ctx, id, store.Patch{Status: status, ResolutionNotes: notes})

	c.mu.Lock()
	if !c.disposed {
		c.patchDetail(id, status, notes)
	}
	c.mu.Unlock()

	c.recordUpdate(metrics.ModeLive, err)
	if err != nil {
		c.log.WithError(err).WithField("complaint", id).Error("error updating complaint")
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	if known && c.opts.OnStatusChange != nil {
		current.Status = status
		if notes != "" {
			current.ResolutionNotes = notes
		}
		c.opts.OnStatusChange(current, status, notes)
	}
	return nil
}

// updateLocal replaces the record in a new slice so that sets handed out
// earlier stay untouched. mu must be held.
func (c *Controller) updateLocal(id string, status models.Status, notes string) error {
	idx := -1
	for i, r := range c.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	now := c.opts.Now()
	rec := c.records[idx]
	rec.Status = status
	rec.UpdatedAt = now
	if notes != "" {
		rec.ResolutionNotes = notes
	}
	if status == models.StatusResolved {
		rec.ResolvedAt = &now
	}

	next := make([]models.Complaint, len(c.records))
	copy(next, c.records)
	next[idx] = rec
	c.records = next

	c.patchDetail(id, status, notes)
	c.notify()
	return nil
}

// patchDetail keeps the open detail view in line with an update. mu must be held.
func (c *Controller) patchDetail(id string, status models.Status, notes string) {
	if c.detail == nil || c.detail.ID != id {
		return
	}
	open := *c.detail
	open.Status = status
	if notes != "" {
		open.ResolutionNotes = notes
	}
	c.detail = &open
}

func (c *Controller) recordUpdate(mode string, err error) {
	if m := c.opts.Metrics; m != nil {
		m.StatusUpdates.WithLabelValues(mode, metrics.Result(err)).Inc()
	}
}

// InsertSample submits the demo sample complaint to the store. It reaches the
// set only through a later snapshot.
func (c *Controller) InsertSample(ctx context.Context) (models.Complaint, error) {
	sample := mockdata.SampleComplaint()
	err := c.store.Insert(ctx, &sample)
	if m := c.opts.Metrics; m != nil {
		m.SampleInserts.WithLabelValues(metrics.Result(err)).Inc()
	}
	if err != nil {
		c.log.WithError(err).Error("error adding sample complaint")
		return models.Complaint{}, fmt.Errorf("%w: %w", ErrInsertFailed, err)
	}
	return sample, nil
}
