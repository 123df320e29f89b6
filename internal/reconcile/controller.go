// Package reconcile decides, per presentation surface, whether the complaint
// set comes from the live store or from the demo fixture, and applies status
// changes to whichever of the two is current.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campuscare-admin/internal/metrics"
	"campuscare-admin/internal/mockdata"
	"campuscare-admin/internal/models"
	"campuscare-admin/internal/query"
	"campuscare-admin/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultFallbackTimeout = 3 * time.Second

// Listener is told about every adopted set. It runs with the controller locked
// and must not call back into the controller.
type Listener func(records []models.Complaint, isLive bool)

// StatusHook runs after the store accepted a status update. Demo updates never reach it.
type StatusHook func(c models.Complaint, status models.Status, notes string)

type Options struct {
	FallbackTimeout time.Duration
	Fixture         func() []models.Complaint
	Now             func() time.Time
	Logger          *logrus.Logger
	Metrics         *metrics.Metrics
	OnStatusChange  StatusHook
}

// State is what a surface renders from.
type State struct {
	Records []models.Complaint
	IsLive  bool
	// Loading is true until the first set is adopted.
	Loading bool
}

type Controller struct {
	id    string
	store store.Store
	opts  Options
	log   *logrus.Entry

	mu          sync.Mutex
	records     []models.Complaint
	isLive      bool
	adopted     bool
	started     bool
	disposed    bool
	detail      *models.Complaint
	listeners   []Listener
	timer       *time.Timer
	unsubscribe func()
}

func New(st store.Store, opts Options) *Controller {
	if opts.FallbackTimeout <= 0 {
		opts.FallbackTimeout = DefaultFallbackTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Fixture == nil {
		now := opts.Now
		opts.Fixture = func() []models.Complaint { return mockdata.Complaints(now()) }
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	id := uuid.NewString()
	return &Controller{
		id:    id,
		store: st,
		opts:  opts,
		log:   opts.Logger.WithField("surface", id),
	}
}

func (c *Controller) ID() string {
	return c.id
}

// OnChange registers a listener. Register before Start to see the first set.
func (c *Controller) OnChange(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed {
		c.listeners = append(c.listeners, l)
	}
}

// Start subscribes to the store and arms the fallback timer. Calling it more
// than once, or after Dispose, does nothing.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.disposed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.timer = time.AfterFunc(c.opts.FallbackTimeout, c.onTimeout)
	c.mu.Unlock()

	if m := c.opts.Metrics; m != nil {
		m.ActiveSurfaces.Inc()
	}

	unsubscribe := c.store.Subscribe(ctx, c.onSnapshot)

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		unsubscribe()
		return
	}
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
}

// Dispose stops the timer and cancels the subscription. Once it returns no
// snapshot or timer callback changes state or reaches a listener.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	started := c.started
	if c.timer != nil {
		c.timer.Stop()
	}
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.listeners = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if m := c.opts.Metrics; m != nil && started {
		m.ActiveSurfaces.Dec()
	}
}

func (c *Controller) onSnapshot(records []models.Complaint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	if len(records) > 0 {
		c.adopt(records, true)
		return
	}
	c.adopt(c.opts.Fixture(), false)
}

func (c *Controller) onTimeout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || c.adopted {
		return
	}
	c.log.Warn("no complaint snapshot before fallback timeout, showing demo data")
	if m := c.opts.Metrics; m != nil {
		m.FallbackTimeouts.Inc()
	}
	c.adopt(c.opts.Fixture(), false)
}

// adopt must be called with mu held.
func (c *Controller) adopt(records []models.Complaint, live bool) {
	if live != c.isLive || !c.adopted {
		c.log.WithFields(logrus.Fields{"live": live, "count": len(records)}).Info("complaint source changed")
	}
	c.records = records
	c.isLive = live
	c.adopted = true

	if m := c.opts.Metrics; m != nil {
		source := metrics.SourceDemo
		if live {
			source = metrics.SourceLive
		}
		m.Adoptions.WithLabelValues(source).Inc()
	}
	c.notify()
}

func (c *Controller) notify() {
	for _, l := range c.listeners {
		l(c.records, c.isLive)
	}
}

// State returns the current set. The slice is never modified in place and
// may be shared.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Records: c.records,
		IsLive:  c.isLive,
		Loading: !c.adopted,
	}
}

// Lookup returns one record of the current set. In live mode a record the
// set does not hold yet, such as one inserted since the last snapshot, is
// read from the store.
func (c *Controller) Lookup(ctx context.Context, id string) (models.Complaint, error) {
	c.mu.Lock()
	found, ok := query.Find(c.records, id)
	live := c.isLive
	c.mu.Unlock()
	if ok {
		return found, nil
	}
	if !live {
		return models.Complaint{}, ErrNotFound
	}

	rec, err := c.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			return models.Complaint{}, ErrNotFound
		}
		return models.Complaint{}, fmt.Errorf("failed to read complaint %s: %w", id, err)
	}
	return *rec, nil
}

// OpenDetail marks a record as open in the detail view and returns its copy.
func (c *Controller) OpenDetail(id string) (models.Complaint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	open, ok := query.Find(c.records, id)
	if ok {
		c.detail = &open
	}
	return open, ok
}

func (c *Controller) Detail() (models.Complaint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return models.Complaint{}, false
	}
	return *c.detail, true
}

func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
}
