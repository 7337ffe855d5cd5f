package notify

import (
	"slices"
	"sync"
	"time"

	"ratesboard/internal/adapters"
	"ratesboard/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLimit     = 1
	DefaultAutoClose = 5 * time.Second

	subscriberBuffer = 32
)

type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
)

type Event struct {
	Type         EventType           `json:"type"`
	Notification domain.Notification `json:"notification"`
}

type Options struct {
	// Limit is how many notifications are visible at once.
	Limit int
	// AutoClose dismisses a visible notification after this long. Zero keeps it until dismissed.
	AutoClose time.Duration
	Clock     clockwork.Clock
	Metrics   adapters.Metrics
}

type shown struct {
	notification domain.Notification
	timer        clockwork.Timer
}

// Channel is the application-wide notification queue.
// At most Limit notifications are visible; the rest wait in arrival order.
type Channel struct {
	limit     int
	autoClose time.Duration
	clock     clockwork.Clock
	metrics   adapters.Metrics
	// -----
	mu      sync.Mutex
	visible []shown
	pending []domain.Notification
	subs    map[uint64]chan Event
	nextSub uint64
	closed  bool
}

func NewChannel(opts Options) *Channel {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.AutoClose < 0 {
		opts.AutoClose = 0
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Channel{
		limit:     opts.Limit,
		autoClose: opts.AutoClose,
		clock:     opts.Clock,
		metrics:   opts.Metrics,
		subs:      make(map[uint64]chan Event),
	}
}

func (c *Channel) Info(message string) domain.Notification {
	return c.Notify(domain.SeverityInfo, message)
}

func (c *Channel) Success(message string) domain.Notification {
	return c.Notify(domain.SeveritySuccess, message)
}

func (c *Channel) Error(message string) domain.Notification {
	return c.Notify(domain.SeverityError, message)
}

// Notify enqueues a message. It is shown right away if a slot is free.
func (c *Channel) Notify(severity domain.Severity, message string) domain.Notification {
	n := domain.Notification{
		ID:        uuid.New(),
		Severity:  severity,
		Message:   message,
		CreatedAt: c.clock.Now(),
	}
	if c.metrics != nil {
		c.metrics.IncNotification(severity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return n
	}

	if len(c.visible) < c.limit {
		c.show(n)
	} else {
		c.pending = append(c.pending, n)
	}
	logrus.WithFields(logrus.Fields{"id": n.ID, "severity": severity}).Debug("notification queued")
	return n
}

// Dismiss removes a visible or pending notification. Dismissing a visible one
// promotes the oldest pending notification. It reports whether id was known.
func (c *Channel) Dismiss(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := slices.IndexFunc(c.visible, func(s shown) bool { return s.notification.ID == id }); i >= 0 {
		s := c.visible[i]
		if s.timer != nil {
			s.timer.Stop()
		}
		c.visible = slices.Delete(c.visible, i, i+1)
		c.publish(Event{Type: EventDismissed, Notification: s.notification})
		c.promote()
		return true
	}

	if i := slices.IndexFunc(c.pending, func(n domain.Notification) bool { return n.ID == id }); i >= 0 {
		n := c.pending[i]
		c.pending = slices.Delete(c.pending, i, i+1)
		c.publish(Event{Type: EventDismissed, Notification: n})
		return true
	}
	return false
}

// Visible returns the notifications on screen, oldest first.
func (c *Channel) Visible() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, 0, len(c.visible))
	for _, s := range c.visible {
		out = append(out, s.notification)
	}
	return out
}

// Pending returns the queued notifications in the order they will be shown.
func (c *Channel) Pending() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.pending)
}

// Subscribe streams shown and dismissed events. A slow subscriber misses events
// rather than blocking the channel. The returned func unsubscribes.
func (c *Channel) Subscribe() (<-chan Event, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops all timers and ends every subscription.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for _, s := range c.visible {
		if s.timer != nil {
			s.timer.Stop()
		}
	}
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}
}

// show must be called with mu held.
func (c *Channel) show(n domain.Notification) {
	s := shown{notification: n}
	if c.autoClose > 0 {
		id := n.ID
		s.timer = c.clock.AfterFunc(c.autoClose, func() { c.Dismiss(id) })
	}
	c.visible = append(c.visible, s)
	c.publish(Event{Type: EventShown, Notification: n})
}

// promote must be called with mu held.
func (c *Channel) promote() {
	for len(c.visible) < c.limit && len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.show(next)
	}
}

// publish must be called with mu held.
func (c *Channel) publish(ev Event) {
	for _, sub := range c.subs {
		select {
		case sub <- ev:
		default:
			logrus.WithField("id", ev.Notification.ID).Warn("notification subscriber is full, dropping event")
		}
	}
}
