package app

import (
	"context"
	"sync"

	"github.com/dagimg/prdesk/internal/domain"
)

// Center keeps the in-memory notification list and its unread counter.
// Pushes from the stream and reads from the UI arrive on different
// goroutines, so all state is behind the mutex. Each notification id is
// counted at most once no matter how often the stream redelivers it.
type Center struct {
	svc NotificationService

	mu            sync.Mutex
	notifications []domain.Notification
	known         map[int]bool
	unread        int
}

func NewCenter(svc NotificationService) *Center {
	return &Center{svc: svc, known: make(map[int]bool)}
}

// Load replaces local state with the server's notification list. The unread
// counter is recomputed from the is_read flags.
func (c *Center) Load(ctx context.Context) error {
	list, err := c.svc.Notifications(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = list
	c.known = make(map[int]bool, len(list))
	c.unread = 0
	for _, n := range list {
		c.known[n.ID] = true
		if !n.IsRead {
			c.unread++
		}
	}
	return nil
}

// Apply folds one pushed notification into local state: newest first, and
// the unread counter grows only for unread notifications not seen before.
// Returns false when the id was already known and nothing changed.
func (c *Center) Apply(n domain.Notification) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.known[n.ID] {
		return false
	}
	c.known[n.ID] = true
	c.notifications = append([]domain.Notification{n}, c.notifications...)
	if !n.IsRead {
		c.unread++
	}
	return true
}

// MarkRead marks one notification read on the server and locally. The unread
// counter only moves when the notification was actually unread, so marking
// twice cannot decrement twice, and it never goes below zero.
func (c *Center) MarkRead(ctx context.Context, id int) error {
	if err := c.svc.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID != id {
			continue
		}
		if !c.notifications[i].IsRead {
			c.notifications[i].IsRead = true
			if c.unread > 0 {
				c.unread--
			}
		}
		break
	}
	return nil
}

// Notifications returns a copy of the current list, newest first.
func (c *Center) Notifications() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Unread returns the current unread count.
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// Reset drops all local notification state, for sign-out.
func (c *Center) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
	c.known = make(map[int]bool)
	c.unread = 0
}
