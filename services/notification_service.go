package services

import (
	"sort"
	"sync"
	"time"

	"backend/entity"
	"backend/store"
)

// NotificationService derives one notification per report submitted after
// the last-checked watermark. Notifications are ephemeral and keyed to
// report ids; they never outlive the process.
type NotificationService struct {
	mu          sync.Mutex
	byID        map[string]*entity.Notification
	lastChecked time.Time

	now func() time.Time
}

func NewNotificationService(st *store.ReportStore) *NotificationService {
	n := &NotificationService{
		byID: make(map[string]*entity.Notification),
		now:  time.Now,
	}
	n.lastChecked = n.now()
	st.OnChange(n.onStoreEvent)
	return n
}

func (n *NotificationService) onStoreEvent(ev store.Event) {
	if ev.Type != store.EventAdded {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if !ev.Report.Timestamp.After(n.lastChecked) {
		return
	}
	if _, exists := n.byID[ev.Report.ID]; exists {
		return
	}
	n.byID[ev.Report.ID] = &entity.Notification{
		ID:        ev.Report.ID,
		Timestamp: ev.Report.Timestamp,
	}
}

// Recent returns up to limit notifications, newest first.
func (n *NotificationService) Recent(limit int) []entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]entity.Notification, 0, len(n.byID))
	for _, v := range n.byID {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (n *NotificationService) UnreadCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, v := range n.byID {
		if !v.Read {
			count++
		}
	}
	return count
}

func (n *NotificationService) MarkRead(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.byID[id]
	if !ok {
		return false
	}
	v.Read = true
	return true
}

// MarkAllRead marks everything read and advances the watermark to now.
func (n *NotificationService) MarkAllRead() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, v := range n.byID {
		v.Read = true
	}
	n.lastChecked = n.now()
}
