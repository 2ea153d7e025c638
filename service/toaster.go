package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nishantd01/grud/models"
)

// Toaster keeps the toasts shown at the top of the page until they time out
type Toaster struct {
	mu      sync.Mutex
	toasts  []models.Toast
	timeout time.Duration
	limit   int
	now     func() time.Time
}

func NewToaster(timeout time.Duration, limit int) *Toaster {
	return &Toaster{timeout: timeout, limit: limit, now: time.Now}
}

func (t *Toaster) Show(message string, intent models.Intent) models.Toast {
	toast := models.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Intent:    intent,
		TimeoutMS: t.timeout.Milliseconds(),
		CreatedAt: t.now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, toast)
	if len(t.toasts) > t.limit {
		t.toasts = t.toasts[len(t.toasts)-t.limit:]
	}
	return toast
}

// Active returns the toasts that have not timed out, oldest first, and drops the rest
func (t *Toaster) Active() []models.Toast {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	live := t.toasts[:0]
	for _, toast := range t.toasts {
		if !toast.Expired(now) {
			live = append(live, toast)
		}
	}
	t.toasts = live
	return append([]models.Toast{}, live...)
}

func (t *Toaster) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, toast := range t.toasts {
		if toast.ID == id {
			t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
			return true
		}
	}
	return false
}
