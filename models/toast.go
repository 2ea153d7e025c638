package models

import "time"

type Intent string

const (
	IntentNone    Intent = "none"
	IntentPrimary Intent = "primary"
	IntentSuccess Intent = "success"
	IntentWarning Intent = "warning"
	IntentDanger  Intent = "danger"
)

// Toast is a transient notification shown at the top of the page
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Intent    Intent    `json:"intent"`
	TimeoutMS int64     `json:"timeout_ms"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Toast) ExpiresAt() time.Time {
	return t.CreatedAt.Add(time.Duration(t.TimeoutMS) * time.Millisecond)
}

func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt())
}
