package domain

import "time"

// EventType labels a banner interaction event.
type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
)

// BannerEvent is a record of a banner being rendered or closed. Events are
// append-only; dismissal is logged for reporting and never affects
// eligibility.
type BannerEvent struct {
	ID         int64
	Token      string
	BannerID   int64
	UserID     string
	Type       EventType
	OccurredAt time.Time
}
