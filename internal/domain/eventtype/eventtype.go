package eventtype

import (
	"strconv"
	"time"
)

// EventType categorizes events (concert, conference, workshop...).
type EventType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	EventsCount int       `json:"eventsCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Details struct {
	EventType
	RecentEvents []EventRef `json:"recentEvents"`
}

type EventRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// UsageLabel describes how many events use the type.
func UsageLabel(count int) string {
	switch {
	case count <= 0:
		return "Unused"
	case count == 1:
		return "1 event"
	default:
		return strconv.Itoa(count) + " events"
	}
}
