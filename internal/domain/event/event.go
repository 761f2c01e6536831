package event

import (
	"fmt"
	"time"
)

// Event is a scheduled event as listed in the console
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OrganizerID   string    `json:"organizerId"`
	OrganizerName string    `json:"organizerName,omitempty"`
	EventTypeID   string    `json:"eventTypeId"`
	EventTypeName string    `json:"eventTypeName,omitempty"`
	Venue         string    `json:"venue"`
	City          string    `json:"city,omitempty"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	Status        Status    `json:"status"`
	Capacity      int       `json:"capacity"`
	TicketsSold   int       `json:"ticketsSold"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
}

// Details is the event detail view
type Details struct {
	Event
	Description string       `json:"description,omitempty"`
	TicketTypes []TicketType `json:"ticketTypes"`
}

// TicketType is one price tier of an event
type TicketType struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Sold     int     `json:"sold"`
}

// Input is the create/update payload
type Input struct {
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	OrganizerID   string    `json:"organizerId"`
	EventTypeID   string    `json:"eventTypeId"`
	Venue         string    `json:"venue"`
	City          string    `json:"city,omitempty"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	Capacity      int       `json:"capacity"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
}

// Status represents the publication state of an event
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// StatusLabel returns the display label for a status
func StatusLabel(s Status) string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPublished:
		return "Published"
	case StatusSuspended:
		return "Suspended"
	case StatusCancelled:
		return "Cancelled"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// SalesPercent is the share of capacity already sold, rounded down and capped at 100.
func SalesPercent(sold, capacity int) int {
	if capacity <= 0 || sold <= 0 {
		return 0
	}
	if sold >= capacity {
		return 100
	}
	return sold * 100 / capacity
}

// SalesPercent of the event
func (e Event) SalesPercent() int {
	return SalesPercent(e.TicketsSold, e.Capacity)
}

// Phase tells where the event stands relative to now
func (e Event) Phase(now time.Time) string {
	switch {
	case e.StartsAt.IsZero():
		return "unscheduled"
	case now.Before(e.StartsAt):
		return "upcoming"
	case e.EndsAt.IsZero() || now.Before(e.EndsAt):
		return "live"
	default:
		return "past"
	}
}

// DateRange formats the schedule for list rows
func DateRange(start, end time.Time) string {
	if start.IsZero() {
		return "TBA"
	}
	if end.IsZero() || end.Equal(start) {
		return start.Format("Jan 2, 2006 15:04")
	}
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006 15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}
