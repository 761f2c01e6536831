package organizer

import "time"

// Organizer runs events on the platform.
type Organizer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Website     string    `json:"website,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	Status      Status    `json:"status"`
	EventsCount int       `json:"eventsCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Details struct {
	Organizer
	Description      string         `json:"description,omitempty"`
	Address          string         `json:"address,omitempty"`
	Events           []EventSummary `json:"events"`
	SuspendedAt      *time.Time     `json:"suspendedAt,omitempty"`
	SuspensionReason string         `json:"suspensionReason,omitempty"`
}

type EventSummary struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"startsAt"`
	Status   string    `json:"status"`
}

type Input struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
}

// SuspendInput optionally explains a suspension.
type SuspendInput struct {
	Reason string `json:"reason,omitempty"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

func StatusLabel(s Status) string {
	switch s {
	case StatusPending:
		return "Pending approval"
	case StatusActive:
		return "Active"
	case StatusSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}
