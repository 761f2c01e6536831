package customer

import (
	"strings"
	"time"
)

// Customer is a ticket buyer as shown in the console's customer list.
type Customer struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Status           Status    `json:"status"`
	TicketsPurchased int       `json:"ticketsPurchased"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Details is the customer detail view.
type Details struct {
	Customer
	Address    string  `json:"address,omitempty"`
	City       string  `json:"city,omitempty"`
	Country    string  `json:"country,omitempty"`
	TotalSpent float64 `json:"totalSpent"`
	Orders     []Order `json:"orders"`
}

// Order is one purchase made by a customer.
type Order struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	EventTitle  string    `json:"eventTitle"`
	Tickets     int       `json:"tickets"`
	Amount      float64   `json:"amount"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// Input is the payload for create and update.
type Input struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	Status    Status `json:"status,omitempty"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// StatusLabel returns the display label for a status.
func StatusLabel(s Status) string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusBlocked:
		return "Blocked"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(string(s[:1])) + string(s[1:])
	}
}

// FullName joins first and last name, skipping empty parts.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func (c Customer) FullName() string {
	return FullName(c.FirstName, c.LastName)
}

// Initials are used for the avatar placeholder.
func Initials(first, last string) string {
	var b strings.Builder
	for _, part := range []string{first, last} {
		part = strings.TrimSpace(part)
		if part != "" {
			b.WriteString(strings.ToUpper(string([]rune(part)[:1])))
		}
	}
	return b.String()
}
