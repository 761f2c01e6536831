package landing

import (
	"strings"
	"time"
)

// Page is the public landing page of an event.
type Page struct {
	ID           string     `json:"id"`
	EventID      string     `json:"eventId"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Subtitle     string     `json:"subtitle,omitempty"`
	Description  string     `json:"description,omitempty"`
	HeroImageURL string     `json:"heroImageUrl,omitempty"`
	Sections     []Section  `json:"sections"`
	Status       Status     `json:"status"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Section struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

type Input struct {
	EventID      string    `json:"eventId"`
	Slug         string    `json:"slug,omitempty"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Description  string    `json:"description,omitempty"`
	HeroImageURL string    `json:"heroImageUrl,omitempty"`
	Sections     []Section `json:"sections,omitempty"`
	Status       Status    `json:"status,omitempty"`
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func StatusLabel(s Status) string {
	if s == StatusPublished {
		return "Published"
	}
	return "Draft"
}

// Slugify derives a URL slug from a title: lowercase ASCII letters and digits joined by dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
