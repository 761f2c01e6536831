package customization

import (
	"strings"
	"time"
)

// Customization is the branding applied to an event's public pages.
type Customization struct {
	EventID        string    `json:"eventId"`
	Theme          string    `json:"theme,omitempty"`
	PrimaryColor   string    `json:"primaryColor,omitempty"`
	SecondaryColor string    `json:"secondaryColor,omitempty"`
	FontFamily     string    `json:"fontFamily,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	BannerURL      string    `json:"bannerUrl,omitempty"`
	BackgroundURL  string    `json:"backgroundUrl,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Input struct {
	Theme          string `json:"theme,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	BannerURL      string `json:"bannerUrl,omitempty"`
	BackgroundURL  string `json:"backgroundUrl,omitempty"`
}

func (c Customization) fields() []string {
	return []string{c.Theme, c.PrimaryColor, c.SecondaryColor, c.FontFamily, c.LogoURL, c.BannerURL, c.BackgroundURL}
}

// PercentComplete is the share of branding fields that are filled in, rounded down.
func PercentComplete(c Customization) int {
	fields := c.fields()
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	return filled * 100 / len(fields)
}

// Missing lists the JSON names of branding fields still empty, in display order.
func Missing(c Customization) []string {
	names := []string{"theme", "primaryColor", "secondaryColor", "fontFamily", "logoUrl", "bannerUrl", "backgroundUrl"}
	var out []string
	for i, f := range c.fields() {
		if strings.TrimSpace(f) == "" {
			out = append(out, names[i])
		}
	}
	return out
}
