package api

import "net/url"

// Resource is the path root of a backend collection.
type Resource string

const (
	Customers  Resource = "/customers"
	Organizers Resource = "/organizers"
	Events     Resource = "/events"
	EventTypes Resource = "/event-types"
	Landing    Resource = "/landing-pages"
	Media      Resource = "/media"
)

func (r Resource) List() string {
	return string(r)
}

func (r Resource) ByID(id string) string {
	return string(r) + "/" + url.PathEscape(id)
}

// Action addresses a state transition on one item, e.g. /organizers/{id}/suspend.
func (r Resource) Action(id, action string) string {
	return r.ByID(id) + "/" + action
}

const (
	ActionSuspend   = "suspend"
	ActionUnsuspend = "unsuspend"
	ActionConfirm   = "confirm"
)

// CustomizationPath addresses the customization of one event (read and update).
func CustomizationPath(eventID string) string {
	return "/event-customization/" + url.PathEscape(eventID)
}

// LandingByEventPath looks up the landing page of an event.
func LandingByEventPath(eventID string) string {
	return Landing.List() + "/event/" + url.PathEscape(eventID)
}

// MediaRequestUploadPath issues upload slots.
func MediaRequestUploadPath() string {
	return Media.List() + "/request-upload"
}

// MediaConfirmPath finalizes a provisional media id.
func MediaConfirmPath(id string) string {
	return Media.Action(id, ActionConfirm)
}
