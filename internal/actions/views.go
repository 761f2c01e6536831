package actions

import "eventconsole/internal/api"

// Console view paths mirror the backend collections.

func ListView(res api.Resource) string {
	return string(res)
}

func DetailView(res api.Resource, id string) string {
	return string(res) + "/" + id
}

func CustomizationView(eventID string) string {
	return DetailView(api.Events, eventID) + "/customization"
}

func LandingView(eventID string) string {
	return DetailView(api.Events, eventID) + "/landing-page"
}
