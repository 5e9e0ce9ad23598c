// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package tui

const (
	RouteRSVP      = "/"
	RouteGuestList = "/guest_list"
)

// Resolve maps route onto a known view. Unknown routes redirect to the
// RSVP form.
func Resolve(route string) string {
	switch route {
	case RouteRSVP, RouteGuestList:
		return route
	}
	return RouteRSVP
}

// NavigateMsg switches the active view.
type NavigateMsg struct {
	Route string
}
