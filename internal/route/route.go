// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package route names the views of the application and the navigation surface
// the flows drive.
package route

import (
	"net/url"
	"strings"
)

// ID identifies a view by its path.
type ID string

const (
	// Register is the entry point.
	Register       ID = "/"
	Login          ID = "/login"
	Dashboard      ID = "/dashboard"
	ForgotPassword ID = "/forgot-password"
	ResetPassword  ID = "/reset-password"
	NotFound       ID = "*"
)

// Known lists every routable view.
var Known = []ID{Register, Login, Dashboard, ForgotPassword, ResetPassword}

// Protected reports whether the view requires an authenticated session.
func (id ID) Protected() bool {
	return id == Dashboard
}

// Title is a short human name for the view.
func (id ID) Title() string {
	switch id {
	case Register:
		return "Create Account"
	case Login:
		return "Log In"
	case Dashboard:
		return "Dashboard"
	case ForgotPassword:
		return "Forgot Password"
	case ResetPassword:
		return "Reset Password"
	default:
		return "Not Found"
	}
}

// Query keys understood by the views.
const (
	QueryToken  = "token"
	QueryStatus = "status"

	// StatusSent marks the forgot-password view as waiting for the user to
	// follow the emailed link.
	StatusSent = "sent"
)

// Location is a view plus its query parameters.
type Location struct {
	Route ID
	Query url.Values
}

// To returns a Location without query parameters.
func To(id ID) Location {
	return Location{Route: id}
}

// Parse turns a path such as "/reset-password?token=abc" into a Location.
// Unknown paths map to NotFound.
func Parse(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, err
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	loc := Location{Route: NotFound, Query: u.Query()}
	for _, id := range Known {
		if string(id) == path {
			loc.Route = id
			break
		}
	}
	return loc, nil
}

// With returns a copy of l with key set to value.
func (l Location) With(key, value string) Location {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(key, value)
	return Location{Route: l.Route, Query: q}
}

// Get returns the first value for key.
func (l Location) Get(key string) string {
	return l.Query.Get(key)
}

// Token returns the reset token carried by a recovery link, if any.
func (l Location) Token() string {
	return l.Get(QueryToken)
}

// String renders the location as a path with query string.
func (l Location) String() string {
	if len(l.Query) == 0 {
		return string(l.Route)
	}
	return string(l.Route) + "?" + l.Query.Encode()
}

// Navigator moves the user to another view.
type Navigator interface {
	NavigateTo(loc Location)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(loc Location)

// NavigateTo implements Navigator.
func (f NavigatorFunc) NavigateTo(loc Location) {
	f(loc)
}
