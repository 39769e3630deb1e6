// Package routing keeps the client's page history and refuses entry to
// member-only pages for visitors without a session.
package routing

import "strings"

const Home = "/"

// Protected pages require a session.
var Protected = []string{"/goal-simulation", "/money-tracking", "/grow-and-learn", "/account"}

// Public pages are open to everyone.
var Public = []string{Home, "/about", "/contact", "/forgot-password", "/reset-password"}

// Clean strips query, fragment and trailing slashes and adds a leading one.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	path = "/" + strings.Trim(path, "/")
	return path
}

func IsProtected(path string) bool {
	return contains(Protected, Clean(path))
}

// Known reports whether path names a page.
func Known(path string) bool {
	p := Clean(path)
	return contains(Protected, p) || contains(Public, p)
}

func contains(list []string, p string) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}
