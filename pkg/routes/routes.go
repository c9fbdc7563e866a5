// Package routes declares handler tables as nested prefix groups and
// registers them on a ServeMux using method-qualified patterns.
package routes

import "net/http"

type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group prefixes its routes and, recursively, its children.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Patterns flattens the groups into "METHOD /full/path" patterns in
// declaration order, parents before children.
func Patterns(groups ...Group) []string {
	var out []string
	walk(groups, "", func(pattern string, _ http.HandlerFunc) {
		out = append(out, pattern)
	})
	return out
}

// Register installs every route and returns the patterns it installed.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var out []string
	walk(groups, "", func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, h)
		out = append(out, pattern)
	})
	return out
}

func walk(groups []Group, parent string, visit func(string, http.HandlerFunc)) {
	for _, g := range groups {
		prefix := parent + g.Prefix
		for _, r := range g.Routes {
			visit(r.Method+" "+prefix+r.Pattern, r.Handler)
		}
		walk(g.Children, prefix, visit)
	}
}
