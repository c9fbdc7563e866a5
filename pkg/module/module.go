// Package module mounts self-contained HTTP handlers under single-segment
// prefixes, each with its own middleware chain.
package module

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/screener/pkg/middleware"
)

// Module serves requests under prefix with the prefix removed from the path.
type Module struct {
	prefix string
	inner  http.Handler
	chain  []middleware.Func

	once    sync.Once
	handler http.Handler
}

// New rejects prefixes that are empty, relative, or span more than one segment.
func New(prefix string, inner http.Handler) (*Module, error) {
	if !strings.HasPrefix(prefix, "/") || len(prefix) < 2 || strings.Contains(prefix[1:], "/") {
		return nil, fmt.Errorf("module prefix %q must be a single segment like /api", prefix)
	}
	return &Module{prefix: prefix, inner: inner}, nil
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends to the chain. It has no effect once the module has served a request.
func (m *Module) Use(mws ...middleware.Func) {
	m.chain = append(m.chain, mws...)
}

// Handler returns the inner handler wrapped by the chain, built on first use.
func (m *Module) Handler() http.Handler {
	m.once.Do(func() {
		m.handler = middleware.Chain(m.inner, m.chain...)
	})
	return m.handler
}

// Serve strips the prefix and dispatches. A request for the bare prefix
// arrives at the inner handler as "/".
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, m.prefix)
	if rest == "" {
		rest = "/"
	}

	inner := req.Clone(req.Context())
	inner.URL.Path = rest
	inner.URL.RawPath = ""
	m.Handler().ServeHTTP(w, inner)
}
