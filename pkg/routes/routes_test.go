package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/screener/pkg/routes"
)

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name + " " + r.PathValue("id")))
	}
}

var batchRoutes = routes.Group{
	Prefix: "/batches",
	Routes: []routes.Route{
		{Method: "GET", Pattern: "", Handler: named("list")},
		{Method: "POST", Pattern: "", Handler: named("create")},
	},
	Children: []routes.Group{
		{
			Prefix: "/{id}",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: named("find")},
				{Method: "GET", Pattern: "/candidates", Handler: named("candidates")},
			},
		},
	},
}

func TestPatterns(t *testing.T) {
	assert.Equal(t, []string{
		"GET /batches",
		"POST /batches",
		"GET /batches/{id}",
		"GET /batches/{id}/candidates",
	}, routes.Patterns(batchRoutes))
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	installed := routes.Register(mux, batchRoutes, routes.Group{
		Prefix: "/jobs",
		Routes: []routes.Route{{Method: "GET", Pattern: "/{id}", Handler: named("job")}},
	})
	assert.Len(t, installed, 5)

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"GET", "/batches", http.StatusOK, "list "},
		{"POST", "/batches", http.StatusOK, "create "},
		{"GET", "/batches/b1", http.StatusOK, "find b1"},
		{"GET", "/batches/b1/candidates", http.StatusOK, "candidates b1"},
		{"GET", "/jobs/j9", http.StatusOK, "job j9"},
		{"DELETE", "/batches/b1", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
