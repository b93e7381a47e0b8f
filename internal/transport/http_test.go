package transport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/vasiliy-maslov/catering-service/internal/transport"
)

type pingRoutes struct{}

func (pingRoutes) RegisterRoutes(router chi.Router) {
	router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestNewRouter(t *testing.T) {
	router := transport.NewRouter(pingRoutes{})

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{name: "health", method: http.MethodGet, target: "/health", expectedStatus: http.StatusOK, expectedBody: "OK"},
		{name: "registered", method: http.MethodGet, target: "/ping", expectedStatus: http.StatusTeapot},
		{name: "preflight", method: http.MethodOptions, target: "/ping", expectedStatus: http.StatusOK},
		{name: "unknown", method: http.MethodGet, target: "/nope", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}
