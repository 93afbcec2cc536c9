package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Wealth-Tracker-Backend/internal/api/response"
)

func requestWithUUID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uuid", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestValidateUUIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantCalled bool
		wantStatus int
		wantError  string
	}{
		{name: "passes through valid UUID", id: "550e8400-e29b-41d4-a716-446655440000", wantCalled: true, wantStatus: http.StatusOK},
		{name: "returns 400 for invalid UUID", id: "invalid-id", wantStatus: http.StatusBadRequest, wantError: "invalid UUID format"},
		{name: "returns 400 for empty UUID", id: "", wantStatus: http.StatusBadRequest, wantError: "valid UUID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, requestWithUUID(tt.id))

			assert.Equal(t, tt.wantCalled, handlerCalled)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				var resp response.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}
