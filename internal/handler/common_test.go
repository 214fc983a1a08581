package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/halicz/shopfloor/internal/model"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserIDClaimShapes(t *testing.T) {
	tests := []struct {
		name  string
		claim interface{}
		want  uint64
	}{
		{"json number", float64(42), 42},
		{"string", "152", 152},
		{"uint64", uint64(7), 7},
		{"garbage string", "abc", 0},
		{"missing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			if tt.claim != nil {
				c.Set("user_id", tt.claim)
			}
			assert.Equal(t, tt.want, getUserID(c))
		})
	}
}

func TestGetRole(t *testing.T) {
	c := newTestContext(t)
	assert.Equal(t, "", getRole(c))

	c.Set("role", model.RoleSupervisor)
	assert.Equal(t, model.RoleSupervisor, getRole(c))
}
