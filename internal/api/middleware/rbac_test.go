package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/unmatched/taskboard/internal/core/domain"
)

func runRequireRole(t *testing.T, role string, allowed ...domain.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handler := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runRequireRole(t, "admin", domain.RoleDeveloper, domain.RoleAdmin)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoleDenies(t *testing.T) {
	cases := []struct {
		name string
		role string
	}{
		{"role outside the set", "staff"},
		{"empty role", "none"},
		{"no role in context", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := runRequireRole(t, c.role, domain.RoleDeveloper, domain.RoleAdmin)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}
