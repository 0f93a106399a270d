package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailpos-api/internal/domain"
)

// Cada error sentinela del dominio debe traducirse a su status HTTP, incluso
// envuelto en contexto. Una base de datos caída responde 503, no 500.
func TestRespondError_MapeaSentinelasAStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"no encontrado", domain.ErrNotFound, http.StatusNotFound},
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict},
		{"stock insuficiente", domain.ErrInsufficientStock, http.StatusConflict},
		{"no disponible", domain.ErrUnavailable, http.StatusServiceUnavailable},
		{"no disponible envuelto", fmt.Errorf("begin transaction: dial tcp: %w", domain.ErrUnavailable), http.StatusServiceUnavailable},
		{"desconocido", fmt.Errorf("algo explotó"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/fail", func(c *fiber.Ctx) error {
				return respondError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
