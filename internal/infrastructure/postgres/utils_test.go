package postgres

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retailpos-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests isUniqueViolation
// ──────────────────────────────────────────────────────────────────────────────

func TestIsUniqueViolation_Codigo23505(t *testing.T) {
	err := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(err))

	// El código también se reconoce dentro de un mensaje plano.
	assert.True(t, isUniqueViolation(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))
}

func TestIsUniqueViolation_OtroCodigoPg(t *testing.T) {
	err := &pgconn.PgError{Code: "23503"} // foreign_key_violation
	assert.False(t, isUniqueViolation(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests infraError — clasificación de fallos de conectividad
// ──────────────────────────────────────────────────────────────────────────────

// Un dial rechazado (servidor caído) debe marcarse como ErrUnavailable para
// que la capa HTTP responda 503.
func TestInfraError_ConexionRechazada_EsUnavailable(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	err := infraError("begin transaction", dialErr)

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Contains(t, err.Error(), "begin transaction",
		"la operación queda en el mensaje para el log")
}

func TestInfraError_ConexionCortada_EsUnavailable(t *testing.T) {
	err := infraError("commit transaction", syscall.ECONNRESET)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestInfraError_Timeout_EsUnavailable(t *testing.T) {
	err := infraError("ping DB", context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

// Un error de la consulta (columna inexistente, constraint) no es un problema
// de disponibilidad: se conserva como error interno.
func TestInfraError_ErrorDeConsulta_NoEsUnavailable(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42703", Message: "column does not exist"}
	err := infraError("list products", pgErr)

	assert.False(t, errors.Is(err, domain.ErrUnavailable))
	var unwrapped *pgconn.PgError
	assert.True(t, errors.As(err, &unwrapped), "el error original sigue en la cadena")
}
