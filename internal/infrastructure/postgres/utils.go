package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/retailpos-api/internal/domain"
)

// isUniqueViolation detecta la violación de una constraint UNIQUE
// (SQLSTATE 23505); los repos la traducen a ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isConnectivityError distingue los fallos de conexión con el servidor (dial,
// timeout, conexión cortada) de los errores de la consulta misma.
func isConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, context.DeadlineExceeded)
}

// infraError envuelve un fallo de infraestructura conservando el mensaje
// original. Los fallos de conectividad se marcan con ErrUnavailable para que
// la capa HTTP responda 503 en lugar de 500.
func infraError(op string, err error) error {
	if isConnectivityError(err) {
		return fmt.Errorf("%s: %v: %w", op, err, domain.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
