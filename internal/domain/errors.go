package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError agrupa todas las reglas violadas de un movimiento.
// Se devuelve completo (no fail-fast) para que el caller pueda reportar
// todos los problemas de una vez.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validación fallida: " + strings.Join(e.Violations, "; ")
}

// NewValidationError construye el error a partir de la lista de reglas violadas.
func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// ReferentialGuardError indica un intento de borrar un producto o ubicación
// que todavía tiene movimientos asociados.
type ReferentialGuardError struct {
	Resource string // "producto" o "ubicación"
	ID       string
	Count    int64
}

func (e *ReferentialGuardError) Error() string {
	return fmt.Sprintf("no se puede eliminar %s %q: tiene %d movimiento(s) asociado(s)", e.Resource, e.ID, e.Count)
}
