package token

import (
	"strings"

	"github.com/google/uuid"
)

// Generación de identificadores cortos para productos, ubicaciones y
// movimientos: prefijo + primeros 8 hex de un UUID v4, en mayúsculas
// (ej. MOV-3FA85F64). La unicidad real la garantiza la clave primaria;
// una colisión se reporta como duplicado al crear.

const (
	PrefixProduct  = "PRD"
	PrefixLocation = "LOC"
	PrefixMovement = "MOV"
)

// New genera un token corto con el prefijo dado.
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "-" + strings.ToUpper(raw[:8])
}

// NewProductID genera un identificador de producto (PRD-XXXXXXXX).
func NewProductID() string { return New(PrefixProduct) }

// NewLocationID genera un identificador de ubicación (LOC-XXXXXXXX).
func NewLocationID() string { return New(PrefixLocation) }

// NewMovementID genera un identificador de movimiento (MOV-XXXXXXXX).
func NewMovementID() string { return New(PrefixMovement) }
