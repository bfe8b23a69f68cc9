package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

func TestValidate_MovimientoCorrecto(t *testing.T) {
	uc, _ := newEngine(t)
	mustAdd(t, uc, inventory.MovementInput{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 10})

	violations, err := uc.Validate("P1", "LOC-A", "LOC-B", 5)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidate_EntradaSinOrigenNoChequeaStock(t *testing.T) {
	uc, _ := newEngine(t)

	// Sin origen no hay de dónde descontar: cualquier cantidad positiva vale.
	violations, err := uc.Validate("P1", "", "LOC-A", 1000)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

// Todas las reglas violadas se acumulan en una sola respuesta.
func TestValidate_AcumulaTodasLasViolaciones(t *testing.T) {
	uc, _ := newEngine(t)

	violations, err := uc.Validate("P1", "", "", 0)
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Contains(t, violations[0], "al menos una ubicación")
	assert.Contains(t, violations[1], "cantidad debe ser positiva")
}

func TestValidate_StockInsuficienteComoViolacion(t *testing.T) {
	uc, _ := newEngine(t)
	mustAdd(t, uc, inventory.MovementInput{ID: "M1", ProductID: "P1", ToLocation: "LOC-A", Qty: 3})

	violations, err := uc.Validate("P1", "LOC-A", "", 10)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "stock insuficiente en LOC-A")
	assert.Contains(t, violations[0], "disponible 3")
	assert.Contains(t, violations[0], "solicitado 10")
}

// Un par nunca movido se trata como saldo cero, no como error.
func TestValidate_ParSinHistorialEsCero(t *testing.T) {
	uc, _ := newEngine(t)

	violations, err := uc.Validate("P1", "LOC-A", "", 1)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "disponible 0")
}
