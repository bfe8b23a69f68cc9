package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// BalanceHandler maneja las peticiones HTTP de saldos y reportes.
type BalanceHandler struct {
	movements *inventory.MovementUseCase
	report    *inventory.ReportUseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(movements *inventory.MovementUseCase, report *inventory.ReportUseCase) *BalanceHandler {
	return &BalanceHandler{movements: movements, report: report}
}

// Get godoc
// @Summary      Saldo de un par (producto, ubicación)
// @Description  Devuelve 0 si el par nunca ha tenido movimiento (ausencia = cero, no error).
// @Tags         balances
// @Produce      json
// @Param        product_id   path  string  true  "ID del producto"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/balances/{product_id}/{location_id} [get]
func (h *BalanceHandler) Get(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	locationID := c.Params("location_id")
	balance, err := h.movements.GetBalance(productID, locationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id":  productID,
		"location_id": locationID,
		"balance":     balance,
	})
}

// Report godoc
// @Summary      Reporte de saldos
// @Description  Saldos distintos de cero ordenados por (product_id, location_id) con nombres resueltos, más resumen (positivos, negativos, total de unidades).
// @Tags         balances
// @Produce      json
// @Success      200  {object}  dto.BalanceReportResponse
// @Router       /api/balances/report [get]
func (h *BalanceHandler) Report(c *fiber.Ctx) error {
	out, err := h.report.BalanceReport()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recalculate godoc
// @Summary      Recomputar todos los saldos desde el libro mayor
// @Description  Vacía la tabla de saldos y reaplica cada movimiento, todo en una transacción. Idempotente e independiente del orden.
// @Tags         balances
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/balances/recalculate [post]
func (h *BalanceHandler) Recalculate(c *fiber.Ctx) error {
	if err := h.movements.RecalculateAll(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "saldos recalculados"})
}

// Dashboard godoc
// @Summary      Contadores del tablero
// @Tags         balances
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *BalanceHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.report.Dashboard()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
