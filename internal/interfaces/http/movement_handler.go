package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del libro mayor de movimientos.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  Registra un movimiento (entrada, salida o traslado) y actualiza los saldos en la misma transacción.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, from_location y/o to_location, qty"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.Add(c.Context(), inventory.MovementInput{
		ID:           in.ID,
		ProductID:    in.ProductID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Qty:          in.Qty,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Update godoc
// @Summary      Editar movimiento
// @Description  Revierte el efecto anterior, re-verifica suficiencia y aplica el nuevo efecto, todo en una transacción.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Nuevos valores"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.Edit(c.Context(), id, inventory.MovementInput{
		ProductID:    in.ProductID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Qty:          in.Qty,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Revierte el efecto del movimiento sobre los saldos y borra la fila del libro mayor.
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos
// @Description  Todos los movimientos del libro mayor, más recientes primero.
// @Tags         movements
// @Produce      json
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	movements, err := h.uc.List()
	if err != nil {
		return writeError(c, err)
	}
	out := dto.MovementListResponse{Movements: make([]dto.MovementResponse, 0, len(movements))}
	for _, m := range movements {
		out.Movements = append(out.Movements, *toMovementResponse(m))
	}
	out.Total = len(out.Movements)
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar movimiento sin aplicarlo
// @Description  Chequeo de solo lectura: devuelve TODAS las reglas violadas (ubicaciones faltantes, cantidad no positiva, stock insuficiente).
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateMovementRequest  true  "Movimiento a validar"
// @Success      200   {object}  dto.ValidateMovementResponse
// @Router       /api/movements/validate [post]
func (h *MovementHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	violations, err := h.uc.Validate(in.ProductID, in.FromLocation, in.ToLocation, in.Qty)
	if err != nil {
		return writeError(c, err)
	}
	if violations == nil {
		violations = []string{}
	}
	return c.JSON(dto.ValidateMovementResponse{Valid: len(violations) == 0, Violations: violations})
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Qty:          m.Qty,
		Timestamp:    m.Timestamp,
	}
}
