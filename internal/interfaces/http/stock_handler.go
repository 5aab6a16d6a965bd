package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// StockHandler maneja los ajustes de stock de un ítem y su historial.
type StockHandler struct {
	adjustUC *stock.AdjustStockUseCase
	adjRepo  repository.StockAdjustmentRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(adjustUC *stock.AdjustStockUseCase, adjRepo repository.StockAdjustmentRepository) *StockHandler {
	return &StockHandler{adjustUC: adjustUC, adjRepo: adjRepo}
}

// Adjust godoc
// @Summary      Registrar ajuste de stock
// @Description  ADDITION suma |quantity|, REMOVAL resta |quantity|, CORRECTION aplica quantity con signo. El stock nunca queda negativo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ítem"
// @Param        body  body  dto.AdjustStockRequest  true  "type, quantity, reason"
// @Success      201   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adjustment, err := h.adjustUC.Adjust(c.Context(), stock.AdjustInput{
		ItemID:   c.Params("id"),
		Type:     in.Type,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		ActorID:  GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockAdjustmentResponse(adjustment))
}

// History godoc
// @Summary      Historial de ajustes de un ítem
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {array}  dto.StockAdjustmentResponse
// @Router       /api/items/{id}/adjustments [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	adjustments, err := h.adjRepo.ListByItem(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]*dto.StockAdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		resp = append(resp, dto.ToStockAdjustmentResponse(a))
	}
	return c.JSON(resp)
}
