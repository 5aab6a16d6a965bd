package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// AnalyticsHandler expone los reportes read-only del inventario.
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// InventorySummary godoc
// @Summary      Resumen del inventario
// @Description  Ítems en alerta de stock bajo, valor total del inventario y conteo de ajustes por tipo.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryDTO
// @Router       /api/analytics/inventory-summary [get]
func (h *AnalyticsHandler) InventorySummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetInventorySummary(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(summary)
}
