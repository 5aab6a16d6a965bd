package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
)

// WorkOrderHandler maneja las órdenes de trabajo.
type WorkOrderHandler struct {
	uc *workorder.WorkOrderUseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *workorder.WorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Description  Valida técnico y stock de cada línea (pre-chequeo, sin reserva) y crea la orden en OPEN.
// @Tags         work-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "description, technician_id, items"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/work-orders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWorkOrderResponse(order))
}

// Start godoc
// @Summary      Iniciar orden de trabajo (OPEN → IN_PROGRESS)
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/start [post]
func (h *WorkOrderHandler) Start(c *fiber.Ctx) error {
	order, err := h.uc.Start(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponse(order))
}

// Complete godoc
// @Summary      Completar orden de trabajo (IN_PROGRESS → COMPLETED)
// @Description  Descuenta cada línea como REMOVAL en una sola transacción. Si una línea no tiene stock, ningún descuento se aplica.
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/complete [post]
func (h *WorkOrderHandler) Complete(c *fiber.Ctx) error {
	order, err := h.uc.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponse(order))
}

// GetByID godoc
// @Summary      Obtener orden de trabajo con sus líneas
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToWorkOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         work-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WorkOrderResponse
// @Router       /api/work-orders [get]
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]*dto.WorkOrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, dto.ToWorkOrderResponse(order))
	}
	return c.JSON(resp)
}
